package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	adomain "github.com/ridloal/hidayah-backoffice/internal/account/domain"
	cdomain "github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rgateway "github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/entry"
	sreport "github.com/ridloal/hidayah-backoffice/internal/sales/report"
)

type itemArg struct {
	kind domain.ItemType
	id   rdomain.ID
	qty  string
}

// itemList collects repeated -item kind:id[:qty] flags.
type itemList []itemArg

func (l *itemList) String() string { return fmt.Sprint(len(*l)) }

func (l *itemList) Set(v string) error {
	parts := strings.Split(v, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("%q: expected kind:id[:qty]", v)
	}
	kind := domain.ItemType(strings.ToLower(parts[0]))
	if kind != domain.ItemBarang && kind != domain.ItemJasa {
		return fmt.Errorf("%q: kind must be barang or jasa", v)
	}
	id, err := rdomain.ParseID(parts[1])
	if err != nil {
		return fmt.Errorf("%q: invalid id", v)
	}
	it := itemArg{kind: kind, id: id}
	if len(parts) == 3 {
		it.qty = parts[2]
	}
	*l = append(*l, it)
	return nil
}

func cartTable(c *entry.Cart) report.Table {
	lines := c.Lines()
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.Name, string(l.Type), strconv.Itoa(l.Kuantitas), report.Rupiah(l.Price), report.Rupiah(l.Subtotal())})
	}
	return report.Table{
		Title:   "Penjualan",
		Columns: []string{"Nama", "Jenis", "Kuantitas", "Harga", "Subtotal"},
		Rows:    rows,
		Footer:  []string{"Total", "", "", "", report.Rupiah(c.Total())},
	}
}

func (a *App) sell(ctx context.Context, args []string) error {
	fs := newFlagSet("sell")
	pelanggan := fs.Int64("pelanggan", 0, "pelanggan id")
	var items itemList
	fs.Var(&items, "item", "kind:id[:qty], repeatable")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(adomain.MenuPenjualan); err != nil {
		return err
	}

	if *pelanggan == 0 || len(items) == 0 {
		return a.fail(fmt.Errorf("%w: -pelanggan dan minimal satu -item wajib diisi", ErrUsage))
	}

	cart := entry.NewCart(entry.Sources{
		Barang:    rgateway.NewHTTPGateway[cdomain.Barang](a.client, "barang"),
		Jasa:      rgateway.NewHTTPGateway[cdomain.Jasa](a.client, "jasa"),
		Pelanggan: rgateway.NewHTTPGateway[cdomain.Pelanggan](a.client, "pelanggan"),
	}, a.sales, a.notifier)
	if err := cart.Load(ctx); err != nil {
		return err
	}
	if err := cart.SelectPelanggan(rdomain.ID(*pelanggan)); err != nil {
		return err
	}
	for _, it := range items {
		if err := cart.AddItem(it.kind, it.id); err != nil {
			return err
		}
		if it.qty != "" {
			if err := cart.SetQuantity(len(cart.Lines())-1, it.qty); err != nil {
				return a.fail(err)
			}
		}
	}

	if err := a.writeTable("text", cartTable(cart)); err != nil {
		return err
	}
	resp, err := cart.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Penjualan %s\n", resp.Data.ID)
	return nil
}

func (a *App) history(ctx context.Context, _ []string) error {
	if err := a.require(adomain.MenuPenjualan, adomain.MenuLaporan); err != nil {
		return err
	}
	h := sreport.NewHistory(a.sales, a.notifier)
	defer h.Close()
	if err := h.Load(ctx); err != nil {
		return err
	}
	return a.writeTable("text", h.Table())
}

func (a *App) report(ctx context.Context, args []string) error {
	now := a.now()
	fs := newFlagSet("report")
	month := fs.Int("bulan", int(now.Month()), "month, 1-12")
	year := fs.Int("tahun", now.Year(), "year")
	format := fs.String("format", "text", "text, csv or html")
	output := fs.String("o", "", "write the export to this file")
	del := fs.Int64("delete", 0, "delete this penjualan from the report")
	yes := fs.Bool("yes", false, "confirm -delete")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(adomain.MenuLaporan); err != nil {
		return err
	}
	if !slices.Contains(sreport.Years(now), *year) {
		return a.fail(fmt.Errorf("%w: tahun harus antara %d dan %d", ErrUsage, now.Year()-5, now.Year()))
	}

	m := sreport.NewMonthly(a.sales, a.notifier)
	defer m.Close()
	if err := m.Select(ctx, *month, *year); err != nil {
		return err
	}

	if *del != 0 {
		if err := m.RequestDelete(rdomain.ID(*del)); err != nil {
			return err
		}
		if !*yes {
			m.CancelDelete()
			return a.fail(fmt.Errorf("%w: hapus penjualan %d harus dikonfirmasi dengan -yes", ErrUsage, *del))
		}
		if err := m.ConfirmDelete(ctx); err != nil {
			return err
		}
	}

	var w io.Writer = a.out
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return a.fail(err)
		}
		defer f.Close()
		w = f
	}
	if *format == "text" {
		if err := report.WriteText(w, m.Table()); err != nil {
			return a.fail(err)
		}
		return nil
	}
	return m.Export(w, sreport.Format(*format))
}
