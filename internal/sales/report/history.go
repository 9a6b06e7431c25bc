package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rreport "github.com/ridloal/hidayah-backoffice/internal/resource/report"
	"github.com/ridloal/hidayah-backoffice/internal/resource/store"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	sgateway "github.com/ridloal/hidayah-backoffice/internal/sales/gateway"
)

// History lists today's sales with the day's income.
type History struct {
	store    *store.Store[domain.Sale]
	notifier notify.Notifier
}

func NewHistory(gw *sgateway.SalesGateway, n notify.Notifier) *History {
	return &History{
		store:    store.New[domain.Sale]("penjualan.today", sgateway.TodaySource{SalesGateway: gw}),
		notifier: n,
	}
}

func (h *History) Load(ctx context.Context) error {
	if err := h.store.Refresh(ctx, rdomain.DefaultQuery()); err != nil {
		logger.Error("History: load failed", err)
		notify.Failure(h.notifier, rdomain.UserMessage(err))
		return err
	}
	return nil
}

func (h *History) Sales() []domain.Sale {
	return h.store.Items()
}

// Income is the sum of harga over today's sales; 0 when there are none.
func (h *History) Income() decimal.Decimal {
	return rreport.Total(h.store.Items(), domain.Sale.Amount)
}

func (h *History) Table() rreport.Table {
	sales := h.store.Items()
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{s.Describe(), fmt.Sprint(s.ItemCount()), rreport.Rupiah(s.Harga), s.PelangganName})
	}
	return rreport.Table{
		Title:   "History Penjualan Hari Ini",
		Columns: []string{"Barang", "Kuantitas", "Harga", "Pelanggan"},
		Rows:    rows,
		Footer:  []string{"Total Pemasukan", "", rreport.Rupiah(h.Income()), ""},
	}
}

func (h *History) Close() {
	h.store.Close()
}
