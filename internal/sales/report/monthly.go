// Package report holds the read-only sales screens: the monthly report and today's history.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rreport "github.com/ridloal/hidayah-backoffice/internal/resource/report"
	"github.com/ridloal/hidayah-backoffice/internal/resource/store"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	sgateway "github.com/ridloal/hidayah-backoffice/internal/sales/gateway"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

var ErrUnknownFormat = errors.New("unknown export format")

// yearsBack is how many past years the selector offers besides the current one.
const yearsBack = 5

// Years returns the selectable years, newest first.
func Years(now time.Time) []int {
	out := make([]int, 0, yearsBack+1)
	for y := now.Year(); y >= now.Year()-yearsBack; y-- {
		out = append(out, y)
	}
	return out
}

var reportColumns = []string{"Nama Pelanggan", "Total Harga", "Barang"}

func saleRows(sales []domain.Sale) [][]string {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{s.PelangganName, rreport.Rupiah(s.Harga), s.Describe()})
	}
	return rows
}

// Monthly is the Laporan screen. Every change of month or year re-queries the server.
type Monthly struct {
	store    *store.Store[domain.Sale]
	notifier notify.Notifier

	mu      sync.Mutex
	period  rdomain.Period
	pending *rdomain.ID
}

func NewMonthly(gw *sgateway.SalesGateway, n notify.Notifier) *Monthly {
	return &Monthly{
		store:    store.New[domain.Sale]("penjualan", sgateway.MonthlySource{SalesGateway: gw}),
		notifier: n,
	}
}

// Select loads the report for month/year.
func (m *Monthly) Select(ctx context.Context, month, year int) error {
	errs := rdomain.ValidationErrors{}
	if month < 1 || month > 12 {
		errs.Add("bulan", "harus 1 sampai 12")
	}
	if year < 1 {
		errs.Add("tahun", "tidak valid")
	}
	if err := errs.OrNil(); err != nil {
		return m.fail("select period", err)
	}

	p := rdomain.Period{Month: month, Year: year}
	m.mu.Lock()
	m.period = p
	m.mu.Unlock()

	if err := m.store.SetPeriod(ctx, p); err != nil {
		return m.fail("load report", err)
	}
	return nil
}

func (m *Monthly) Period() rdomain.Period {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.period
}

func (m *Monthly) Sales() []domain.Sale {
	return m.store.Items()
}

func (m *Monthly) Total() decimal.Decimal {
	return rreport.Total(m.store.Items(), domain.Sale.Amount)
}

// ItemCount is the number of pieces in one sale, shown in the detail dialog.
func (m *Monthly) ItemCount(id rdomain.ID) (int, bool) {
	s, ok := m.store.Get(id)
	if !ok {
		return 0, false
	}
	return s.ItemCount(), true
}

func (m *Monthly) RequestDelete(id rdomain.ID) error {
	if _, ok := m.store.Get(id); !ok {
		return m.fail("delete", fmt.Errorf("penjualan %s: %w", id, rdomain.ErrNotInCollection))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = &id
	return nil
}

func (m *Monthly) PendingDelete() (rdomain.ID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return 0, false
	}
	return *m.pending, true
}

func (m *Monthly) CancelDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = nil
}

// ConfirmDelete removes the pending sale and then reloads the report.
func (m *Monthly) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	if pending == nil {
		return m.fail("delete", rdomain.ErrConfirmationRequired)
	}
	if err := m.store.Delete(ctx, *pending); err != nil {
		return m.fail("delete", err)
	}
	notify.Success(m.notifier, "Penjualan berhasil dihapus")

	if q := m.store.Query(); q.Period != nil {
		if err := m.store.Refresh(ctx, q); err != nil {
			// Data sudah terhapus di server; cukup beri tahu refresh gagal.
			m.fail("reload report", err)
		}
	}
	return nil
}

func (m *Monthly) Table() rreport.Table {
	p := m.Period()
	t := rreport.Table{
		Title:    "Laporan Penjualan",
		Subtitle: fmt.Sprintf("%s %d", domain.MonthName(p.Month), p.Year),
		Columns:  reportColumns,
		Rows:     saleRows(m.store.Items()),
		Footer:   []string{"Total", rreport.Rupiah(m.Total()), ""},
	}
	return t
}

// Export renders the loaded report. Nothing is re-fetched.
func (m *Monthly) Export(w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatCSV:
		err = rreport.WriteCSV(w, m.Table())
	case FormatHTML:
		err = rreport.WriteHTML(w, m.Table())
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return m.fail("export", err)
	}
	notify.Success(m.notifier, "Laporan berhasil diekspor")
	return nil
}

func (m *Monthly) Close() {
	m.store.Close()
}

func (m *Monthly) fail(op string, err error) error {
	var verr rdomain.ValidationErrors
	if errors.As(err, &verr) {
		logger.Warn("Laporan: %s rejected: %v", op, err)
	} else {
		logger.Error(fmt.Sprintf("Laporan: %s failed", op), err)
	}
	notify.Failure(m.notifier, rdomain.UserMessage(err))
	return err
}
