package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rgateway "github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	sgateway "github.com/ridloal/hidayah-backoffice/internal/sales/gateway"
)

const maySales = `{"data":[
 {"id":2,"pelanggan_id":1,"pelanggan_name":"Budi","harga":"40000","nama_barang":[{"nama_barang":"Kertas A4","kuantitas":3},{"nama_barang":"Jilid","kuantitas":2}]},
 {"id":1,"pelanggan_id":2,"pelanggan_name":"Sari","harga":"5000","nama_barang":[{"nama_barang":"Pulpen","kuantitas":1}]}
]}`

type fakeSalesAPI struct {
	mu       sync.Mutex
	filters  []domain.MonthlyFilter
	deleted  []string
	failList bool
}

func (f *fakeSalesAPI) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/penjualan/monthly":
		var mf domain.MonthlyFilter
		_ = json.NewDecoder(r.Body).Decode(&mf)
		f.filters = append(f.filters, mf)
		if f.failList {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if mf.Bulan == 5 {
			io.WriteString(w, maySales)
			return
		}
		io.WriteString(w, `{"data":[]}`)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/penjualan/"):
		f.deleted = append(f.deleted, strings.TrimPrefix(r.URL.Path, "/api/penjualan/"))
		w.WriteHeader(http.StatusOK)
	case r.URL.Path == "/api/penjualans/today":
		io.WriteString(w, maySales)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeSalesAPI) Filters() []domain.MonthlyFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.MonthlyFilter(nil), f.filters...)
}

func (f *fakeSalesAPI) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *fakeSalesAPI) FailList() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failList = true
}

func newMonthly(t *testing.T) (*Monthly, *fakeSalesAPI, *notify.Recorder) {
	t.Helper()
	api := &fakeSalesAPI{}
	srv := httptest.NewServer(http.HandlerFunc(api.handler))
	t.Cleanup(srv.Close)
	rec := &notify.Recorder{}
	return NewMonthly(sgateway.New(rgateway.NewClient(srv.URL+"/api", 5*time.Second)), rec), api, rec
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2025, 2024, 2023, 2022, 2021, 2020}, Years(time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)))
}

func TestMonthly_Select(t *testing.T) {
	ctx := context.Background()

	t.Run("Re-queries the server on every change", func(t *testing.T) {
		m, api, _ := newMonthly(t)

		require.NoError(t, m.Select(ctx, 5, 2025))
		assert.Len(t, m.Sales(), 2)
		assert.Equal(t, "45000", m.Total().String())

		require.NoError(t, m.Select(ctx, 6, 2025))
		assert.Empty(t, m.Sales())
		assert.True(t, m.Total().IsZero())

		assert.Equal(t, []domain.MonthlyFilter{{Bulan: 5, Tahun: 2025}, {Bulan: 6, Tahun: 2025}}, api.Filters())
	})

	t.Run("Invalid month is rejected locally", func(t *testing.T) {
		m, api, rec := newMonthly(t)

		err := m.Select(ctx, 13, 2025)

		var verr rdomain.ValidationErrors
		assert.True(t, errors.As(err, &verr))
		assert.Empty(t, api.Filters())
		assert.Equal(t, 1, rec.Count(notify.LevelError))
	})

	t.Run("Server failure keeps the loaded report", func(t *testing.T) {
		m, api, rec := newMonthly(t)
		require.NoError(t, m.Select(ctx, 5, 2025))
		api.FailList()

		assert.Error(t, m.Select(ctx, 6, 2025))
		assert.Len(t, m.Sales(), 2)
		assert.Equal(t, 1, rec.Count(notify.LevelError))
	})
}

func TestMonthly_ItemCount(t *testing.T) {
	m, _, _ := newMonthly(t)
	require.NoError(t, m.Select(context.Background(), 5, 2025))

	n, ok := m.ItemCount(2)
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	_, ok = m.ItemCount(99)
	assert.False(t, ok)
}

func TestMonthly_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Needs confirmation", func(t *testing.T) {
		m, api, _ := newMonthly(t)
		require.NoError(t, m.Select(ctx, 5, 2025))

		assert.ErrorIs(t, m.ConfirmDelete(ctx), rdomain.ErrConfirmationRequired)
		assert.Empty(t, api.Deleted())
	})

	t.Run("Confirm deletes and reloads", func(t *testing.T) {
		m, api, rec := newMonthly(t)
		require.NoError(t, m.Select(ctx, 5, 2025))
		require.NoError(t, m.RequestDelete(2))

		require.NoError(t, m.ConfirmDelete(ctx))

		assert.Equal(t, []string{"2"}, api.Deleted())
		assert.Len(t, api.Filters(), 2)
		assert.Equal(t, 1, rec.Count(notify.LevelSuccess))
		_, pending := m.PendingDelete()
		assert.False(t, pending)
	})

	t.Run("Cancel", func(t *testing.T) {
		m, api, _ := newMonthly(t)
		require.NoError(t, m.Select(ctx, 5, 2025))
		require.NoError(t, m.RequestDelete(1))
		m.CancelDelete()

		assert.ErrorIs(t, m.ConfirmDelete(ctx), rdomain.ErrConfirmationRequired)
		assert.Empty(t, api.Deleted())
	})

	t.Run("Unknown sale", func(t *testing.T) {
		m, _, _ := newMonthly(t)
		assert.ErrorIs(t, m.RequestDelete(42), rdomain.ErrNotInCollection)
	})
}

func TestMonthly_Export(t *testing.T) {
	m, _, _ := newMonthly(t)
	require.NoError(t, m.Select(context.Background(), 5, 2025))

	t.Run("CSV", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, m.Export(&buf, FormatCSV))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "Nama Pelanggan,Total Harga,Barang\n"))
		assert.Contains(t, out, `Budi,Rp 40.000,"Kertas A4 (3 pcs), Jilid (2 pcs)"`)
		assert.Contains(t, out, "Total,Rp 45.000,")
	})

	t.Run("HTML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, m.Export(&buf, FormatHTML))
		assert.Contains(t, buf.String(), "<h2>Mei 2025</h2>")
	})

	t.Run("Unknown format", func(t *testing.T) {
		assert.ErrorIs(t, m.Export(io.Discard, Format("pdf")), ErrUnknownFormat)
	})
}

func TestHistory(t *testing.T) {
	api := &fakeSalesAPI{}
	srv := httptest.NewServer(http.HandlerFunc(api.handler))
	defer srv.Close()
	h := NewHistory(sgateway.New(rgateway.NewClient(srv.URL+"/api", 5*time.Second)), &notify.Recorder{})

	assert.True(t, h.Income().IsZero())
	require.NoError(t, h.Load(context.Background()))

	assert.Len(t, h.Sales(), 2)
	assert.Equal(t, "45000", h.Income().String())
	assert.Equal(t, []string{"Total Pemasukan", "", "Rp 45.000", ""}, h.Table().Footer)
}
