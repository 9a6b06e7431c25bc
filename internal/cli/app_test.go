package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/hidayah-backoffice/internal/platform/config"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
)

// fakeAPI serves just enough of the back-office API for the commands under test.
type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	sale     map[string]interface{}
}

func (f *fakeAPI) seen(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == method+" "+path {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.Method + " " + r.URL.Path {
	case "POST /api/login":
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "rahasia" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Username atau password salah"}`))
			return
		}
		role := "operator"
		if req.Username == "admin" {
			role = "admin"
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 1, "nama": "Pengguna", "username": req.Username, "role": role},
		})
	case "GET /api/barang":
		w.Write([]byte(`{"data":[{"id":1,"name":"Kertas A4","quantity":10,"price":50000,"category":"ATK"},{"id":2,"name":"Tinta","quantity":3,"price":25000,"category":"ATK"}]}`))
	case "GET /api/kategori":
		w.Write([]byte(`{"data":[{"id_kategori":1,"nama_kategori":"ATK"}]}`))
	case "GET /api/jasa":
		w.Write([]byte(`{"data":[{"id":5,"name":"Fotokopi","price":500,"category":"Jasa"}]}`))
	case "GET /api/pelanggan":
		w.Write([]byte(`{"data":[{"id":7,"name":"Budi","alamat":"Jl. Mawar","phone":"0812"}]}`))
	case "POST /api/penjualan":
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.sale = req
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Penjualan berhasil disimpan","data":{"id":42,"pelanggan_id":7,"pelanggan_name":"Budi","harga":101000,"kuantitas":4}}`))
	case "POST /api/penjualan/monthly":
		w.Write([]byte(`{"data":[{"id":42,"pelanggan_name":"Budi","harga":101000,"nama_barang":[{"nama_barang":"Kertas A4","kuantitas":2,"harga_satuan":50000}]}]}`))
	case "GET /api/dashboard/counts":
		w.Write([]byte(`{"pelanggan":4,"penjualan":9,"laporan":9,"kategori":1}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}
}

type harness struct {
	api   *fakeAPI
	cfg   config.ClientConfig
	out   *bytes.Buffer
	notes *notify.Recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return &harness{
		api: api,
		cfg: config.ClientConfig{
			APIBaseURL:           srv.URL + "/api/",
			SessionFile:          filepath.Join(t.TempDir(), "session.json"),
			HTTPTimeout:          time.Second,
			DashboardRefreshSpec: "@every 1s",
		},
		out:   &bytes.Buffer{},
		notes: &notify.Recorder{},
	}
}

// run executes one command in a fresh App, the way separate invocations would.
func (h *harness) run(args ...string) error {
	h.out.Reset()
	return New(h.cfg, h.out, h.notes).Run(context.Background(), args)
}

func (h *harness) login(t *testing.T, username string) {
	t.Helper()
	require.NoError(t, h.run("login", "-u", username, "-p", "rahasia"))
}

func TestApp_Login(t *testing.T) {
	t.Run("Session survives across invocations", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		last, ok := h.notes.Last()
		require.True(t, ok)
		assert.Equal(t, notify.LevelSuccess, last.Level)

		require.NoError(t, h.run("whoami"))
		assert.Contains(t, h.out.String(), "Role: admin")

		require.NoError(t, h.run("logout"))
		require.NoError(t, h.run("whoami"))
		assert.Contains(t, h.out.String(), "Belum login")
	})

	t.Run("Wrong password", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("login", "-u", "admin", "-p", "salah")

		assert.Error(t, err)
		assert.Equal(t, 1, h.notes.Count(notify.LevelError))
		_, statErr := os.Stat(h.cfg.SessionFile)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Unknown command prints usage", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("frobnicate")

		assert.ErrorIs(t, err, ErrUsage)
		assert.Contains(t, h.out.String(), "usage: backoffice COMMAND")
	})
}

func TestApp_List(t *testing.T) {
	t.Run("Requires login", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("list", "barang")

		assert.Error(t, err)
		assert.Zero(t, h.api.seen(http.MethodGet, "/api/barang"))
	})

	t.Run("Admin lists barang with total", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		require.NoError(t, h.run("list", "barang", "-sort", "az"))

		out := h.out.String()
		assert.Contains(t, out, "Kertas A4")
		assert.Contains(t, out, "Tinta")
		assert.Contains(t, out, report.Rupiah(decimal.NewFromInt(75000)))
		assert.Less(t, strings.Index(out, "Kertas A4"), strings.Index(out, "Tinta"))
		assert.Equal(t, 1, h.api.seen(http.MethodGet, "/api/kategori"))
	})

	t.Run("CSV export", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		require.NoError(t, h.run("list", "jasa", "-format", "csv"))

		assert.True(t, strings.HasPrefix(h.out.String(), "ID,Nama"))
	})

	t.Run("Operator may not open barang", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "siti")

		err := h.run("list", "barang")

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Zero(t, h.api.seen(http.MethodGet, "/api/barang"))
	})
}

func TestApp_Add(t *testing.T) {
	t.Run("Invalid form never reaches the server", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		err := h.run("add", "barang", "quantity=-1", "price=1000")

		assert.Error(t, err)
		assert.Zero(t, h.api.seen(http.MethodPost, "/api/barang"))
		last, ok := h.notes.Last()
		require.True(t, ok)
		assert.Equal(t, notify.LevelError, last.Level)
	})

	t.Run("Malformed assignment", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		err := h.run("add", "barang", "name")

		assert.ErrorIs(t, err, ErrUsage)
	})
}

func TestApp_Sell(t *testing.T) {
	t.Run("Submits the cart", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "siti")

		err := h.run("sell", "-pelanggan", "7", "-item", "barang:1:2", "-item", "jasa:5:2")

		require.NoError(t, err)
		assert.Contains(t, h.out.String(), "Penjualan 42")
		require.NotNil(t, h.api.sale)
		assert.EqualValues(t, 7, h.api.sale["pelanggan_id"])
		last, _ := h.notes.Last()
		assert.Equal(t, "Penjualan berhasil disimpan", last.Message)
	})

	t.Run("Unknown item is refused before submit", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "siti")

		err := h.run("sell", "-pelanggan", "7", "-item", "barang:99")

		assert.Error(t, err)
		assert.Zero(t, h.api.seen(http.MethodPost, "/api/penjualan"))
	})

	t.Run("Bad item flag", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "siti")

		err := h.run("sell", "-pelanggan", "7", "-item", "sabun:1")

		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("Admin has no penjualan menu", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		err := h.run("sell", "-pelanggan", "7", "-item", "barang:1")

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func thisYear() string { return strconv.Itoa(time.Now().Year()) }

func TestApp_Report(t *testing.T) {
	t.Run("Monthly text report", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		require.NoError(t, h.run("report", "-bulan", "3", "-tahun", thisYear()))

		assert.Contains(t, h.out.String(), "Laporan Penjualan")
		assert.Contains(t, h.out.String(), "Budi")
	})

	t.Run("Delete needs -yes", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")

		err := h.run("report", "-bulan", "3", "-tahun", thisYear(), "-delete", "42")

		assert.ErrorIs(t, err, ErrUsage)
		assert.Zero(t, h.api.seen(http.MethodDelete, "/api/penjualan/42"))
	})

	t.Run("HTML export to file", func(t *testing.T) {
		h := newHarness(t)
		h.login(t, "admin")
		path := filepath.Join(t.TempDir(), "laporan.html")

		require.NoError(t, h.run("report", "-format", "html", "-o", path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<table")
		assert.Empty(t, h.out.String())
	})
}

func TestApp_Dashboard(t *testing.T) {
	h := newHarness(t)
	h.login(t, "siti")

	require.NoError(t, h.run("dashboard"))

	out := h.out.String()
	assert.Contains(t, out, "Pelanggan")
	assert.NotContains(t, out, "Karyawan")
}
