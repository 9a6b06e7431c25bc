package screen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adomain "github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/kategori", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"id_kategori":1,"nama_kategori":"ATK"},{"id_kategori":2,"nama_kategori":"Cetak"}]}`)
	})
	mux.HandleFunc("/api/barang", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"data":[{"id":1,"name":"Kertas A4","quantity":10,"price":"50000","category":"ATK"}]}`)
		case http.MethodPost:
			var in map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			in["id"] = 2
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{"data": in})
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCatalog_BarangUsesLoadedCategories(t *testing.T) {
	ctx := context.Background()
	srv := fakeAPI(t)
	rec := &notify.Recorder{}
	cat := NewCatalog(gateway.NewClient(srv.URL+"/api", 5*time.Second), rec)

	require.NoError(t, cat.Kategori.Mount(ctx))
	assert.Equal(t, []string{"ATK", "Cetak"}, cat.CategoryNames())

	require.NoError(t, cat.Barang.Mount(ctx))
	assert.Equal(t, "50000", cat.Barang.Total().String())

	require.NoError(t, cat.Barang.OpenAdd())
	require.NoError(t, cat.Barang.SetField("name", "Tinta"))
	require.NoError(t, cat.Barang.SetField("quantity", "5"))
	require.NoError(t, cat.Barang.SetField("price", "75000"))
	require.NoError(t, cat.Barang.SetField("category", "Makanan"))

	_, err := cat.Barang.Submit(ctx)
	var verr rdomain.ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr["category"], "ATK")

	require.NoError(t, cat.Barang.SetField("category", "ATK"))
	saved, err := cat.Barang.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, rdomain.ID(2), saved.ID)
	assert.Equal(t, "125000", cat.Barang.Total().String())
	assert.Equal(t, 1, rec.Count(notify.LevelSuccess))
}

func TestCatalog_All(t *testing.T) {
	cat := NewCatalog(gateway.NewClient("http://localhost:8000/api", time.Second), notify.LogNotifier{})
	screens := cat.All()

	assert.Len(t, screens, 6)
	assert.Equal(t, "employees", screens[adomain.MenuKaryawan].Path())
	assert.Equal(t, "distributors", screens[adomain.MenuDistributor].Path())
	_, hasSales := screens[adomain.MenuPenjualan]
	assert.False(t, hasSales)
}

func TestDefinitions_RoundTripDraft(t *testing.T) {
	def := Karyawan()
	rec, err := def.Schema.Validate(4, def.Schema.Fill(def.Schema.Build(4, map[string]string{
		"name": "Andi", "phone": "0812", "address": "Jl. Melati", "status": "PKWT",
	})))
	require.NoError(t, err)
	assert.Equal(t, rdomain.ID(4), rec.ID)
	assert.Equal(t, "PKWT", rec.Status)

	_, err = def.Schema.Validate(0, map[string]string{"name": "Andi", "phone": "0812", "address": "x", "status": "Magang"})
	assert.Error(t, err)
}
