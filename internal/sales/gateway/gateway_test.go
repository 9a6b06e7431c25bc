package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rgateway "github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
)

func newGateway(t *testing.T, h http.HandlerFunc) *SalesGateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(rgateway.NewClient(srv.URL+"/api", 5*time.Second))
}

func TestSalesGateway_Monthly(t *testing.T) {
	var got domain.MonthlyFilter
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/penjualan/monthly", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"data":[{"id":3,"pelanggan_id":1,"pelanggan_name":"Budi","harga":"40000","nama_barang":[{"nama_barang":"Kertas A4","kuantitas":3}]}]}`)
	})

	sales, err := MonthlySource{g}.List(context.Background(), rdomain.Query{Period: &rdomain.Period{Month: 5, Year: 2025}})

	require.NoError(t, err)
	assert.Equal(t, domain.MonthlyFilter{Bulan: 5, Tahun: 2025}, got)
	require.Len(t, sales, 1)
	assert.Equal(t, "Budi", sales[0].PelangganName)
	assert.True(t, decimal.NewFromInt(40000).Equal(sales[0].Harga))
	assert.Equal(t, "Kertas A4 (3 pcs)", sales[0].Describe())
}

func TestMonthlySource_RequiresPeriod(t *testing.T) {
	src := MonthlySource{New(rgateway.NewClient("http://127.0.0.1:1", time.Second))}

	_, err := src.List(context.Background(), rdomain.DefaultQuery())
	assert.ErrorIs(t, err, ErrNoPeriod)

	_, err = src.Create(context.Background(), domain.Sale{})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestSalesGateway_Today(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/penjualans/today", r.URL.Path)
		io.WriteString(w, `{"data":null}`)
	})

	sales, err := TodaySource{g}.List(context.Background(), rdomain.DefaultQuery())

	require.NoError(t, err)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)
}

func TestSalesGateway_Submit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]json.RawMessage
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body, "nama_barang")
			assert.Contains(t, body, "nama_jasa")
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"message":"Penjualan berhasil disimpan","data":{"id":9,"harga":"40000"}}`)
		})

		resp, err := g.Submit(context.Background(), domain.CreateSaleRequest{PelangganID: 1, Barang: []domain.BarangLine{}, Jasa: []domain.JasaLine{}})

		require.NoError(t, err)
		assert.Equal(t, "Penjualan berhasil disimpan", resp.Message)
		assert.Equal(t, rdomain.ID(9), resp.Data.ID)
	})

	t.Run("Server error message surfaces", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			io.WriteString(w, `{"error":"stok tidak cukup"}`)
		})

		_, err := g.Submit(context.Background(), domain.CreateSaleRequest{PelangganID: 1})

		var srvErr *rdomain.ServerError
		require.ErrorAs(t, err, &srvErr)
		assert.Equal(t, http.StatusConflict, srvErr.Status)
		assert.Equal(t, "stok tidak cukup", srvErr.Message)
	})
}

func TestSalesGateway_Remove(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/penjualan/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, MonthlySource{g}.Remove(context.Background(), 3))
}
