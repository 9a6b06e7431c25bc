package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

type ItemType string

const (
	ItemBarang ItemType = "barang"
	ItemJasa   ItemType = "jasa"
)

// Sale is one penjualan with its line items. Harga is the sum of every line.
type Sale struct {
	ID            rdomain.ID      `json:"id" gorm:"primaryKey"`
	PelangganID   rdomain.ID      `json:"pelanggan_id" gorm:"not null;index"`
	PelangganName string          `json:"pelanggan_name" gorm:"size:150"`
	Harga         decimal.Decimal `json:"harga" gorm:"type:numeric(14,2);not null"`
	Kuantitas     int             `json:"kuantitas" gorm:"not null;default:0"`
	Items         []SaleItem      `json:"nama_barang" gorm:"foreignKey:PenjualanID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Sale) TableName() string         { return "penjualan" }
func (s Sale) RecordID() rdomain.ID    { return s.ID }
func (s Sale) DisplayName() string     { return s.PelangganName }
func (s Sale) Amount() decimal.Decimal { return s.Harga }

// ItemCount is the number of pieces across every line.
func (s Sale) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Kuantitas
	}
	return n
}

// LineTotal recomputes Σ harga_satuan × kuantitas from the stored lines.
func (s Sale) LineTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.Items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

// Describe lists the lines as "Kertas A4 (3 pcs), Tinta (2 pcs)".
func (s Sale) Describe() string {
	parts := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		parts = append(parts, fmt.Sprintf("%s (%d pcs)", it.NamaBarang, it.Kuantitas))
	}
	return strings.Join(parts, ", ")
}

type SaleItem struct {
	ID          rdomain.ID      `json:"id" gorm:"primaryKey"`
	PenjualanID rdomain.ID      `json:"-" gorm:"not null;index"`
	ItemType    ItemType        `json:"item_type" gorm:"size:10;not null"`
	ItemID      rdomain.ID      `json:"item_id" gorm:"not null"`
	NamaBarang  string          `json:"nama_barang" gorm:"size:150;not null"`
	Kuantitas   int             `json:"kuantitas" gorm:"not null"`
	HargaSatuan decimal.Decimal `json:"harga_satuan" gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (SaleItem) TableName() string { return "penjualan_items" }

func (i SaleItem) Subtotal() decimal.Decimal {
	return i.HargaSatuan.Mul(decimal.NewFromInt(int64(i.Kuantitas)))
}

// Untuk request pembuatan penjualan; barang dan jasa dikirim terpisah
type BarangLine struct {
	IDBarang    rdomain.ID      `json:"id_barang" binding:"required"`
	NamaBarang  string          `json:"nama_barang"`
	Kuantitas   int             `json:"kuantitas" binding:"required,gt=0"`
	HargaSatuan decimal.Decimal `json:"harga_satuan" binding:"min=0"`
}

type JasaLine struct {
	IDJasa      rdomain.ID      `json:"id_jasa" binding:"required"`
	NamaJasa    string          `json:"nama_jasa"`
	Kuantitas   int             `json:"kuantitas" binding:"required,gt=0"`
	HargaSatuan decimal.Decimal `json:"harga_satuan" binding:"min=0"`
}

type CreateSaleRequest struct {
	PelangganID rdomain.ID      `json:"pelanggan_id" binding:"required"`
	Harga       decimal.Decimal `json:"harga"`
	Barang      []BarangLine    `json:"nama_barang" binding:"dive"`
	Jasa        []JasaLine      `json:"nama_jasa" binding:"dive"`
}

// Total is Σ harga_satuan × kuantitas over both line lists.
func (r CreateSaleRequest) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range r.Barang {
		sum = sum.Add(l.HargaSatuan.Mul(decimal.NewFromInt(int64(l.Kuantitas))))
	}
	for _, l := range r.Jasa {
		sum = sum.Add(l.HargaSatuan.Mul(decimal.NewFromInt(int64(l.Kuantitas))))
	}
	return sum
}

func (r CreateSaleRequest) LineCount() int {
	return len(r.Barang) + len(r.Jasa)
}

type CreateSaleResponse struct {
	Message string `json:"message"`
	Data    Sale   `json:"data"`
}

type MonthlyFilter struct {
	Bulan int `json:"bulan" binding:"required,min=1,max=12"`
	Tahun int `json:"tahun" binding:"required,min=2000,max=9999"`
}

func (f MonthlyFilter) Period() rdomain.Period {
	return rdomain.Period{Month: f.Bulan, Year: f.Tahun}
}

// Range returns [first day of month, first day of next month) in loc.
func (f MonthlyFilter) Range(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(f.Tahun, time.Month(f.Bulan), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian month name, or "" when m is out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}
