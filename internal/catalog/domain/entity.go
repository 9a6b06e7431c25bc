package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

const (
	StatusPKWT  = "PKWT"
	StatusPKWTT = "PKWTT"

	// DefaultJasaCategory is preselected when adding a service.
	DefaultJasaCategory = "Jasa"
)

// EmployeeStatuses are the contract types a Karyawan can have.
var EmployeeStatuses = []string{StatusPKWT, StatusPKWTT}

// Entity is a catalog record that also knows its table layout, so one generic
// repository can serve every catalog table.
type Entity[T any] interface {
	rdomain.Record
	TableName() string
	PrimaryKey() string
	SearchColumn() string
	WithID(id rdomain.ID) T
	Normalize() T
}

type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Barang struct {
	ID       rdomain.ID      `json:"id" gorm:"primaryKey"`
	Name     string          `json:"name" gorm:"size:150;not null" binding:"required,max=150" validate:"required,max=150"`
	Quantity int             `json:"quantity" gorm:"not null;default:0" binding:"min=0" validate:"min=0"`
	Price    decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null" binding:"min=0" validate:"min=0"`
	Category string          `json:"category" gorm:"size:100"`
	Timestamps
}

func (Barang) TableName() string             { return "barang" }
func (Barang) PrimaryKey() string            { return "id" }
func (Barang) SearchColumn() string          { return "name" }
func (b Barang) RecordID() rdomain.ID        { return b.ID }
func (b Barang) DisplayName() string         { return b.Name }
func (b Barang) WithID(id rdomain.ID) Barang { b.ID = id; return b }

type Jasa struct {
	ID       rdomain.ID      `json:"id" gorm:"primaryKey"`
	Name     string          `json:"name" gorm:"size:150;not null" binding:"required,max=150" validate:"required,max=150"`
	Price    decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null" binding:"min=0" validate:"min=0"`
	Category string          `json:"category" gorm:"size:100"`
	Timestamps
}

func (Jasa) TableName() string           { return "jasa" }
func (Jasa) PrimaryKey() string          { return "id" }
func (Jasa) SearchColumn() string        { return "name" }
func (j Jasa) RecordID() rdomain.ID      { return j.ID }
func (j Jasa) DisplayName() string       { return j.Name }
func (j Jasa) WithID(id rdomain.ID) Jasa { j.ID = id; return j }

type Distributor struct {
	ID      rdomain.ID `json:"id" gorm:"primaryKey"`
	Name    string     `json:"name" gorm:"size:150;not null" binding:"required,max=150" validate:"required,max=150"`
	Phone   string     `json:"phone" gorm:"size:30;not null" binding:"required,max=30" validate:"required,max=30"`
	Address string     `json:"address" gorm:"not null" binding:"required" validate:"required"`
	Timestamps
}

func (Distributor) TableName() string                  { return "distributors" }
func (Distributor) PrimaryKey() string                 { return "id" }
func (Distributor) SearchColumn() string               { return "name" }
func (d Distributor) RecordID() rdomain.ID             { return d.ID }
func (d Distributor) DisplayName() string              { return d.Name }
func (d Distributor) WithID(id rdomain.ID) Distributor { d.ID = id; return d }

// Karyawan is stored in the "employees" table.
type Karyawan struct {
	ID      rdomain.ID `json:"id" gorm:"primaryKey"`
	Name    string     `json:"name" gorm:"size:150;not null" binding:"required,max=150" validate:"required,max=150"`
	Phone   string     `json:"phone" gorm:"size:30;not null" binding:"required,max=30" validate:"required,max=30"`
	Address string     `json:"address" gorm:"not null" binding:"required" validate:"required"`
	Status  string     `json:"status" gorm:"size:10;not null" binding:"required" validate:"required,oneof=PKWT PKWTT"`
	Timestamps
}

func (Karyawan) TableName() string               { return "employees" }
func (Karyawan) PrimaryKey() string              { return "id" }
func (Karyawan) SearchColumn() string            { return "name" }
func (k Karyawan) RecordID() rdomain.ID          { return k.ID }
func (k Karyawan) DisplayName() string           { return k.Name }
func (k Karyawan) WithID(id rdomain.ID) Karyawan { k.ID = id; return k }

// Kategori keys on id_kategori, not id.
type Kategori struct {
	IDKategori   rdomain.ID `json:"id_kategori" gorm:"column:id_kategori;primaryKey"`
	NamaKategori string     `json:"nama_kategori" gorm:"size:100;not null;uniqueIndex" binding:"required,max=100" validate:"required,max=100"`
	Timestamps
}

func (Kategori) TableName() string               { return "kategori" }
func (Kategori) PrimaryKey() string              { return "id_kategori" }
func (Kategori) SearchColumn() string            { return "nama_kategori" }
func (k Kategori) RecordID() rdomain.ID          { return k.IDKategori }
func (k Kategori) DisplayName() string           { return k.NamaKategori }
func (k Kategori) WithID(id rdomain.ID) Kategori { k.IDKategori = id; return k }

type Pelanggan struct {
	ID     rdomain.ID `json:"id" gorm:"primaryKey"`
	Name   string     `json:"name" gorm:"size:150;not null" binding:"required,max=150" validate:"required,max=150"`
	Alamat string     `json:"alamat" gorm:"not null" binding:"required" validate:"required"`
	Phone  string     `json:"phone" gorm:"size:30;not null" binding:"required,max=30" validate:"required,max=30"`
	Timestamps
}

func (Pelanggan) TableName() string                { return "pelanggan" }
func (Pelanggan) PrimaryKey() string               { return "id" }
func (Pelanggan) SearchColumn() string             { return "name" }
func (p Pelanggan) RecordID() rdomain.ID           { return p.ID }
func (p Pelanggan) DisplayName() string            { return p.Name }
func (p Pelanggan) WithID(id rdomain.ID) Pelanggan { p.ID = id; return p }

// Models lists every catalog table, in migration order.
func Models() []interface{} {
	return []interface{}{&Kategori{}, &Barang{}, &Jasa{}, &Distributor{}, &Karyawan{}, &Pelanggan{}}
}

// Normalize trims user input before it is validated and stored.
func (b Barang) Normalize() Barang {
	b.Name = strings.TrimSpace(b.Name)
	b.Category = strings.TrimSpace(b.Category)
	return b
}

func (j Jasa) Normalize() Jasa {
	j.Name = strings.TrimSpace(j.Name)
	j.Category = strings.TrimSpace(j.Category)
	if j.Category == "" {
		j.Category = DefaultJasaCategory
	}
	return j
}

func (d Distributor) Normalize() Distributor {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	return d
}

func (k Karyawan) Normalize() Karyawan {
	k.Name = strings.TrimSpace(k.Name)
	k.Phone = strings.TrimSpace(k.Phone)
	k.Address = strings.TrimSpace(k.Address)
	k.Status = strings.ToUpper(strings.TrimSpace(k.Status))
	return k
}

func (k Kategori) Normalize() Kategori {
	k.NamaKategori = strings.TrimSpace(k.NamaKategori)
	return k
}

func (p Pelanggan) Normalize() Pelanggan {
	p.Name = strings.TrimSpace(p.Name)
	p.Alamat = strings.TrimSpace(p.Alamat)
	p.Phone = strings.TrimSpace(p.Phone)
	return p
}
