// Package screen declares the catalog screens of the back-office.
package screen

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource/form"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
)

func price(d decimal.Decimal) string { return report.Rupiah(d) }

// Barang takes the category choices from the loaded Kategori collection.
func Barang(categories func() []string) resource.Definition[domain.Barang] {
	return resource.Definition[domain.Barang]{
		Name: "Barang",
		Path: "barang",
		Schema: form.Schema[domain.Barang]{
			Fields: []form.Field{
				{Name: "name", Label: "Nama Barang", Kind: form.Text, Required: true},
				{Name: "quantity", Label: "Jumlah", Kind: form.Integer, Required: true},
				{Name: "price", Label: "Harga", Kind: form.Number, Required: true},
				{Name: "category", Label: "Kategori", Kind: form.Choice, Options: categories},
			},
			Fill: func(b domain.Barang) form.Draft {
				return form.Draft{
					"name":     b.Name,
					"quantity": strconv.Itoa(b.Quantity),
					"price":    b.Price.String(),
					"category": b.Category,
				}
			},
			Build: func(id rdomain.ID, d form.Draft) domain.Barang {
				return domain.Barang{
					ID:       id,
					Name:     d.Text("name"),
					Quantity: d.Int("quantity"),
					Price:    d.Decimal("price"),
					Category: d.Text("category"),
				}
			},
		},
		Amount:  func(b domain.Barang) decimal.Decimal { return b.Price },
		Columns: []string{"ID", "Nama", "Jumlah", "Harga", "Kategori"},
		Row: func(b domain.Barang) []string {
			return []string{b.ID.String(), b.Name, strconv.Itoa(b.Quantity), price(b.Price), b.Category}
		},
	}
}

func Jasa() resource.Definition[domain.Jasa] {
	return resource.Definition[domain.Jasa]{
		Name: "Jasa",
		Path: "jasa",
		Schema: form.Schema[domain.Jasa]{
			Fields: []form.Field{
				{Name: "name", Label: "Nama Jasa", Kind: form.Text, Required: true},
				{Name: "price", Label: "Harga", Kind: form.Number, Required: true},
				{Name: "category", Label: "Kategori", Kind: form.Text, Default: domain.DefaultJasaCategory},
			},
			Fill: func(j domain.Jasa) form.Draft {
				return form.Draft{"name": j.Name, "price": j.Price.String(), "category": j.Category}
			},
			Build: func(id rdomain.ID, d form.Draft) domain.Jasa {
				return domain.Jasa{ID: id, Name: d.Text("name"), Price: d.Decimal("price"), Category: d.Text("category")}
			},
		},
		Amount:  func(j domain.Jasa) decimal.Decimal { return j.Price },
		Columns: []string{"ID", "Nama", "Harga", "Kategori"},
		Row: func(j domain.Jasa) []string {
			return []string{j.ID.String(), j.Name, price(j.Price), j.Category}
		},
	}
}

func Distributor() resource.Definition[domain.Distributor] {
	return resource.Definition[domain.Distributor]{
		Name: "Distributor",
		Path: "distributors",
		Schema: form.Schema[domain.Distributor]{
			Fields: []form.Field{
				{Name: "name", Label: "Nama", Kind: form.Text, Required: true},
				{Name: "phone", Label: "Telepon", Kind: form.Text, Required: true},
				{Name: "address", Label: "Alamat", Kind: form.Text, Required: true},
			},
			Fill: func(d domain.Distributor) form.Draft {
				return form.Draft{"name": d.Name, "phone": d.Phone, "address": d.Address}
			},
			Build: func(id rdomain.ID, d form.Draft) domain.Distributor {
				return domain.Distributor{ID: id, Name: d.Text("name"), Phone: d.Text("phone"), Address: d.Text("address")}
			},
		},
		Columns: []string{"ID", "Nama", "Telepon", "Alamat"},
		Row: func(d domain.Distributor) []string {
			return []string{d.ID.String(), d.Name, d.Phone, d.Address}
		},
	}
}

func Karyawan() resource.Definition[domain.Karyawan] {
	return resource.Definition[domain.Karyawan]{
		Name: "Karyawan",
		Path: "employees",
		Schema: form.Schema[domain.Karyawan]{
			Fields: []form.Field{
				{Name: "name", Label: "Nama", Kind: form.Text, Required: true},
				{Name: "phone", Label: "Telepon", Kind: form.Text, Required: true},
				{Name: "address", Label: "Alamat", Kind: form.Text, Required: true},
				{Name: "status", Label: "Status", Kind: form.Choice, Required: true, Options: form.StaticOptions(domain.EmployeeStatuses...)},
			},
			Fill: func(k domain.Karyawan) form.Draft {
				return form.Draft{"name": k.Name, "phone": k.Phone, "address": k.Address, "status": k.Status}
			},
			Build: func(id rdomain.ID, d form.Draft) domain.Karyawan {
				return domain.Karyawan{ID: id, Name: d.Text("name"), Phone: d.Text("phone"), Address: d.Text("address"), Status: d.Text("status")}
			},
		},
		Columns: []string{"ID", "Nama", "Telepon", "Alamat", "Status"},
		Row: func(k domain.Karyawan) []string {
			return []string{k.ID.String(), k.Name, k.Phone, k.Address, k.Status}
		},
	}
}

func Kategori() resource.Definition[domain.Kategori] {
	return resource.Definition[domain.Kategori]{
		Name: "Kategori",
		Path: "kategori",
		Schema: form.Schema[domain.Kategori]{
			Fields: []form.Field{
				{Name: "nama_kategori", Label: "Nama Kategori", Kind: form.Text, Required: true},
			},
			Fill: func(k domain.Kategori) form.Draft {
				return form.Draft{"nama_kategori": k.NamaKategori}
			},
			Build: func(id rdomain.ID, d form.Draft) domain.Kategori {
				return domain.Kategori{IDKategori: id, NamaKategori: d.Text("nama_kategori")}
			},
		},
		Columns: []string{"ID", "Nama Kategori"},
		Row: func(k domain.Kategori) []string {
			return []string{k.IDKategori.String(), k.NamaKategori}
		},
	}
}

func Pelanggan() resource.Definition[domain.Pelanggan] {
	return resource.Definition[domain.Pelanggan]{
		Name: "Pelanggan",
		Path: "pelanggan",
		Schema: form.Schema[domain.Pelanggan]{
			Fields: []form.Field{
				{Name: "name", Label: "Nama", Kind: form.Text, Required: true},
				{Name: "alamat", Label: "Alamat", Kind: form.Text, Required: true},
				{Name: "phone", Label: "Telepon", Kind: form.Text, Required: true},
			},
			Fill: func(p domain.Pelanggan) form.Draft {
				return form.Draft{"name": p.Name, "alamat": p.Alamat, "phone": p.Phone}
			},
			Build: func(id rdomain.ID, d form.Draft) domain.Pelanggan {
				return domain.Pelanggan{ID: id, Name: d.Text("name"), Alamat: d.Text("alamat"), Phone: d.Text("phone")}
			},
		},
		Columns: []string{"ID", "Nama", "Alamat", "Telepon"},
		Row: func(p domain.Pelanggan) []string {
			return []string{p.ID.String(), p.Name, p.Alamat, p.Phone}
		},
	}
}
