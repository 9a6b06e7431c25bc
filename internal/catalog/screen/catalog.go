package screen

import (
	adomain "github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	"github.com/ridloal/hidayah-backoffice/internal/resource"
	"github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
)

// Catalog holds one controller per catalog screen, all sharing one HTTP client.
type Catalog struct {
	Barang      *resource.Controller[domain.Barang]
	Jasa        *resource.Controller[domain.Jasa]
	Distributor *resource.Controller[domain.Distributor]
	Karyawan    *resource.Controller[domain.Karyawan]
	Kategori    *resource.Controller[domain.Kategori]
	Pelanggan   *resource.Controller[domain.Pelanggan]
}

func NewCatalog(client *gateway.Client, n notify.Notifier) *Catalog {
	c := &Catalog{}
	c.Kategori = newController(client, Kategori(), n)
	c.Barang = newController(client, Barang(c.CategoryNames), n)
	c.Jasa = newController(client, Jasa(), n)
	c.Distributor = newController(client, Distributor(), n)
	c.Karyawan = newController(client, Karyawan(), n)
	c.Pelanggan = newController(client, Pelanggan(), n)
	return c
}

func newController[T domain.Entity[T]](client *gateway.Client, def resource.Definition[T], n notify.Notifier) *resource.Controller[T] {
	return resource.NewController[T](def, gateway.NewHTTPGateway[T](client, def.Path), n)
}

// CategoryNames returns the names in the currently loaded Kategori collection.
func (c *Catalog) CategoryNames() []string {
	items := c.Kategori.Store().Items()
	names := make([]string, 0, len(items))
	for _, k := range items {
		names = append(names, k.NamaKategori)
	}
	return names
}

// All indexes the catalog screens by their dashboard menu key.
func (c *Catalog) All() map[adomain.MenuKey]resource.Screen {
	return map[adomain.MenuKey]resource.Screen{
		adomain.MenuBarang:      c.Barang.Screen(),
		adomain.MenuJasa:        c.Jasa.Screen(),
		adomain.MenuDistributor: c.Distributor.Screen(),
		adomain.MenuKaryawan:    c.Karyawan.Screen(),
		adomain.MenuKategori:    c.Kategori.Screen(),
		adomain.MenuPelanggan:   c.Pelanggan.Screen(),
	}
}
