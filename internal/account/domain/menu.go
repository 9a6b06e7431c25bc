package domain

type MenuKey string

const (
	MenuKaryawan    MenuKey = "karyawan"
	MenuDistributor MenuKey = "distributor"
	MenuBarang      MenuKey = "barang"
	MenuPelanggan   MenuKey = "pelanggan"
	MenuPenjualan   MenuKey = "penjualan"
	MenuJasa        MenuKey = "jasa"
	MenuLaporan     MenuKey = "laporan"
	MenuKategori    MenuKey = "kategori"
)

type Menu struct {
	Key   MenuKey
	Label string
	Count int64
}

// AllMenus is the dashboard order.
var AllMenus = []Menu{
	{Key: MenuKaryawan, Label: "Karyawan"},
	{Key: MenuDistributor, Label: "Distributor"},
	{Key: MenuBarang, Label: "Barang"},
	{Key: MenuPelanggan, Label: "Pelanggan"},
	{Key: MenuPenjualan, Label: "Penjualan"},
	{Key: MenuJasa, Label: "Jasa"},
	{Key: MenuLaporan, Label: "Laporan"},
	{Key: MenuKategori, Label: "Kategori"},
}

var roleMenus = map[Role]map[MenuKey]bool{
	RoleAdmin: {
		MenuKaryawan:    true,
		MenuDistributor: true,
		MenuBarang:      true,
		MenuPelanggan:   true,
		MenuJasa:        true,
		MenuLaporan:     true,
		MenuKategori:    true,
	},
	RoleOperator: {
		MenuPelanggan: true,
		MenuPenjualan: true,
		MenuLaporan:   true,
		MenuKategori:  true,
	},
}

// Allows reports whether role may open the menu. Unknown roles see nothing.
func (r Role) Allows(key MenuKey) bool {
	return roleMenus[r][key]
}

// MenusFor filters AllMenus by role and fills in counts; a missing count is 0.
func MenusFor(role Role, counts DashboardCounts) []Menu {
	out := make([]Menu, 0, len(AllMenus))
	for _, m := range AllMenus {
		if !role.Allows(m.Key) {
			continue
		}
		m.Count = counts[m.Key]
		out = append(out, m)
	}
	return out
}
