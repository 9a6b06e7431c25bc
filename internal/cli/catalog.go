package cli

import (
	"context"
	"fmt"
	"strings"

	adomain "github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
)

func (a *App) writeTable(format string, t report.Table) error {
	var err error
	switch format {
	case "", "text":
		err = report.WriteText(a.out, t)
	case "csv":
		err = report.WriteCSV(a.out, t)
	case "html":
		err = report.WriteHTML(a.out, t)
	default:
		return a.fail(fmt.Errorf("%w: format %q tidak dikenal", ErrUsage, format))
	}
	if err != nil {
		return a.fail(err)
	}
	return nil
}

// open resolves and loads a catalog screen. Barang also needs the kategori
// list, which feeds its category choices.
func (a *App) open(ctx context.Context, menu string) (resource.Screen, error) {
	s, err := a.screen(menu)
	if err != nil {
		return nil, err
	}
	if adomain.MenuKey(strings.ToLower(menu)) == adomain.MenuBarang {
		if err := a.catalog.Kategori.Mount(ctx); err != nil {
			return nil, err
		}
	}
	if err := s.Mount(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *App) list(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return a.fail(fmt.Errorf("%w: menu wajib diisi", ErrUsage))
	}
	fs := newFlagSet("list")
	search := fs.String("search", "", "filter by name")
	sortBy := fs.String("sort", "", "latest, oldest, az or za")
	format := fs.String("format", "text", "text, csv or html")
	if err := a.parse(fs, args[1:]); err != nil {
		return err
	}

	s, err := a.open(ctx, args[0])
	if err != nil {
		return err
	}
	defer s.Unmount()

	if *sortBy != "" {
		if err := s.Sort(ctx, rdomain.Sort(*sortBy)); err != nil {
			return err
		}
	}
	if *search != "" {
		if err := s.Search(ctx, *search); err != nil {
			return err
		}
	}

	t := s.Table()
	if total, ok := s.Total(); ok {
		t.Footer = make([]string, len(t.Columns))
		t.Footer[0] = "Total"
		t.Footer[amountColumn(t.Columns)] = report.Rupiah(total)
	}
	return a.writeTable(*format, t)
}

// amountColumn is where the total goes: under "Harga", else the last column.
func amountColumn(columns []string) int {
	for i, c := range columns {
		if c == "Harga" {
			return i
		}
	}
	return len(columns) - 1
}

// parseAssignments splits "field=value" arguments, keeping '=' inside values.
func (a *App) parseAssignments(args []string) ([][2]string, error) {
	out := make([][2]string, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, a.fail(fmt.Errorf("%w: %q bukan field=value", ErrUsage, arg))
		}
		out = append(out, [2]string{name, value})
	}
	return out, nil
}

func (a *App) fill(s resource.Screen, assignments [][2]string) error {
	for _, kv := range assignments {
		if err := s.SetField(kv[0], kv[1]); err != nil {
			s.Cancel()
			return err
		}
	}
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return a.fail(fmt.Errorf("%w: menu wajib diisi", ErrUsage))
	}
	assignments, err := a.parseAssignments(args[1:])
	if err != nil {
		return err
	}
	s, err := a.open(ctx, args[0])
	if err != nil {
		return err
	}
	defer s.Unmount()

	if err := s.OpenAdd(); err != nil {
		return err
	}
	if err := a.fill(s, assignments); err != nil {
		return err
	}
	id, err := s.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s\n", s.Title(), id)
	return nil
}

func (a *App) edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.fail(fmt.Errorf("%w: menu dan id wajib diisi", ErrUsage))
	}
	id, err := rdomain.ParseID(args[1])
	if err != nil {
		return a.fail(fmt.Errorf("%w: id %q tidak valid", ErrUsage, args[1]))
	}
	assignments, err := a.parseAssignments(args[2:])
	if err != nil {
		return err
	}
	s, err := a.open(ctx, args[0])
	if err != nil {
		return err
	}
	defer s.Unmount()

	if err := s.OpenEdit(id); err != nil {
		return err
	}
	if err := a.fill(s, assignments); err != nil {
		return err
	}
	if _, err := s.Submit(ctx); err != nil {
		return err
	}
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.fail(fmt.Errorf("%w: menu dan id wajib diisi", ErrUsage))
	}
	id, err := rdomain.ParseID(args[1])
	if err != nil {
		return a.fail(fmt.Errorf("%w: id %q tidak valid", ErrUsage, args[1]))
	}
	fs := newFlagSet("delete")
	yes := fs.Bool("yes", false, "confirm the delete")
	if err := a.parse(fs, args[2:]); err != nil {
		return err
	}
	s, err := a.open(ctx, args[0])
	if err != nil {
		return err
	}
	defer s.Unmount()

	if !s.NeedsConfirmation() {
		return s.Delete(ctx, id)
	}
	if err := s.RequestDelete(id); err != nil {
		return err
	}
	if !*yes {
		s.CancelDelete()
		return a.fail(fmt.Errorf("%w: hapus %s %s harus dikonfirmasi dengan -yes", ErrUsage, s.Title(), id))
	}
	return s.ConfirmDelete(ctx)
}
