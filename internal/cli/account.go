package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	adomain "github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *App) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return a.fail(fmt.Errorf("%w: %v", ErrUsage, err))
	}
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	user, err := a.session.Login(ctx, *username, *password)
	if err != nil {
		return a.fail(err)
	}
	notify.Success(a.notifier, fmt.Sprintf("Selamat datang, %s (%s)", user.Nama, user.Role))
	return nil
}

func (a *App) logout(context.Context, []string) error {
	if err := a.session.Logout(); err != nil {
		return a.fail(err)
	}
	notify.Success(a.notifier, "Logout berhasil")
	return nil
}

func (a *App) whoami(context.Context, []string) error {
	user, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, "Belum login")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\nUsername: %s\nRole: %s\n", user.Nama, user.Email, user.Username, user.Role)
	return nil
}

func menuTable(user adomain.User, menus []adomain.Menu) report.Table {
	rows := make([][]string, 0, len(menus))
	for _, m := range menus {
		rows = append(rows, []string{string(m.Key), m.Label, strconv.FormatInt(m.Count, 10)})
	}
	return report.Table{
		Title:    "Hidayah Back-Office",
		Subtitle: fmt.Sprintf("%s - %s", user.Nama, user.Role),
		Columns:  []string{"Menu", "Nama", "Jumlah"},
		Rows:     rows,
	}
}

func (a *App) showDashboard(ctx context.Context, args []string) error {
	fs := newFlagSet("dashboard")
	watch := fs.Bool("watch", false, "refresh on DASHBOARD_REFRESH_SPEC until interrupted")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	user, ok := a.session.Current()
	if !ok {
		return a.require()
	}

	// Gagal memuat jumlah tidak menghalangi menu tampil
	menus, err := a.dashboard.Refresh(ctx)
	if err != nil {
		notify.Failure(a.notifier, "Gagal memuat ringkasan dashboard")
	}
	if err := report.WriteText(a.out, menuTable(user, menus)); err != nil {
		return a.fail(err)
	}
	if !*watch {
		return nil
	}

	stop, err := a.dashboard.Watch(a.cfg.DashboardRefreshSpec, func(menus []adomain.Menu) {
		fmt.Fprintln(a.out)
		report.WriteText(a.out, menuTable(user, menus))
	})
	if err != nil {
		return a.fail(err)
	}
	<-ctx.Done()
	stop()
	return nil
}
