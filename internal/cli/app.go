// Package cli is the terminal front-end of the back-office. Every screen of the
// app is a sub-command that drives the same controllers a graphical client would.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	adomain "github.com/ridloal/hidayah-backoffice/internal/account/domain"
	agateway "github.com/ridloal/hidayah-backoffice/internal/account/gateway"
	"github.com/ridloal/hidayah-backoffice/internal/account/session"
	cscreen "github.com/ridloal/hidayah-backoffice/internal/catalog/screen"
	"github.com/ridloal/hidayah-backoffice/internal/platform/config"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	"github.com/ridloal/hidayah-backoffice/internal/resource"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rgateway "github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
	sgateway "github.com/ridloal/hidayah-backoffice/internal/sales/gateway"
)

var (
	ErrUsage     = errors.New("usage")
	ErrForbidden = errors.New("menu tidak tersedia untuk role ini")
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

type App struct {
	cfg      config.ClientConfig
	out      io.Writer
	notifier notify.Notifier
	client   *rgateway.Client

	session   *session.Session
	dashboard *session.Dashboard
	catalog   *cscreen.Catalog
	sales     *sgateway.SalesGateway
	now       func() time.Time

	commands map[string]command
}

// New wires every screen onto one HTTP client. Tables go to out, notifications to n.
func New(cfg config.ClientConfig, out io.Writer, n notify.Notifier) *App {
	client := rgateway.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	account := agateway.New(client)
	sess := session.New(account, session.NewFileStore(cfg.SessionFile))

	a := &App{
		cfg:       cfg,
		out:       out,
		notifier:  n,
		client:    client,
		session:   sess,
		dashboard: session.NewDashboard(sess, account, cfg.HTTPTimeout),
		catalog:   cscreen.NewCatalog(client, n),
		sales:     sgateway.New(client),
		now:       time.Now,
	}
	a.commands = map[string]command{
		"login":     {"login -u USERNAME -p PASSWORD", a.login},
		"logout":    {"logout", a.logout},
		"whoami":    {"whoami", a.whoami},
		"dashboard": {"dashboard [-watch]", a.showDashboard},
		"list":      {"list MENU [-search TEXT] [-sort latest|oldest|az|za] [-format text|csv|html]", a.list},
		"add":       {"add MENU field=value ...", a.add},
		"edit":      {"edit MENU ID field=value ...", a.edit},
		"delete":    {"delete MENU ID [-yes]", a.remove},
		"sell":      {"sell -pelanggan ID -item barang:ID[:QTY] [-item jasa:ID[:QTY]] ...", a.sell},
		"report":    {"report [-bulan M] [-tahun Y] [-format text|csv|html] [-o FILE] [-delete ID -yes]", a.report},
		"history":   {"history", a.history},
	}
	return a
}

// Run executes one sub-command. Failures are reported through the notifier
// before being returned.
func (a *App) Run(ctx context.Context, args []string) error {
	a.session.Restore()

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.usage()
		return nil
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		a.usage()
		return a.fail(fmt.Errorf("%w: perintah %q tidak dikenal", ErrUsage, args[0]))
	}
	if err := cmd.run(ctx, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(a.out, "usage: backoffice "+cmd.summary)
		}
		return err
	}
	return nil
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(a.out, "usage: backoffice COMMAND [args]")
	for _, name := range names {
		fmt.Fprintln(a.out, "  "+a.commands[name].summary)
	}
	fmt.Fprintln(a.out, "menus: barang, jasa, distributor, karyawan, kategori, pelanggan")
}

// fail notifies once and hands err back.
func (a *App) fail(err error) error {
	var verr rdomain.ValidationErrors
	switch {
	case errors.As(err, &verr):
		notify.Failure(a.notifier, rdomain.UserMessage(err))
	case errors.Is(err, ErrUsage), errors.Is(err, ErrForbidden), errors.Is(err, session.ErrNotLoggedIn):
		notify.Failure(a.notifier, err.Error())
	default:
		notify.Failure(a.notifier, rdomain.UserMessage(err))
	}
	return err
}

// require checks that someone is logged in and, when keys are given, that
// their role may open one of them.
func (a *App) require(keys ...adomain.MenuKey) error {
	user, ok := a.session.Current()
	if !ok {
		return a.fail(fmt.Errorf("%w: jalankan 'backoffice login' dulu", session.ErrNotLoggedIn))
	}
	if len(keys) == 0 {
		return nil
	}
	for _, k := range keys {
		if a.session.Allows(k) {
			return nil
		}
	}
	return a.fail(fmt.Errorf("%w: %s (%s)", ErrForbidden, keys[0], user.Role))
}

func (a *App) screen(menu string) (resource.Screen, error) {
	key := adomain.MenuKey(strings.ToLower(menu))
	s, ok := a.catalog.All()[key]
	if !ok {
		return nil, a.fail(fmt.Errorf("%w: menu %q tidak dikenal", ErrUsage, menu))
	}
	if err := a.require(key); err != nil {
		return nil, err
	}
	return s, nil
}
