// Package resource wires gateway, store, form session and notifications into the
// list controller every back-office screen is built from.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource/form"
	"github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
	"github.com/ridloal/hidayah-backoffice/internal/resource/store"
)

// Definition is the declarative configuration of one screen.
type Definition[T domain.Record] struct {
	Name   string
	Path   string
	Schema form.Schema[T]
	// Amount selects the money field summed by Total. Nil means the screen has no total.
	Amount        func(T) decimal.Decimal
	ConfirmDelete bool
	Columns       []string
	Row           func(T) []string
}

// Table renders items with the definition's columns.
func (d Definition[T]) Table(items []T) report.Table {
	t := report.Table{Title: d.Name, Columns: d.Columns, Rows: make([][]string, 0, len(items))}
	for _, it := range items {
		t.Rows = append(t.Rows, d.Row(it))
	}
	return t
}

type Controller[T domain.Record] struct {
	def      Definition[T]
	store    *store.Store[T]
	form     *form.Session[T]
	notifier notify.Notifier

	mu      sync.Mutex
	pending *domain.ID
}

func NewController[T domain.Record](def Definition[T], gw gateway.Gateway[T], n notify.Notifier) *Controller[T] {
	return &Controller[T]{
		def:      def,
		store:    store.New(def.Path, gw),
		form:     form.NewSession(def.Schema),
		notifier: n,
	}
}

func (c *Controller[T]) Definition() Definition[T] { return c.def }
func (c *Controller[T]) Store() *store.Store[T]    { return c.store }
func (c *Controller[T]) Form() *form.Session[T]    { return c.form }

// Mount loads the first page with the default query (newest first).
func (c *Controller[T]) Mount(ctx context.Context) error {
	if err := c.store.Refresh(ctx, domain.DefaultQuery()); err != nil {
		return c.fail("load", err)
	}
	return nil
}

// Unmount detaches the screen; responses still in flight are ignored.
func (c *Controller[T]) Unmount() {
	c.store.Close()
	c.CancelDelete()
}

func (c *Controller[T]) Search(ctx context.Context, term string) error {
	if err := c.store.SetSearch(ctx, term); err != nil {
		return c.fail("search", err)
	}
	return nil
}

func (c *Controller[T]) Sort(ctx context.Context, s domain.Sort) error {
	if err := c.store.SetSort(ctx, s); err != nil {
		return c.fail("sort", err)
	}
	return nil
}

func (c *Controller[T]) Refresh(ctx context.Context) error {
	if err := c.store.Refresh(ctx, c.store.Query()); err != nil {
		return c.fail("refresh", err)
	}
	return nil
}

func (c *Controller[T]) Visible() []T {
	return c.store.Visible()
}

// Total sums the amount field over every loaded record.
func (c *Controller[T]) Total() decimal.Decimal {
	if c.def.Amount == nil {
		return decimal.Zero
	}
	return report.Total(c.store.Items(), c.def.Amount)
}

func (c *Controller[T]) OpenAdd() error {
	if err := c.form.OpenAdd(); err != nil {
		return c.fail("open form", err)
	}
	return nil
}

func (c *Controller[T]) OpenEdit(id domain.ID) error {
	rec, ok := c.store.Get(id)
	if !ok {
		return c.fail("open form", fmt.Errorf("%s %s: %w", c.def.Path, id, domain.ErrNotInCollection))
	}
	if err := c.form.OpenEdit(rec); err != nil {
		return c.fail("open form", err)
	}
	return nil
}

func (c *Controller[T]) SetField(name, value string) error {
	if err := c.form.Set(name, value); err != nil {
		return c.fail("edit field", err)
	}
	return nil
}

func (c *Controller[T]) Cancel() error {
	if err := c.form.Cancel(); err != nil {
		return c.fail("cancel", err)
	}
	return nil
}

func (c *Controller[T]) Submit(ctx context.Context) (T, error) {
	mode := c.form.Mode()
	rec, err := c.form.Submit(ctx, c.store)
	if err != nil {
		var zero T
		return zero, c.fail("save", err)
	}
	if mode == form.ModeEdit {
		notify.Success(c.notifier, fmt.Sprintf("%s berhasil diperbarui", c.def.Name))
	} else {
		notify.Success(c.notifier, fmt.Sprintf("%s berhasil ditambahkan", c.def.Name))
	}
	return rec, nil
}

// Delete removes id directly. Screens that require confirmation must go through
// RequestDelete and ConfirmDelete instead.
func (c *Controller[T]) Delete(ctx context.Context, id domain.ID) error {
	if c.def.ConfirmDelete {
		return c.fail("delete", domain.ErrConfirmationRequired)
	}
	return c.remove(ctx, id)
}

func (c *Controller[T]) RequestDelete(id domain.ID) error {
	if _, ok := c.store.Get(id); !ok {
		return c.fail("delete", fmt.Errorf("%s %s: %w", c.def.Path, id, domain.ErrNotInCollection))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &id
	return nil
}

func (c *Controller[T]) PendingDelete() (domain.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return 0, false
	}
	return *c.pending, true
}

// ConfirmDelete fires the gateway delete for the pending request. The dialog is
// dismissed whether or not the call succeeds.
func (c *Controller[T]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	if pending == nil {
		return c.fail("delete", domain.ErrConfirmationRequired)
	}
	return c.remove(ctx, *pending)
}

func (c *Controller[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

func (c *Controller[T]) remove(ctx context.Context, id domain.ID) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return c.fail("delete", err)
	}
	notify.Success(c.notifier, fmt.Sprintf("%s berhasil dihapus", c.def.Name))
	return nil
}

func (c *Controller[T]) fail(op string, err error) error {
	var verr domain.ValidationErrors
	if errors.As(err, &verr) {
		logger.Warn("%s: %s rejected: %v", c.def.Name, op, err)
	} else {
		logger.Error(fmt.Sprintf("%s: %s failed", c.def.Name, op), err)
	}
	notify.Failure(c.notifier, domain.UserMessage(err))
	return err
}
