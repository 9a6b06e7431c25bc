package resource

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource/form"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
)

// Screen is the type-erased view of a Controller, used by front-ends that
// hold screens of different record types side by side.
type Screen interface {
	Title() string
	Path() string
	Mount(ctx context.Context) error
	Unmount()
	Search(ctx context.Context, term string) error
	Sort(ctx context.Context, s domain.Sort) error
	Refresh(ctx context.Context) error
	Table() report.Table
	Total() (decimal.Decimal, bool)
	Fields() []form.Field
	Draft() form.Draft
	OpenAdd() error
	OpenEdit(id domain.ID) error
	SetField(name, value string) error
	Cancel() error
	Submit(ctx context.Context) (domain.ID, error)
	Delete(ctx context.Context, id domain.ID) error
	RequestDelete(id domain.ID) error
	ConfirmDelete(ctx context.Context) error
	CancelDelete()
	NeedsConfirmation() bool
}

type screen[T domain.Record] struct {
	*Controller[T]
}

// Screen returns c behind the Screen interface.
func (c *Controller[T]) Screen() Screen {
	return screen[T]{c}
}

func (s screen[T]) Title() string { return s.def.Name }
func (s screen[T]) Path() string  { return s.def.Path }

func (s screen[T]) Table() report.Table {
	return s.def.Table(s.Visible())
}

func (s screen[T]) Total() (decimal.Decimal, bool) {
	return s.Controller.Total(), s.def.Amount != nil
}

func (s screen[T]) Fields() []form.Field { return s.def.Schema.Fields }

func (s screen[T]) Draft() form.Draft { return s.form.Draft() }

func (s screen[T]) Submit(ctx context.Context) (domain.ID, error) {
	rec, err := s.Controller.Submit(ctx)
	if err != nil {
		return 0, err
	}
	return rec.RecordID(), nil
}

func (s screen[T]) NeedsConfirmation() bool { return s.def.ConfirmDelete }
