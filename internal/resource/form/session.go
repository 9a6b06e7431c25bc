package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Committer persists a validated record. store.Store satisfies it.
type Committer[T domain.Record] interface {
	Create(ctx context.Context, fields T) (T, error)
	Update(ctx context.Context, id domain.ID, fields T) (T, error)
}

// Session owns one Draft from open to close.
type Session[T domain.Record] struct {
	schema Schema[T]

	mu     sync.Mutex
	state  State
	mode   Mode
	target domain.ID
	draft  Draft
}

func NewSession[T domain.Record](schema Schema[T]) *Session[T] {
	return &Session[T]{schema: schema}
}

func (s *Session[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session[T]) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Target is the id being edited, 0 in add mode.
func (s *Session[T]) Target() domain.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Session[T]) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil
	}
	return s.draft.Clone()
}

func (s *Session[T]) OpenAdd() error {
	return s.open(ModeAdd, 0, s.schema.Defaults())
}

func (s *Session[T]) OpenEdit(rec T) error {
	d := s.schema.Defaults()
	for k, v := range s.schema.Fill(rec) {
		d[k] = v
	}
	return s.open(ModeEdit, rec.RecordID(), d)
}

func (s *Session[T]) open(mode Mode, target domain.ID, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return domain.ErrSessionBusy
	}
	s.state, s.mode, s.target, s.draft = Open, mode, target, d
	return nil
}

func (s *Session[T]) Set(field, value string) error {
	if _, ok := s.schema.Field(field); !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case Closed:
		return domain.ErrSessionClosed
	case Submitting:
		return domain.ErrSessionBusy
	}
	s.draft[field] = value
	return nil
}

// Cancel discards the Draft without any gateway call.
func (s *Session[T]) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return domain.ErrSessionBusy
	}
	s.reset()
	return nil
}

// Submit validates the Draft locally and hands the record to c. On failure the
// session returns to Open with the Draft intact so the user can retry.
func (s *Session[T]) Submit(ctx context.Context, c Committer[T]) (T, error) {
	var zero T

	s.mu.Lock()
	switch s.state {
	case Closed:
		s.mu.Unlock()
		return zero, domain.ErrSessionClosed
	case Submitting:
		s.mu.Unlock()
		return zero, domain.ErrSessionBusy
	}
	rec, err := s.schema.Validate(s.target, s.draft)
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}
	s.state = Submitting
	mode, target := s.mode, s.target
	s.mu.Unlock()

	var saved T
	if mode == ModeEdit {
		saved, err = c.Update(ctx, target, rec)
	} else {
		saved, err = c.Create(ctx, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Open
		return zero, err
	}
	s.reset()
	return saved, nil
}

func (s *Session[T]) reset() {
	s.state, s.mode, s.target, s.draft = Closed, ModeAdd, 0, nil
}
