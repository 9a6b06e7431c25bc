package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
)

var (
	ErrInvalidRecord = errors.New("record has no server-assigned id")
	ErrIDMismatch    = errors.New("record id does not match the patched id")
)

// Store is the single source of truth for one screen's visible collection.
// The collection only changes after the gateway acknowledged a call.
type Store[T domain.Record] struct {
	gw    gateway.Gateway[T]
	name  string
	locks *keyedMutex

	mu        sync.RWMutex
	items     []T
	query     domain.Query
	gen       uint64
	closed    bool
	listeners []func([]T)
}

func New[T domain.Record](name string, gw gateway.Gateway[T]) *Store[T] {
	return &Store[T]{
		gw:    gw,
		name:  name,
		locks: newKeyedMutex(),
		items: []T{},
		query: domain.DefaultQuery(),
	}
}

// OnChange registers fn to be called with a snapshot after every change of the collection.
func (s *Store[T]) OnChange(fn func(items []T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) Get(id domain.ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := domain.IndexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Query() domain.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Visible applies the client-side substring filter on DisplayName. It is redundant with
// server-side search but gives feedback before the re-fetch lands.
func (s *Store[T]) Visible() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	term := strings.ToLower(strings.TrimSpace(s.query.Search))
	if term == "" {
		return s.snapshotLocked()
	}
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.DisplayName()), term) {
			out = append(out, it)
		}
	}
	return out
}

// Refresh replaces the whole collection with the gateway's answer for q.
// On failure the previous collection is kept. Answers of superseded refreshes are dropped.
func (s *Store[T]) Refresh(ctx context.Context, q domain.Query) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	s.gen++
	gen, prev := s.gen, s.query
	s.query = q
	s.mu.Unlock()

	items, err := s.gw.List(ctx, q)
	if err != nil {
		// Collection is unchanged, so the query that produced it comes back too.
		s.mu.Lock()
		if gen == s.gen {
			s.query = prev
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.Info("Store %s: dropping refresh response for closed view", s.name)
		return nil
	}
	if gen != s.gen {
		s.mu.Unlock()
		logger.Info("Store %s: dropping superseded refresh response (gen %d, current %d)", s.name, gen, s.gen)
		return nil
	}
	s.items = uniqueByID(items)
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	emit(listeners, snap)
	return nil
}

func (s *Store[T]) SetSearch(ctx context.Context, term string) error {
	q := s.Query()
	q.Search = term
	return s.Refresh(ctx, q)
}

func (s *Store[T]) SetSort(ctx context.Context, sort domain.Sort) error {
	q := s.Query()
	q.Sort = sort
	return s.Refresh(ctx, q)
}

func (s *Store[T]) SetPeriod(ctx context.Context, p domain.Period) error {
	q := s.Query()
	q.Period = &p
	return s.Refresh(ctx, q)
}

// Insert prepends a server-acknowledged record, so new items show up at the top.
// A record already present under the same id is moved rather than duplicated.
func (s *Store[T]) Insert(rec T) error {
	if rec.RecordID() == 0 {
		return ErrInvalidRecord
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	next := make([]T, 0, len(s.items)+1)
	next = append(next, rec)
	for _, it := range s.items {
		if it.RecordID() != rec.RecordID() {
			next = append(next, it)
		}
	}
	s.items = next
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	emit(listeners, snap)
	return nil
}

// Patch replaces the record at id in place. Position is kept even when the
// change would move it under the active sort; only a refresh re-sorts.
func (s *Store[T]) Patch(id domain.ID, rec T) error {
	if rec.RecordID() != id {
		return ErrIDMismatch
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	i := domain.IndexOf(s.items, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.ErrNotInCollection
	}
	s.items[i] = rec
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	emit(listeners, snap)
	return nil
}

func (s *Store[T]) Evict(id domain.ID) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	i := domain.IndexOf(s.items, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.ErrNotInCollection
	}
	next := make([]T, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	s.items = next
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	emit(listeners, snap)
	return nil
}

// Create asks the gateway to persist fields, then inserts the acknowledged record.
func (s *Store[T]) Create(ctx context.Context, fields T) (T, error) {
	var zero T
	if s.isClosed() {
		return zero, domain.ErrStoreClosed
	}
	rec, err := s.gw.Create(ctx, fields)
	if err != nil {
		return zero, err
	}
	if err := s.Insert(rec); err != nil && !errors.Is(err, domain.ErrStoreClosed) {
		return zero, fmt.Errorf("store %s: insert after create: %w", s.name, err)
	}
	return rec, nil
}

// Update sends a full replace for id and patches the collection with the server's record.
// Mutations on the same id never overlap.
func (s *Store[T]) Update(ctx context.Context, id domain.ID, fields T) (T, error) {
	var zero T
	unlock := s.locks.Lock(id)
	defer unlock()

	if s.isClosed() {
		return zero, domain.ErrStoreClosed
	}
	if _, ok := s.Get(id); !ok {
		return zero, domain.ErrNotInCollection
	}
	rec, err := s.gw.Update(ctx, id, fields)
	if err != nil {
		return zero, err
	}
	if err := s.Patch(id, rec); err != nil {
		switch {
		case errors.Is(err, domain.ErrStoreClosed):
		case errors.Is(err, domain.ErrNotInCollection):
			// Sudah hilang karena refresh di tengah jalan; server tetap sudah menyimpan.
			logger.Warn("Store %s: record %s vanished before patch", s.name, id)
		default:
			return zero, fmt.Errorf("store %s: patch after update: %w", s.name, err)
		}
	}
	return rec, nil
}

// Delete removes id on the server and then from the collection.
func (s *Store[T]) Delete(ctx context.Context, id domain.ID) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if s.isClosed() {
		return domain.ErrStoreClosed
	}
	if _, ok := s.Get(id); !ok {
		return domain.ErrNotInCollection
	}
	if err := s.gw.Remove(ctx, id); err != nil {
		return err
	}
	if err := s.Evict(id); err != nil && !errors.Is(err, domain.ErrStoreClosed) && !errors.Is(err, domain.ErrNotInCollection) {
		return fmt.Errorf("store %s: evict after delete: %w", s.name, err)
	}
	return nil
}

// Close marks the owning view as unmounted: responses arriving later are ignored.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = nil
}

func (s *Store[T]) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store[T]) snapshotLocked() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) listenersLocked() []func([]T) {
	out := make([]func([]T), len(s.listeners))
	copy(out, s.listeners)
	return out
}

func emit[T any](listeners []func([]T), items []T) {
	for _, fn := range listeners {
		fn(items)
	}
}

func uniqueByID[T domain.Record](items []T) []T {
	seen := make(map[domain.ID]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.RecordID()]; dup {
			continue
		}
		seen[it.RecordID()] = struct{}{}
		out = append(out, it)
	}
	return out
}
