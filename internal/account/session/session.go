// Package session holds the signed-in back-office user for the lifetime of the
// program. It is created once at start-up and passed to every screen that needs
// the role, replacing any global lookup.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

var ErrNotLoggedIn = errors.New("belum login")

// Authenticator is satisfied by the account gateway.
type Authenticator interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.User, error)
}

// Store persists the signed-in user between runs.
type Store interface {
	Load() (*domain.User, error)
	Save(user domain.User) error
	Clear() error
}

type Session struct {
	auth  Authenticator
	store Store

	mu   sync.RWMutex
	user *domain.User
}

func New(auth Authenticator, store Store) *Session {
	return &Session{auth: auth, store: store}
}

// Restore loads the persisted user, if any. A damaged file is treated as logged out.
func (s *Session) Restore() (domain.User, bool) {
	user, err := s.store.Load()
	if err != nil {
		logger.Warn("Session restore failed, starting logged out: %v", err)
		return domain.User{}, false
	}
	if user == nil || !user.Role.Valid() {
		return domain.User{}, false
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return *user, true
}

func (s *Session) Login(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	verr := rdomain.ValidationErrors{}
	if username == "" {
		verr.Add("username", "wajib diisi")
	}
	if password == "" {
		verr.Add("password", "wajib diisi")
	}
	if err := verr.OrNil(); err != nil {
		return domain.User{}, err
	}

	user, err := s.auth.Login(ctx, domain.LoginRequest{Username: username, Password: password})
	if err != nil {
		return domain.User{}, err
	}
	if err := s.store.Save(user); err != nil {
		// Login tetap berlaku untuk sesi ini walau tidak tersimpan
		logger.Error("Session: failed to persist user", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Session) role() domain.Role {
	u, ok := s.Current()
	if !ok {
		return ""
	}
	return u.Role
}

// Allows reports whether the signed-in user may open key. Logged out allows nothing.
func (s *Session) Allows(key domain.MenuKey) bool {
	return s.role().Allows(key)
}

func (s *Session) Menus(counts domain.DashboardCounts) []domain.Menu {
	return domain.MenusFor(s.role(), counts)
}
