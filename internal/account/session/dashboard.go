package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
)

type CountsSource interface {
	Counts(ctx context.Context) (domain.DashboardCounts, error)
}

// Dashboard shows the menus the signed-in role may open, with record counts.
type Dashboard struct {
	session *Session
	source  CountsSource
	timeout time.Duration

	mu     sync.RWMutex
	counts domain.DashboardCounts
}

func NewDashboard(s *Session, src CountsSource, timeout time.Duration) *Dashboard {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dashboard{session: s, source: src, timeout: timeout, counts: domain.DashboardCounts{}}
}

// Refresh fetches new counts. On failure the previous counts stay on screen.
func (d *Dashboard) Refresh(ctx context.Context) ([]domain.Menu, error) {
	if _, ok := d.session.Current(); !ok {
		return nil, ErrNotLoggedIn
	}
	counts, err := d.source.Counts(ctx)
	if err != nil {
		logger.Error("Dashboard: fetching counts failed", err)
		return d.Menus(), err
	}
	d.mu.Lock()
	d.counts = counts
	d.mu.Unlock()
	return d.Menus(), nil
}

func (d *Dashboard) Menus() []domain.Menu {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.session.Menus(d.counts)
}

// Watch refreshes on the cron spec and hands every successful result to fn.
// The returned stop function waits for a running refresh to finish.
func (d *Dashboard) Watch(spec string, fn func([]domain.Menu)) (stop func(), err error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err = c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		menus, err := d.Refresh(ctx)
		if err != nil {
			return
		}
		fn(menus)
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard refresh spec %q: %w", spec, err)
	}
	c.Start()
	logger.Info("Dashboard refresh scheduled with spec '%s'", spec)
	return func() { <-c.Stop().Done() }, nil
}
