// Package scheduler re-fetches the remote quote sources on an interval and
// tracks component health for diagnostics.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abdulachik/quotator/internal/cache"
)

// Refresher is the part of the cache the scheduler drives.
// *cache.Cache satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) cache.Status
	Wait(ctx context.Context) (cache.Status, error)
	LastError() error
}

// Scheduler periodically refreshes the quote cache.
type Scheduler struct {
	cache     Refresher
	interval  time.Duration
	health    *Health
	onRefresh func(context.Context, cache.Status)
}

// Config holds scheduler configuration.
type Config struct {
	Cache    Refresher
	Interval time.Duration
	Health   *Health

	// OnRefresh, if set, is called after every periodic refresh.
	OnRefresh func(ctx context.Context, st cache.Status)
}

// New creates a new scheduler.
func New(cfg Config) *Scheduler {
	health := cfg.Health
	if health == nil {
		health = NewHealth()
	}

	return &Scheduler{
		cache:     cfg.Cache,
		interval:  cfg.Interval,
		health:    health,
		onRefresh: cfg.OnRefresh,
	}
}

// Run waits for the initial load, then refreshes every interval until ctx
// is done. A zero interval only records the initial load.
func (s *Scheduler) Run(ctx context.Context) error {
	st, err := s.cache.Wait(ctx)
	if err != nil {
		return err
	}
	s.Record(st)

	if s.interval <= 0 {
		slog.Debug("periodic refresh disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	slog.Info("starting scheduler", "refresh_interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runRefreshCycle(ctx)
		}
	}
}

func (s *Scheduler) runRefreshCycle(ctx context.Context) {
	slog.Debug("running refresh cycle")

	st := s.cache.Refresh(ctx)
	s.Record(st)
	if s.onRefresh != nil {
		s.onRefresh(ctx, st)
	}

	slog.Info("refresh cycle complete", "status", st)
}

// Record updates the "sources" health component from a cache status.
func (s *Scheduler) Record(st cache.Status) {
	err := s.cache.LastError()
	switch {
	case err != nil:
		s.health.SetUnhealthy("sources", err)
	case st == cache.StatusOffline:
		s.health.SetUnhealthy("sources", errors.New("using offline quotes"))
	default:
		s.health.SetHealthy("sources", st.String())
	}
}

// Health returns the health tracker.
func (s *Scheduler) Health() *Health {
	return s.health
}
