package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/abdulachik/quotator/internal/cache"
	"github.com/abdulachik/quotator/internal/config"
	"github.com/abdulachik/quotator/internal/db"
	"github.com/abdulachik/quotator/internal/provider"
	"github.com/abdulachik/quotator/internal/quotator"
	"github.com/abdulachik/quotator/internal/scheduler"
)

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Store     *db.Store
	Cache     *cache.Cache
	Quotator  *quotator.Quotator
	Scheduler *scheduler.Scheduler
}

// New creates a new application instance with all dependencies wired up.
// The cache is not loaded; call Start.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	// Providers run in this order during a load
	providers := []provider.Provider{
		provider.NewForbes(provider.ForbesConfig{
			URL:       cfg.ForbesURL,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
		}),
		provider.NewStormConsultancy(provider.StormConfig{
			URL:       cfg.StormURL,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
		}),
	}

	c := cache.New(cache.Config{
		Store:        store,
		Providers:    providers,
		Key:          cfg.CacheKey,
		FetchTimeout: cfg.FetchTimeout,
	})

	a := &App{
		Config:   cfg,
		Store:    store,
		Cache:    c,
		Quotator: quotator.New(quotator.Config{Source: c}),
	}

	// Periodic refreshes land in fetch_log like the initial load
	a.Scheduler = scheduler.New(scheduler.Config{
		Cache:     c,
		Interval:  cfg.RefreshInterval,
		OnRefresh: a.RecordFetch,
	})

	return a, nil
}

// Start loads the quote cache in the background.
func (a *App) Start(ctx context.Context) {
	a.Cache.Load(ctx, func(st cache.Status) {
		slog.Info("initialized with state", "status", st)
		a.RecordFetch(context.WithoutCancel(ctx), st)
	})
}

// Refresh forces a fetch from the remote sources and records the outcome.
func (a *App) Refresh(ctx context.Context) cache.Status {
	st := a.Cache.Refresh(ctx)
	a.RecordFetch(ctx, st)
	a.Scheduler.Record(st)
	return st
}

// RecordFetch appends a fetch_log row for a completed load or refresh.
func (a *App) RecordFetch(ctx context.Context, st cache.Status) {
	var detail sql.NullString
	if err := a.Cache.LastError(); err != nil {
		detail = sql.NullString{String: err.Error(), Valid: true}
	}

	if err := a.Store.CreateFetchLog(ctx, db.CreateFetchLogParams{
		Status: st.String(),
		Detail: detail,
	}); err != nil {
		slog.Warn("failed to record fetch", "status", st, "error", err)
	}
}

// PersistedEntries reads the cache slot straight from the store without
// loading the cache. found is false when no slot has been written.
func (a *App) PersistedEntries(ctx context.Context) (entries cache.Entries, found bool, err error) {
	raw, found, err := a.Store.GetValue(ctx, a.Config.CacheKey)
	if err != nil || !found {
		return nil, found, err
	}

	entries, err = cache.DecodeEntries([]byte(raw))
	return entries, true, err
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
