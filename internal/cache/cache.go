// Package cache holds the per-source raw quote lists and the policy that
// fills them: persisted slot first, then the remote providers, then the
// built-in offline quotes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/abdulachik/quotator/internal/provider"
	"github.com/abdulachik/quotator/internal/quote"
)

const (
	// DefaultKey is the persisted slot name.
	DefaultKey = "quoteDB"

	defaultFetchTimeout = 15 * time.Second

	loadKey = "load"
)

var (
	// ErrNotLoaded is returned when quotes are requested before any load
	// has completed.
	ErrNotLoaded = errors.New("quote cache not loaded")

	// ErrUnknownSource is returned for a source name with no entry.
	ErrUnknownSource = errors.New("unknown quote source")

	// ErrEmptySource is returned when a source has no quotes.
	ErrEmptySource = errors.New("quote source is empty")
)

// KV is the durable key-value storage holding the cache slot.
type KV interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
}

// Config holds cache configuration.
type Config struct {
	// Store persists the slot. Nil keeps the cache in memory only.
	Store KV

	// Providers are fetched in order; each runs only after the previous
	// one succeeded.
	Providers []provider.Provider

	// Fallback is installed when any provider fails. Defaults to
	// DefaultFallback().
	Fallback Entries

	// Random drives quote selection. Defaults to quote.DefaultRandom.
	Random quote.Random

	// Key is the slot name. Defaults to DefaultKey.
	Key string

	// FetchTimeout bounds each provider call.
	FetchTimeout time.Duration
}

// Cache is the process-wide quote source cache. Build one with New and pass
// it to every consumer.
type Cache struct {
	store        KV
	providers    []provider.Provider
	fallback     Entries
	random       quote.Random
	key          string
	fetchTimeout time.Duration

	group singleflight.Group
	ready chan struct{}
	once  sync.Once

	// randMu serializes draws; quote.Random implementations such as
	// *rand.Rand are not safe for concurrent use.
	randMu sync.Mutex

	mu      sync.RWMutex
	entries Entries
	status  Status
	lastErr error
}

// New creates an unloaded cache.
func New(cfg Config) *Cache {
	fallback := cfg.Fallback
	if fallback == nil {
		fallback = DefaultFallback()
	}

	random := cfg.Random
	if random == nil {
		random = quote.DefaultRandom
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	return &Cache{
		store:        cfg.Store,
		providers:    cfg.Providers,
		fallback:     fallback,
		random:       random,
		key:          key,
		fetchTimeout: timeout,
		ready:        make(chan struct{}),
	}
}

// Load fills the cache in the background and calls fn exactly once with the
// terminal status. Calls made while a load is in flight join it instead of
// starting another fetch chain; calls made after a load has finished get the
// existing status.
func (c *Cache) Load(ctx context.Context, fn func(Status)) {
	go func() {
		st := c.LoadSync(ctx)
		if fn != nil {
			fn(st)
		}
	}()
}

// LoadSync is Load without the goroutine.
func (c *Cache) LoadSync(ctx context.Context) Status {
	if st := c.Status(); st.Ready() {
		return st
	}

	v, _, _ := c.group.Do(loadKey, func() (any, error) {
		if st := c.Status(); st.Ready() {
			return st, nil
		}
		return c.load(ctx), nil
	})
	return v.(Status)
}

// Refresh fetches from the providers even when data is already loaded.
// On failure previously fetched or cached data is kept; only an empty or
// offline cache falls back to the built-in quotes.
func (c *Cache) Refresh(ctx context.Context) Status {
	v, _, _ := c.group.Do(loadKey, func() (any, error) {
		entries, err := c.fetchAll(ctx)
		if err == nil {
			entries = c.withDefaults(entries)
			c.persist(ctx, entries)
			return c.install(entries, StatusOnline, nil), nil
		}

		slog.Warn("quote refresh failed", "error", err)

		c.mu.Lock()
		current := c.status
		if current == StatusOnline || current == StatusCached {
			c.lastErr = err
			c.mu.Unlock()
			return current, nil
		}
		c.mu.Unlock()

		c.persist(ctx, c.fallback)
		return c.install(c.fallback.Clone(), StatusOffline, err), nil
	})
	return v.(Status)
}

// Wait blocks until the first load completes or ctx is done.
func (c *Cache) Wait(ctx context.Context) (Status, error) {
	select {
	case <-c.ready:
		return c.Status(), nil
	case <-ctx.Done():
		return c.Status(), ctx.Err()
	}
}

// Ready returns a channel closed once the first load has completed.
func (c *Cache) Ready() <-chan struct{} {
	return c.ready
}

func (c *Cache) load(ctx context.Context) Status {
	c.mu.Lock()
	c.status = StatusLoading
	c.mu.Unlock()

	if entries, ok := c.retrievePersisted(ctx); ok {
		slog.Debug("using cached quotes", "key", c.key, "sources", len(entries))
		return c.install(c.withDefaults(entries), StatusCached, nil)
	}

	entries, err := c.fetchAll(ctx)
	if err != nil {
		slog.Warn("quote sources unavailable, using offline quotes", "error", err)
		c.persist(ctx, c.fallback)
		return c.install(c.fallback.Clone(), StatusOffline, err)
	}

	entries = c.withDefaults(entries)
	c.persist(ctx, entries)
	return c.install(entries, StatusOnline, nil)
}

// withDefaults fills every fallback source that entries lacks or holds no
// quotes for, so lookups of the default sources never fail once loaded.
func (c *Cache) withDefaults(entries Entries) Entries {
	for source, quotes := range c.fallback {
		if len(entries[source]) == 0 && len(quotes) > 0 {
			entries[source] = append([]string(nil), quotes...)
		}
	}
	return entries
}

// fetchAll runs the provider chain. Partial results are discarded on error.
func (c *Cache) fetchAll(ctx context.Context) (Entries, error) {
	if len(c.providers) == 0 {
		return nil, errors.New("no quote providers configured")
	}

	entries := make(Entries, len(c.providers))
	for _, p := range c.providers {
		fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
		quotes, err := p.FetchQuotes(fetchCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		if len(quotes) == 0 {
			return nil, fmt.Errorf("%s: %w", p.Name(), ErrEmptySource)
		}
		entries[p.Name()] = quotes
	}
	return entries, nil
}

func (c *Cache) install(entries Entries, st Status, err error) Status {
	c.mu.Lock()
	c.entries = entries
	c.status = st
	c.lastErr = err
	c.mu.Unlock()

	c.once.Do(func() { close(c.ready) })

	slog.Info("quote cache ready", "status", st, "sources", entries.Sources())
	return st
}

// persist writes entries to the slot. Failures are logged; the in-memory
// cache stays usable.
func (c *Cache) persist(ctx context.Context, entries Entries) {
	if c.store == nil {
		return
	}

	data, err := json.Marshal(entries)
	if err != nil {
		slog.Error("failed to encode quote cache", "error", err)
		return
	}

	if err := c.store.SetValue(context.WithoutCancel(ctx), c.key, string(data)); err != nil {
		slog.Error("failed to persist quote cache", "key", c.key, "error", err)
	}
}

// retrievePersisted reads the slot. A missing, unreadable, corrupt or empty
// slot is a miss.
func (c *Cache) retrievePersisted(ctx context.Context) (Entries, bool) {
	if c.store == nil {
		return nil, false
	}

	raw, ok, err := c.store.GetValue(context.WithoutCancel(ctx), c.key)
	if err != nil {
		slog.Warn("failed to read quote cache", "key", c.key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	entries, err := DecodeEntries([]byte(raw))
	if err != nil {
		slog.Warn("ignoring corrupt quote cache", "key", c.key, "error", err)
		return nil, false
	}
	if len(entries) == 0 {
		return nil, false
	}
	return entries, true
}

// DecodeEntries parses a persisted slot value. A JSON null decodes to nil.
func DecodeEntries(data []byte) (Entries, error) {
	var entries Entries
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode quote cache: %w", err)
	}
	return entries, nil
}

// RandomQuote returns a uniformly chosen raw quote from source.
func (c *Cache) RandomQuote(source string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.status.Ready() {
		return "", ErrNotLoaded
	}

	quotes, ok := c.entries[source]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	c.randMu.Lock()
	q, ok := quote.Pick(c.random, quotes)
	c.randMu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrEmptySource, source)
	}
	return q, nil
}

// HasSource reports whether source is a loaded key.
func (c *Cache) HasSource(source string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[source]
	return ok
}

// Status returns the current load status.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// LastError returns the provider error behind the latest offline fallback
// or failed refresh, if any.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Sources returns the loaded source names in sorted order.
func (c *Cache) Sources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries.Sources()
}

// Counts returns the number of quotes per source.
func (c *Cache) Counts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]int, len(c.entries))
	for k, v := range c.entries {
		counts[k] = len(v)
	}
	return counts
}
