// Package ratelimit implements a fixed-window request governor used to keep
// outbound metadata API traffic inside the provider's quota.
//
// Each endpoint key owns a counter and a reset deadline. The fixed window
// keeps memory and check cost constant per key; the price is that up to twice
// the configured ceiling can pass across a window boundary.
package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// Record is the per-key window state. Count is always >= 1 while stored.
type Record struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"resetAt"`
}

// Decision is the outcome of a CheckLimit call.
type Decision struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// Status is a read-only view of a key's window.
type Status struct {
	Count     int       `json:"count"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// Config controls a Governor. KeyFunc maps a raw endpoint to its bucket key;
// nil means identity.
type Config struct {
	MaxRequests int
	Window      time.Duration
	KeyFunc     func(endpoint string) string
}

// Option customizes a Governor.
type Option func(*Governor)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Governor) {
		if now != nil {
			g.now = now
		}
	}
}

// Governor tracks request counts per endpoint key.
type Governor struct {
	mu      sync.Mutex
	records map[string]Record
	max     int
	window  time.Duration
	keyFn   func(string) string
	now     func() time.Time
}

var (
	errInvalidMax    = errors.New("ratelimit: max requests must be positive")
	errInvalidWindow = errors.New("ratelimit: window must be positive")
)

// New builds a Governor from cfg.
func New(cfg Config, opts ...Option) (*Governor, error) {
	if cfg.MaxRequests <= 0 {
		return nil, errInvalidMax
	}
	if cfg.Window <= 0 {
		return nil, errInvalidWindow
	}
	keyFn := cfg.KeyFunc
	if keyFn == nil {
		keyFn = func(endpoint string) string { return endpoint }
	}
	g := &Governor{
		records: make(map[string]Record),
		max:     cfg.MaxRequests,
		window:  cfg.Window,
		keyFn:   keyFn,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// NewTMDB returns a governor sized for TMDB's 40 requests per 10 seconds.
func NewTMDB(opts ...Option) *Governor {
	g, _ := New(Config{
		MaxRequests: 40,
		Window:      10 * time.Second,
		KeyFunc:     PrefixKey("tmdb:"),
	}, opts...)
	return g
}

// NewGeneral returns a governor for other upstreams: 100 requests per minute.
func NewGeneral(opts ...Option) *Governor {
	g, _ := New(Config{
		MaxRequests: 100,
		Window:      time.Minute,
		KeyFunc:     PrefixKey("general:"),
	}, opts...)
	return g
}

// PrefixKey returns a KeyFunc that namespaces endpoints under prefix.
func PrefixKey(prefix string) func(string) string {
	return func(endpoint string) string { return prefix + endpoint }
}

// MaxRequests reports the per-window ceiling.
func (g *Governor) MaxRequests() int { return g.max }

// Window reports the window length.
func (g *Governor) Window() time.Duration { return g.window }

// Now reads the governor's clock.
func (g *Governor) Now() time.Time { return g.now() }

// CheckLimit records an attempt against endpoint and reports whether it may
// proceed. A denied attempt does not consume quota.
func (g *Governor) CheckLimit(endpoint string) Decision {
	key := g.keyFn(endpoint)
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sweepLocked(now)

	rec, ok := g.records[key]
	if !ok || !now.Before(rec.ResetAt) {
		fresh := Record{Count: 1, ResetAt: now.Add(g.window)}
		g.records[key] = fresh
		return Decision{Allowed: true, Remaining: g.max - 1, ResetAt: fresh.ResetAt}
	}

	if rec.Count >= g.max {
		return Decision{Allowed: false, Remaining: 0, ResetAt: rec.ResetAt}
	}

	rec.Count++
	g.records[key] = rec
	return Decision{Allowed: true, Remaining: g.max - rec.Count, ResetAt: rec.ResetAt}
}

// sweepLocked drops every expired record. Key cardinality is small (one per
// distinct upstream path) so a full pass is fine.
func (g *Governor) sweepLocked(now time.Time) {
	for key, rec := range g.records {
		if !now.Before(rec.ResetAt) {
			delete(g.records, key)
		}
	}
}

// Reset forgets the window for a single endpoint.
func (g *Governor) Reset(endpoint string) {
	key := g.keyFn(endpoint)
	g.mu.Lock()
	delete(g.records, key)
	g.mu.Unlock()
}

// ResetAll forgets every window.
func (g *Governor) ResetAll() {
	g.mu.Lock()
	g.records = make(map[string]Record)
	g.mu.Unlock()
}

// Status returns the stored window for endpoint without touching it.
func (g *Governor) Status(endpoint string) (Status, bool) {
	key := g.keyFn(endpoint)
	g.mu.Lock()
	rec, ok := g.records[key]
	g.mu.Unlock()
	if !ok {
		return Status{}, false
	}
	remaining := g.max - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	return Status{Count: rec.Count, Remaining: remaining, ResetAt: rec.ResetAt}, true
}

// Len reports how many windows are currently stored, including stale ones
// that have not been swept yet.
func (g *Governor) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.records)
}

// RetryIn is how long a denied caller should wait before the window resets.
func RetryIn(d Decision, now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}
