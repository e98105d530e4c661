package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestGovernor(t *testing.T, max int, window time.Duration) (*Governor, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	g, err := New(Config{MaxRequests: max, Window: window}, WithClock(clock.Now))
	require.NoError(t, err)
	return g, clock
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{MaxRequests: 0, Window: time.Second})
	require.Error(t, err)
	_, err = New(Config{MaxRequests: 1, Window: 0})
	require.Error(t, err)
}

func TestCheckLimit_RemainingCountsDown(t *testing.T) {
	g, clock := newTestGovernor(t, 5, 10*time.Second)

	for i := 1; i <= 5; i++ {
		d := g.CheckLimit("/movie/popular")
		require.Truef(t, d.Allowed, "call %d should be allowed", i)
		assert.Equal(t, 5-i, d.Remaining)
		assert.Equal(t, clock.Now().Add(10*time.Second), d.ResetAt)
	}
}

func TestCheckLimit_DeniesOverCeiling(t *testing.T) {
	g, _ := newTestGovernor(t, 3, 10*time.Second)
	var first Decision
	for i := 0; i < 3; i++ {
		d := g.CheckLimit("/movie/popular")
		if i == 0 {
			first = d
		}
	}

	d := g.CheckLimit("/movie/popular")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, first.ResetAt, d.ResetAt)

	status, ok := g.Status("/movie/popular")
	require.True(t, ok)
	assert.Equal(t, 3, status.Count, "denied calls must not consume quota")
}

func TestCheckLimit_WindowExpiryResets(t *testing.T) {
	g, clock := newTestGovernor(t, 2, 10*time.Second)
	g.CheckLimit("/search/multi")
	g.CheckLimit("/search/multi")
	require.False(t, g.CheckLimit("/search/multi").Allowed)

	clock.Advance(10 * time.Second)

	d := g.CheckLimit("/search/multi")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, clock.Now().Add(10*time.Second), d.ResetAt)
}

func TestCheckLimit_KeysAreIsolated(t *testing.T) {
	g, _ := newTestGovernor(t, 1, time.Minute)
	require.True(t, g.CheckLimit("a").Allowed)
	require.False(t, g.CheckLimit("a").Allowed)

	d := g.CheckLimit("b")
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
}

func TestCheckLimit_SweepsExpiredKeys(t *testing.T) {
	g, clock := newTestGovernor(t, 5, time.Second)
	g.CheckLimit("a")
	g.CheckLimit("b")
	require.Equal(t, 2, g.Len())

	clock.Advance(2 * time.Second)
	g.CheckLimit("c")

	assert.Equal(t, 1, g.Len())
	_, ok := g.Status("a")
	assert.False(t, ok)
}

func TestResetSingleKey(t *testing.T) {
	g, _ := newTestGovernor(t, 1, time.Minute)
	g.CheckLimit("a")
	g.CheckLimit("b")

	g.Reset("a")
	g.Reset("missing")

	_, ok := g.Status("a")
	assert.False(t, ok)
	_, ok = g.Status("b")
	assert.True(t, ok)
	assert.True(t, g.CheckLimit("a").Allowed)
}

func TestResetAll(t *testing.T) {
	g, _ := newTestGovernor(t, 1, time.Minute)
	g.CheckLimit("a")
	g.CheckLimit("b")

	g.ResetAll()

	assert.Equal(t, 0, g.Len())
	assert.True(t, g.CheckLimit("a").Allowed)
	assert.True(t, g.CheckLimit("b").Allowed)
}

func TestStatusDoesNotMutate(t *testing.T) {
	g, clock := newTestGovernor(t, 4, time.Second)
	g.CheckLimit("a")

	for i := 0; i < 3; i++ {
		status, ok := g.Status("a")
		require.True(t, ok)
		assert.Equal(t, 1, status.Count)
		assert.Equal(t, 3, status.Remaining)
	}

	// Status never sweeps, so a stale window stays visible until the next check.
	clock.Advance(5 * time.Second)
	_, ok := g.Status("a")
	assert.True(t, ok)
}

func TestKeyFuncBuckets(t *testing.T) {
	clock := newFakeClock()
	g := NewTMDB(WithClock(clock.Now))
	require.Equal(t, 40, g.MaxRequests())
	require.Equal(t, 10*time.Second, g.Window())

	g.CheckLimit("/movie/popular")
	status, ok := g.Status("/movie/popular")
	require.True(t, ok)
	assert.Equal(t, 39, status.Remaining)

	shared, err := New(Config{
		MaxRequests: 1,
		Window:      time.Minute,
		KeyFunc:     func(string) string { return "all" },
	}, WithClock(clock.Now))
	require.NoError(t, err)
	require.True(t, shared.CheckLimit("/a").Allowed)
	assert.False(t, shared.CheckLimit("/b").Allowed)
}

func TestNewGeneralPreset(t *testing.T) {
	g := NewGeneral()
	assert.Equal(t, 100, g.MaxRequests())
	assert.Equal(t, time.Minute, g.Window())
}

func TestRetryIn(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3*time.Second, RetryIn(Decision{ResetAt: now.Add(3 * time.Second)}, now))
	assert.Equal(t, time.Duration(0), RetryIn(Decision{ResetAt: now.Add(-time.Second)}, now))
}

func TestCheckLimitConcurrent(t *testing.T) {
	g, _ := newTestGovernor(t, 50, time.Minute)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.CheckLimit("/trending/all/week").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
