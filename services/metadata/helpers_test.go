package metadata

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/afero"

	"cinelist/services/ratelimit"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, v any) *http.Response {
	var body []byte
	switch payload := v.(type) {
	case string:
		body = []byte(payload)
	default:
		body, _ = json.Marshal(payload)
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/json"}},
	}
}

// instantTimer records requested retry delays without sleeping.
type instantTimer struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (t *instantTimer) After(d time.Duration) <-chan time.Time {
	t.mu.Lock()
	t.delays = append(t.delays, d)
	t.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func (t *instantTimer) recorded() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.delays...)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	client *tmdbClient
	clock  *testClock
	timer  *instantTimer
}

// newTestClient builds a client with an in-memory transport, no request
// spacing and instant retries.
func newTestClient(t *testing.T, max int, rt roundTripFunc) *testEnv {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	gov, err := ratelimit.New(ratelimit.Config{
		MaxRequests: max,
		Window:      10 * time.Second,
		KeyFunc:     ratelimit.PrefixKey("tmdb:"),
	}, ratelimit.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("governor: %v", err)
	}
	timer := &instantTimer{}
	client := newTMDBClient(ClientConfig{
		APIKey:         "test-key",
		BaseURL:        "https://tmdb.test/3",
		Language:       "tr-TR",
		MaxRetries:     3,
		InitialDelay:   time.Second,
		RequestSpacing: -1,
		HTTPClient:     &http.Client{Transport: rt},
		Governor:       gov,
		retryOptions:   []retry.Option{retry.WithTimer(timer)},
	})
	return &testEnv{client: client, clock: clock, timer: timer}
}

func newTestService(t *testing.T, max int, rt roundTripFunc) (*Service, *testEnv) {
	t.Helper()
	env := newTestClient(t, max, rt)
	svc := &Service{
		tmdb:  env.client,
		cache: newFileCache(afero.NewMemMapFs(), "/cache/metadata", time.Hour),
		intn:  func(int) int { return 0 },
	}
	return svc, env
}
