package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"cinelist/services/ratelimit"
)

const (
	limiterIdleTTL     = 10 * time.Minute
	limiterSweepPeriod = time.Minute
)

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a token bucket per client IP. It guards the settings
// routes that change server state.
type IPRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*ipLimiterEntry
	rate       rate.Limit
	burst      int
	retryAfter time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewIPRateLimiter allows r events per second per IP with the given burst.
// For "5 per minute" pass rate.Every(12*time.Second) with burst 5. Call
// Close to stop the idle-entry sweeper.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		limiters:   make(map[string]*ipLimiterEntry),
		rate:       r,
		burst:      burst,
		retryAfter: time.Minute,
		stop:       make(chan struct{}),
	}
	if r > 0 && r != rate.Inf {
		rl.retryAfter = time.Duration(float64(time.Second) / float64(r)).Round(time.Millisecond)
	}
	go rl.sweep()
	return rl
}

func (rl *IPRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (rl *IPRateLimiter) sweep() {
	ticker := time.NewTicker(limiterSweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

func (rl *IPRateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, ip)
		}
	}
}

// Close stops the sweeper. It is safe to call more than once.
func (rl *IPRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Guard wraps a single handler with the per-IP limit.
func (rl *IPRateLimiter) Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(getClientIP(r)) {
			tooManyRequests(w, rl.retryAfter, "too many requests")
			return
		}
		next(w, r)
	}
}

// retryAfterSeconds rounds wait up to whole seconds, never below one.
func retryAfterSeconds(wait time.Duration) int {
	seconds := int((wait + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

func tooManyRequests(w http.ResponseWriter, wait time.Duration, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// GovernorMiddleware applies the fixed-window governor to inbound API
// traffic, one window per client IP. OPTIONS and /health are not counted.
func GovernorMiddleware(g *ratelimit.Governor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}
			ip := getClientIP(r)
			decision := g.CheckLimit(ip)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(g.MaxRequests()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			if !decision.Allowed {
				wait := ratelimit.RetryIn(decision, g.Now())
				log.Printf("[ratelimit] inbound limit hit ip=%s path=%s retry_in=%s", ip, r.URL.Path, wait.Round(time.Second))
				tooManyRequests(w, wait, fmt.Sprintf("rate limit exceeded, try again in %d seconds", retryAfterSeconds(wait)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
