// Package ratelimit implements an in-memory sliding-window rate limiter.
//
// Each key owns a window anchored to its first request: {count, resetAt}.
// Once resetAt passes, the next request starts a fresh window. State is
// per-process; under horizontal scaling each instance enforces the policy
// independently, which is an accepted deployment limitation.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultSweepInterval is how often expired windows are removed.
const DefaultSweepInterval = time.Minute

// Result reports the outcome of a Limit call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key within sliding windows. Construct with
// NewLimiter and release with Stop; the zero value is not usable.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewLimiter returns a running limiter whose background sweep removes
// expired windows every sweepInterval. A non-positive interval falls back to
// DefaultSweepInterval.
func NewLimiter(sweepInterval time.Duration) *Limiter {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	l := &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.sweepLoop(sweepInterval)
	return l
}

// Limit records one request for identifier under the given policy and
// reports whether it is allowed. The check-then-increment sequence runs
// under the limiter lock, so concurrent callers can never over-admit past
// max within one window.
func (l *Limiter) Limit(identifier string, max int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[identifier]
	if !ok || now.After(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(window)}
		l.entries[identifier] = e
		return Result{Allowed: true, Remaining: max - 1, ResetAt: e.resetAt}
	}

	if e.count >= max {
		return Result{Allowed: false, Remaining: 0, ResetAt: e.resetAt}
	}

	e.count++
	return Result{Allowed: true, Remaining: max - e.count, ResetAt: e.resetAt}
}

// Stop terminates the background sweep. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops entries whose window has expired to bound memory.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
