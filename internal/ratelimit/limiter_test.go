package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock and no
// background sweep (tests call sweep directly).
func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	current := start
	l := &Limiter{
		entries: make(map[string]*entry),
		now:     func() time.Time { return current },
		stop:    make(chan struct{}),
	}
	return l, &current
}

func TestLimiter_WindowBoundary(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)

	const max = 5
	window := time.Minute

	// First call opens the window.
	res := l.Limit("user:1", max, window)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
	assert.Equal(t, start.Add(window), res.ResetAt)

	// Calls 2-4.
	for i := 0; i < 3; i++ {
		res = l.Limit("user:1", max, window)
		assert.True(t, res.Allowed)
	}

	// Fifth call is the last allowed one.
	res = l.Limit("user:1", max, window)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	// Sixth call is rejected, ResetAt unchanged so callers can compute
	// retry-after.
	res = l.Limit("user:1", max, window)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, start.Add(window), res.ResetAt)

	// Past the window the next call opens a fresh one.
	*clock = start.Add(window + time.Second)
	res = l.Limit("user:1", max, window)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
	assert.Equal(t, (*clock).Add(window), res.ResetAt)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(time.Now())

	res := l.Limit("user:1", 1, time.Minute)
	require.True(t, res.Allowed)
	res = l.Limit("user:1", 1, time.Minute)
	require.False(t, res.Allowed)

	// A different key still has its full budget.
	res = l.Limit("user:2", 1, time.Minute)
	assert.True(t, res.Allowed)
}

func TestLimiter_ConcurrentNoOverAdmission(t *testing.T) {
	t.Parallel()

	l := NewLimiter(time.Hour)
	defer l.Stop()

	const max = 5
	const callers = 10

	var wg sync.WaitGroup
	results := make([]Result, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Limit("burst", max, time.Minute)
		}(i)
	}
	wg.Wait()

	allowed := 0
	for _, res := range results {
		if res.Allowed {
			allowed++
		}
	}
	assert.Equal(t, max, allowed, "exactly max callers may pass in one window")
}

func TestLimiter_SweepRemovesExpiredEntries(t *testing.T) {
	t.Parallel()

	start := time.Now()
	l, clock := newTestLimiter(start)

	for i := 0; i < 10; i++ {
		l.Limit(fmt.Sprintf("key:%d", i), 5, time.Minute)
	}
	l.Limit("fresh", 5, time.Hour)

	*clock = start.Add(2 * time.Minute)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.entries, 1)
	_, ok := l.entries["fresh"]
	assert.True(t, ok)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	l := NewLimiter(time.Millisecond)
	l.Stop()
	l.Stop()
}
