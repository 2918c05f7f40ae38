package ingest

import (
	"context"
	"sync"
	"time"
)

// throttle enforces a minimum delay between requests to the same domain.
// Each caller reserves the next free slot under the lock and sleeps outside
// it, so workers hitting different domains never wait on each other.
type throttle struct {
	mu    sync.Mutex
	delay time.Duration
	last  map[string]time.Time
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{
		delay: delay,
		last:  make(map[string]time.Time),
	}
}

// wait blocks until the caller's reserved slot for domain arrives or the
// context is done.
func (t *throttle) wait(ctx context.Context, domain string) error {
	if t.delay <= 0 {
		return ctx.Err()
	}

	t.mu.Lock()
	now := time.Now()
	next := t.last[domain].Add(t.delay)
	if next.Before(now) {
		next = now
	}
	t.last[domain] = next
	t.mu.Unlock()

	d := time.Until(next)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
