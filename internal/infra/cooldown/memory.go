// Package cooldown implements service.CooldownLimiter in memory and on Redis.
package cooldown

import (
	"context"
	"sync"
	"time"

	"habit/internal/domain/service"
	"habit/internal/infra/clock"
)

// MemoryLimiter tracks window expiry per key in a map.
type MemoryLimiter struct {
	mu      sync.Mutex
	clock   clock.Clock
	expires map[string]time.Time
}

var _ service.CooldownLimiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter creates a limiter reading time from clk.
func NewMemoryLimiter(clk clock.Clock) *MemoryLimiter {
	if clk == nil {
		clk = clock.New()
	}

	return &MemoryLimiter{
		clock:   clk,
		expires: make(map[string]time.Time),
	}
}

func (l *MemoryLimiter) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if until, ok := l.expires[key]; ok && now.Before(until) {
		return false, until.Sub(now), nil
	}

	l.expires[key] = now.Add(window)
	l.evictExpired(now)

	return true, 0, nil
}

// evictExpired keeps the map from growing with keys whose window has passed.
func (l *MemoryLimiter) evictExpired(now time.Time) {
	for key, until := range l.expires {
		if !now.Before(until) {
			delete(l.expires, key)
		}
	}
}
