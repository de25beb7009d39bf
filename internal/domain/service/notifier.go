package service

import (
	"context"
	"time"
)

// Notifier delivers a plain text message to an email address.
// It reports success as a bool; delivery failures are never fatal to callers.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) bool
}

// CooldownLimiter grants at most one acquisition per key within a window.
type CooldownLimiter interface {
	// Acquire returns ok=true and starts a new window when the key is free.
	// Otherwise it returns the time left until the key frees up.
	Acquire(ctx context.Context, key string, window time.Duration) (ok bool, retryAfter time.Duration, err error)
}
