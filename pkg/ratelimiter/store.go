package ratelimiter

import (
	"context"
	"time"
)

// Store is the counter backend for fixed-window limiting. Implementations
// must make Incr atomic: concurrent calls for the same key may never observe
// the same count.
type Store interface {
	// Incr increments the counter for key, starting a new window with the
	// given TTL when none exists, and returns the post-increment count
	// together with the time the window expires.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)

	// Reset clears the counter for the given key.
	Reset(ctx context.Context, key string) error
}
