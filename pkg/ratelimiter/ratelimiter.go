package ratelimiter

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
)

// maxKeyLength is the maximum allowed length for a rate limit key
// to prevent excessively long storage keys.
const maxKeyLength = 64

// Limiter applies a fixed-window limit on top of a counter Store. Because
// the counters live in the store, limits hold across process restarts and
// across instances when backed by a shared store such as Redis.
type Limiter struct {
	store  Store
	config Config
}

// New creates a fixed-window rate limiter.
func New(store Store, config Config) (*Limiter, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Limiter{
		store:  store,
		config: config,
	}, nil
}

// Allow counts one request against the key's current window and reports
// whether it fit inside the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	count, resetAt, err := l.store.Incr(ctx, key, l.config.Window)
	if err != nil {
		return nil, err
	}

	return &Result{
		Limit:     l.config.Limit,
		Remaining: l.config.Limit - count,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the counter for the given key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Key builds the counter key for an (action, identifier) pair. Keys longer
// than 64 characters are compacted with FNV-1a so arbitrary identifiers
// cannot blow up storage key sizes.
func Key(action, identifier string) string {
	combined := action + ":" + identifier
	if len(combined) <= maxKeyLength {
		return combined
	}
	h := fnv.New64a()
	h.Write([]byte(combined))
	// Base36 encoding for compact output (~13 chars)
	return action + ":" + strconv.FormatUint(h.Sum64(), 36)
}
