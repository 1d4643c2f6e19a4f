package ratelimiter_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mfakit/mfakit/pkg/ratelimiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int, window time.Duration) *ratelimiter.Limiter {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	l, err := ratelimiter.New(store, ratelimiter.Config{Limit: limit, Window: window})
	require.NoError(t, err)
	return l
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	tests := []struct {
		name   string
		config ratelimiter.Config
	}{
		{name: "Zero limit", config: ratelimiter.Config{Limit: 0, Window: time.Minute}},
		{name: "Negative limit", config: ratelimiter.Config{Limit: -1, Window: time.Minute}},
		{name: "Zero window", config: ratelimiter.Config{Limit: 5, Window: 0}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.New(store, tt.config)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestAllowWithinLimit(t *testing.T) {
	t.Parallel()
	l := newLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := l.Allow(ctx, "verify:user-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed(), "request %d should be allowed", i+1)
		assert.Equal(t, 3-(i+1), result.Remaining)
	}

	result, err := l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed())
	assert.Positive(t, result.RetryAfter())
}

func TestAllowIsolatesKeys(t *testing.T) {
	t.Parallel()
	l := newLimiter(t, 1, time.Minute)
	ctx := context.Background()

	first, err := l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	assert.True(t, first.Allowed())

	// Exhausting user-1 must not affect user-2 or another action.
	second, err := l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	assert.False(t, second.Allowed())

	other, err := l.Allow(ctx, "verify:user-2")
	require.NoError(t, err)
	assert.True(t, other.Allowed())

	setup, err := l.Allow(ctx, "setup:user-1")
	require.NoError(t, err)
	assert.True(t, setup.Allowed())
}

func TestWindowExpiry(t *testing.T) {
	t.Parallel()
	l := newLimiter(t, 1, 50*time.Millisecond)
	ctx := context.Background()

	result, err := l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	require.True(t, result.Allowed())

	result, err = l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	require.False(t, result.Allowed())

	time.Sleep(60 * time.Millisecond)

	result, err = l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed(), "a fresh window opens after the TTL elapses")
}

func TestReset(t *testing.T) {
	t.Parallel()
	l := newLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, err := l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	require.NoError(t, l.Reset(ctx, "verify:user-1"))

	result, err := l.Allow(ctx, "verify:user-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed())
}

func TestAllowConcurrent(t *testing.T) {
	t.Parallel()
	l := newLimiter(t, 10, time.Minute)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for ri := 0; ri < 50; ri++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := l.Allow(ctx, "verify:user-1")
			if err == nil && result.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed, "exactly Limit requests may pass per window")
}

func TestKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "verify:user-1", ratelimiter.Key("verify", "user-1"))

	long := ratelimiter.Key("verify", strings.Repeat("x", 200))
	assert.True(t, strings.HasPrefix(long, "verify:"))
	assert.LessOrEqual(t, len(long), 64)

	// Distinct identifiers must not collapse to the same compacted key.
	other := ratelimiter.Key("verify", strings.Repeat("y", 200))
	assert.NotEqual(t, long, other)
}
