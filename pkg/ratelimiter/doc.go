// Package ratelimiter provides fixed-window rate limiting keyed by
// (action, identifier) pairs, with counters held in a pluggable Store.
//
// Unlike an in-process counter map, limits enforced through a shared store
// (RedisStore) survive restarts and hold across multiple application
// instances; MemoryStore exists for tests and single-instance development.
// Counters carry a TTL equal to the window length, so stale keys evict
// themselves.
//
// # Architecture
//
//   • Limiter     – applies Config{Limit, Window} on top of a Store
//   • Store       – atomic Incr with TTL; RedisStore (shared) and
//     MemoryStore (in-process with background sweep)
//   • Key         – canonical "action:identifier" key construction with
//     FNV-1a compaction of oversized identifiers
//   • Middleware  – net/http middleware setting X-RateLimit-* headers and
//     answering 429 with Retry-After when the window is exhausted
//
// # Usage
//
//	store := ratelimiter.NewRedisStore(redisClient)
//	limiter, err := ratelimiter.New(store, ratelimiter.Config{
//		Limit:  10,
//		Window: time.Minute,
//	})
//	if err != nil {
//		// handle error
//	}
//
//	result, err := limiter.Allow(ctx, ratelimiter.Key("twofa_verify", userID))
//	if !result.Allowed() {
//		// reject, retry after result.RetryAfter()
//	}
package ratelimiter
