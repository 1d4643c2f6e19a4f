package ratelimiter

import "time"

// Config defines a fixed-window limit.
type Config struct {
	Limit  int           // Maximum requests allowed per window
	Window time.Duration // Window length; counters expire when it elapses
}

// Result contains the outcome of a rate limit check.
type Result struct {
	Limit     int       // Configured maximum for the window
	Remaining int       // Requests left in the current window
	ResetAt   time.Time // When the current window's counter expires
}

// Allowed reports whether the request fit inside the window's limit.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request.
// Returns 0 if the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}
