package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreUnavailable indicates that the counter backend is unavailable.
	ErrStoreUnavailable = errors.New("store unavailable")
)
