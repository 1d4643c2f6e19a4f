package httpserver

import "errors"

var (
	// ErrStart wraps failures to bind or serve, including a second Run call.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown wraps graceful shutdown failures, typically the drain
	// exceeding the shutdown timeout.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
