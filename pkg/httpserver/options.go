package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the Server. Zero or nil values are ignored so options
// can be fed straight from a Config without guarding each field.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithReadTimeout bounds reading an entire request, header included.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// WithWriteTimeout bounds writing a response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithIdleTimeout bounds waiting for the next request on a kept-alive
// connection.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger passed to start hooks and used for lifecycle
// messages. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStartHook registers a callback invoked just before the server begins
// listening, e.g. to log the bound address.
func WithStartHook(hook func(*slog.Logger)) Option {
	return func(s *Server) {
		if hook != nil {
			s.onStart = append(s.onStart, hook)
		}
	}
}
