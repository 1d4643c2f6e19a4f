// Package logger builds configured slog.Logger instances with environment
// presets, static attributes, and context-driven attribute injection.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Environment, "twofa"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	logger.SetAsDefault(log)
//
// Context extractors run on every log call, so values stored in the request
// context by middleware appear on each record without explicit plumbing.
//
// Attr helpers (Error, UserID, RequestID, Component, Event) keep attribute
// keys consistent across the codebase.
package logger
