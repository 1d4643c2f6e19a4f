// Package httpserver carries the HTTP lifecycle for the two-factor service:
// a graceful-shutdown server wrapper and a health endpoint that composes the
// service's dependency probes.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
//		pg.Healthcheck(pool), redis.Healthcheck(rdb)))
//	r.Mount("/2fa", twofa.Router(twofa.RouterOptions{TwoFactor: svc}))
//
//	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// Run blocks until the context is cancelled or the process receives
// SIGINT/SIGTERM, then drains in-flight requests within the shutdown
// timeout. Verification requests are short-lived, so the default 5 second
// drain is generous.
//
// # Error Handling
//
// Listen failures come back wrapped with ErrStart, shutdown failures with
// ErrShutdown; both join the underlying error for errors.Is inspection.
package httpserver
