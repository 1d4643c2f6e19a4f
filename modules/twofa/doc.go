// Package twofa wires the two-factor authentication core into an HTTP module:
// a JSON API for enrollment and verification, PostgreSQL persistence, and
// per-user rate limiting.
//
// # Architecture
//
// The module composes three pieces:
//   - twofactor.Service: enrollment, code verification, lifecycle transitions
//   - PostgresStorage: atomic conditional writes over a pgxpool
//   - ratelimiter: fixed-window limits keyed per user and action
//
// Authentication stays upstream. The caller supplies an IdentityResolver
// that extracts the authenticated user from the request; the module never
// inspects sessions or tokens itself.
//
// # Endpoints
//
//	POST /setup   provision a fresh secret, backup codes, and QR reference
//	POST /verify  check a TOTP or backup code; body: {"code": "...", "action": ""|"enable"|"disable"}
//
// Verification responses report whether a backup code was spent and, when
// one was, how many remain. Expected rejections (malformed code, wrong code,
// unconfigured account, impossible transition) come back as 400 with an
// error message; unauthenticated requests get 401; persistence failures 500.
//
// # Usage
//
//	storage := twofa.NewPostgresStorage(pool)
//	core := twofactor.NewService(storage, cfg.Issuer, twofactor.WithLogger(log))
//	svc, err := twofa.NewService(cfg, core, resolver, ratelimiter.NewRedisStore(rdb))
//	if err != nil {
//		return err
//	}
//	r.Mount("/2fa", twofa.Router(twofa.RouterOptions{TwoFactor: svc}))
//
// Schema migrations ship embedded; run them at startup with
// pg.Migrate(ctx, pool, twofa.Migrations(), pgCfg, log).
package twofa
