// Package redis provides Redis connectivity: client creation with retries and
// a health probe. The returned client backs shared state such as rate limit
// counters.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// # Error Handling
//
//   - ErrFailedToParseRedisConnString: malformed connection URL
//   - ErrRedisNotReady: server unreachable within the configured budget
//   - ErrHealthcheckFailed: ping failed during a health probe
package redis
