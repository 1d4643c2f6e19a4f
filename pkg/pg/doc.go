// Package pg provides PostgreSQL connectivity built on pgx: pool creation
// with retries, embedded schema migrations via goose, and a health probe.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrationsFS, cfg, log); err != nil {
//		return err
//	}
//
// Migrations are read from an fs.FS (typically an //go:embed directory), so
// deployments never depend on migration files being present on disk.
//
// # Error Handling
//
// Failures are wrapped with errors.Join so both the package sentinel and the
// driver error survive:
//   - ErrFailedToParseDBConfig: malformed connection string
//   - ErrFailedToOpenDBConnection: all connection attempts exhausted
//   - ErrFailedToApplyMigrations: goose run failed
//   - ErrHealthcheckFailed: ping failed during a health probe
//
// Use pg.IsNotFoundError to detect empty query results without importing pgx
// in calling code.
package pg
