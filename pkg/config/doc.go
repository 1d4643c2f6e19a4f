// Package config loads typed configuration structs from environment
// variables, caching each struct type after its first parse so every
// component reads the same values.
//
// # Usage
//
//	var (
//		pgCfg    pg.Config
//		twofaCfg twofa.Config
//	)
//	config.MustLoad(&pgCfg)
//	config.MustLoad(&twofaCfg)
//
// Struct fields declare their sources with `env` tags:
//
//	type Config struct {
//		Issuer          string `env:"TWOFA_ISSUER,required"`
//		BackupCodeCount int    `env:"TWOFA_BACKUP_CODE_COUNT" envDefault:"10"`
//	}
//
// A .env file in the working directory is applied once, before the first
// parse, without overriding variables that are already set. LoadEnv loads
// additional files explicitly.
//
// # Error Handling
//
//   - ErrParsingConfig: a tag failed to parse or a required variable is unset
//   - ErrNilPointer: Load was handed a nil destination
//   - ErrLoadingEnvFile: an explicitly named .env file could not be read
package config
