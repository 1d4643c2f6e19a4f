package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu      sync.Mutex
	cache   = map[reflect.Type]any{}
	envOnce sync.Once
)

// Load parses environment variables into cfg based on its `env` struct tags.
// The first call for a given struct type parses the environment; later calls
// return the cached copy, so the pg pool, the redis client, and the twofa
// module all see one consistent view of their settings no matter where they
// load them. The default .env file is read once before the first parse; a
// missing file is not an error.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	envOnce.Do(func() {
		// Optional developer convenience, deployments set real env vars.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	// Store a copy so later mutations of cfg do not leak into other callers.
	cache[key] = *cfg
	return nil
}

// MustLoad is Load for configuration the process cannot start without; it
// panics on failure instead of returning the error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment before any
// configuration is parsed. Variables that are already set keep their values.
// With no arguments the default .env file is read; here, unlike in Load's
// implicit pass, a missing file is an error.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops all cached configuration so the next Load parses the
// environment again. Intended for tests that mutate env vars between loads.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	cache = map[reflect.Type]any{}
}
