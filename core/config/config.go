package config

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	envOnce sync.Once
	cacheMu sync.RWMutex
	cache   = map[reflect.Type]any{}
)

// loadDotEnv loads a .env file from the working directory exactly once per
// process. A missing file is not an error; a malformed one is reported on
// first use only.
func loadDotEnv() error {
	var err error
	envOnce.Do(func() {
		if _, statErr := os.Stat(".env"); statErr == nil {
			err = godotenv.Load()
		}
	})
	return err
}

// Load parses environment variables into a new T using struct `env` tags and
// caches the result, keyed by T's type. Subsequent calls for the same T
// return the cached value without re-reading the environment.
func Load[T any]() (*T, error) {
	var zero T
	t := reflect.TypeOf(zero)

	cacheMu.RLock()
	if v, ok := cache[t]; ok {
		cacheMu.RUnlock()
		cfg := v.(*T)
		return cfg, nil
	}
	cacheMu.RUnlock()

	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	cfg := new(T)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment into %T: %w", zero, err)
	}

	cacheMu.Lock()
	cache[t] = cfg
	cacheMu.Unlock()

	return cfg, nil
}

// MustLoad is Load, panicking on error. Intended for application startup
// where a misconfigured environment should halt the process immediately.
func MustLoad[T any]() *T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Reset clears the cache. Exists for tests that need to reload configuration
// with a different environment within the same process.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[reflect.Type]any{}
}
