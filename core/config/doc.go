// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls, keyed by the type itself.
//
// The package automatically loads a .env file from the working directory on
// first use and uses the caarlos0/env library for parsing environment
// variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/webhookguard/core/config"
//
//	type DatabaseConfig struct {
//		Host     string `env:"DB_HOST" envDefault:"localhost"`
//		Port     int    `env:"DB_PORT" envDefault:"5432"`
//		Username string `env:"DB_USER,required"`
//		Password string `env:"DB_PASS,required"`
//	}
//
//	func main() {
//		// Load with error handling
//		db, err := config.Load[DatabaseConfig]()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		db := config.MustLoad[DatabaseConfig]()
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	cfg1, _ := config.Load[DatabaseConfig]() // loads from environment
//	cfg2, _ := config.Load[DatabaseConfig]() // returns the cached *DatabaseConfig; cfg1 == cfg2
//
// Different types are cached independently:
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad[ServerConfig]()
//	config.MustLoad[RedisConfig]()
//
// Reset clears the cache; it exists for tests that need to reload
// configuration under a different environment within the same process.
package config
