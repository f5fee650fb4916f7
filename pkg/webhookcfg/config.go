// Package webhookcfg is the environment-driven settings a host process loads
// before constructing a webhook.JWKSCache or calling webhook.Verify. The
// verification engine in pkg/webhook never reads the environment itself
// (§5 of the engine's core spec keeps it a pure, synchronous function over
// its inputs); this package is where a process-level default lives.
package webhookcfg

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/webhookguard/core/config"
	"github.com/dmitrymomot/webhookguard/core/logger"
	"github.com/dmitrymomot/webhookguard/pkg/webhook"
)

// Config is the host-level settings a webhook-verifying service loads once
// at startup. It never reaches into pkg/webhook's internals; it only
// supplies the same constructor arguments a caller could pass by hand.
type Config struct {
	// DefaultToleranceSeconds overrides every scheme's own tolerance unless
	// a call sets Options.ToleranceSeconds explicitly.
	DefaultToleranceSeconds int64 `env:"WEBHOOK_DEFAULT_TOLERANCE_SECONDS" envDefault:"300"`
	// JWKSCacheTTL is how long a resolved JWKS document is trusted before
	// the next ResolveKeys call triggers a refetch.
	JWKSCacheTTL time.Duration `env:"WEBHOOK_JWKS_CACHE_TTL" envDefault:"24h"`
	// JWKSFetchTimeout bounds a single JWKS HTTP fetch.
	JWKSFetchTimeout time.Duration `env:"WEBHOOK_JWKS_FETCH_TIMEOUT" envDefault:"5s"`
	// Environment selects the core/logger preset Logger builds: "development"
	// (text, debug) or anything else (JSON, info), the same split the
	// teacher's WithDevelopment/WithProduction options draw.
	Environment string `env:"WEBHOOK_ENV" envDefault:"development"`
}

// Load reads Config from the environment (and an optional .env file),
// caching the result for the lifetime of the process.
func Load() (*Config, error) {
	return config.Load[Config]()
}

// MustLoad is Load, panicking on error.
func MustLoad() *Config {
	return config.MustLoad[Config]()
}

// Logger builds the core/logger-backed *slog.Logger that NewJWKSCache
// attaches to JWKS fetch/refresh diagnostics. extra options layer on top of
// c.Environment's preset, e.g. to redirect output in a test.
func (c *Config) Logger(extra ...logger.Option) *slog.Logger {
	preset := logger.WithProduction("webhookguard-jwks")
	if c.Environment == "development" {
		preset = logger.WithDevelopment("webhookguard-jwks")
	}
	opts := append([]logger.Option{preset}, extra...)
	return logger.New(opts...)
}

// NewJWKSCache builds a webhook.JWKSCache using c's TTL, fetch timeout, and
// logger, with room for the caller to layer additional options (e.g. an
// overriding logger or HTTP client) on top.
func (c *Config) NewJWKSCache(extra ...webhook.JWKSCacheOption) *webhook.JWKSCache {
	opts := append([]webhook.JWKSCacheOption{
		webhook.WithJWKSTTL(c.JWKSCacheTTL),
		webhook.WithJWKSHTTPClient(&http.Client{Timeout: c.JWKSFetchTimeout}),
		webhook.WithJWKSLogger(c.Logger()),
	}, extra...)
	return webhook.NewJWKSCache(opts...)
}

// DefaultOptions returns a webhook.Options seeded with c's default
// tolerance. Callers can still override individual fields before calling
// webhook.Verify.
func (c *Config) DefaultOptions() webhook.Options {
	return webhook.Options{ToleranceSeconds: c.DefaultToleranceSeconds}
}
