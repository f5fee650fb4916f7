package webhookcfg_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webhookguard/core/config"
	"github.com/dmitrymomot/webhookguard/core/logger"
	"github.com/dmitrymomot/webhookguard/pkg/webhook"
	"github.com/dmitrymomot/webhookguard/pkg/webhookcfg"
)

func TestLoad_Defaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := webhookcfg.Load()
	require.NoError(t, err)
	assert.EqualValues(t, 300, cfg.DefaultToleranceSeconds)
	assert.Equal(t, 24*time.Hour, cfg.JWKSCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.JWKSFetchTimeout)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	require.NoError(t, os.Setenv("WEBHOOK_DEFAULT_TOLERANCE_SECONDS", "60"))
	require.NoError(t, os.Setenv("WEBHOOK_JWKS_CACHE_TTL", "1h"))
	t.Cleanup(func() {
		os.Unsetenv("WEBHOOK_DEFAULT_TOLERANCE_SECONDS")
		os.Unsetenv("WEBHOOK_JWKS_CACHE_TTL")
	})

	cfg, err := webhookcfg.Load()
	require.NoError(t, err)
	assert.EqualValues(t, 60, cfg.DefaultToleranceSeconds)
	assert.Equal(t, time.Hour, cfg.JWKSCacheTTL)
}

func TestConfig_DefaultOptions(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := webhookcfg.Load()
	require.NoError(t, err)

	opts := cfg.DefaultOptions()
	assert.EqualValues(t, cfg.DefaultToleranceSeconds, opts.ToleranceSeconds)
}

func TestConfig_NewJWKSCache(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := webhookcfg.Load()
	require.NoError(t, err)

	cache := cfg.NewJWKSCache()
	require.NotNil(t, cache)
}

func TestConfig_Logger_DevelopmentPreset(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := webhookcfg.Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)

	var buf bytes.Buffer
	log := cfg.Logger(logger.WithOutput(&buf))
	log.Debug("probe")
	assert.Contains(t, buf.String(), "probe")
}

func TestConfig_Logger_ProductionPresetOmitsDebug(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	require.NoError(t, os.Setenv("WEBHOOK_ENV", "production"))
	t.Cleanup(func() { os.Unsetenv("WEBHOOK_ENV") })

	cfg, err := webhookcfg.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	log := cfg.Logger(logger.WithOutput(&buf))
	log.Debug("should not appear")
	assert.Empty(t, buf.String())
}

// NewJWKSCache wires Config.Logger into the cache it builds, so a JWKS fetch
// actually emits the diagnostics DESIGN.md describes, not just a logger
// sitting unused.
func TestConfig_NewJWKSCache_LogsFetch(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := webhookcfg.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	cache := cfg.NewJWKSCache(webhook.WithJWKSLogger(cfg.Logger(logger.WithOutput(&buf))))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"keys":[]}`))
	}))
	defer server.Close()

	_, err = cache.ResolveKeys(context.Background(), server.URL)
	require.Error(t, err, "a JWKS document with zero usable keys is KeyResolutionFailed")
	assert.Contains(t, buf.String(), "fetching jwks")
}
