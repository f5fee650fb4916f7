package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webhookguard/core/config"
)

type testWebhookConfig struct {
	ToleranceSeconds int    `env:"WEBHOOK_TOLERANCE_SECONDS" envDefault:"300"`
	JWKSCacheTTL     string `env:"WEBHOOK_JWKS_TTL" envDefault:"24h"`
}

func TestLoad_DefaultsAndCaching(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := config.Load[testWebhookConfig]()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.ToleranceSeconds)
	assert.Equal(t, "24h", cfg.JWKSCacheTTL)

	// Mutating the environment after the first Load must not affect the
	// cached value.
	require.NoError(t, os.Setenv("WEBHOOK_TOLERANCE_SECONDS", "60"))
	t.Cleanup(func() { os.Unsetenv("WEBHOOK_TOLERANCE_SECONDS") })

	cached, err := config.Load[testWebhookConfig]()
	require.NoError(t, err)
	assert.Same(t, cfg, cached)
	assert.Equal(t, 300, cached.ToleranceSeconds)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	require.NoError(t, os.Setenv("WEBHOOK_TOLERANCE_SECONDS", "120"))
	t.Cleanup(func() { os.Unsetenv("WEBHOOK_TOLERANCE_SECONDS") })

	cfg, err := config.Load[testWebhookConfig]()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.ToleranceSeconds)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	require.NoError(t, os.Setenv("WEBHOOK_TOLERANCE_SECONDS", "not-a-number"))
	t.Cleanup(func() { os.Unsetenv("WEBHOOK_TOLERANCE_SECONDS") })

	assert.Panics(t, func() {
		config.MustLoad[testWebhookConfig]()
	})
}
