package webhook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webhookguard/pkg/webhook"
)

func TestLookupScheme_RegisteredProviders(t *testing.T) {
	for _, provider := range []webhook.Provider{
		webhook.ProviderStripe,
		webhook.ProviderGitHub,
		webhook.ProviderClerk,
		webhook.ProviderShopify,
		webhook.ProviderVercel,
		webhook.ProviderPolar,
		webhook.ProviderDodoPayments,
		webhook.ProviderGitLab,
		webhook.ProviderPaddle,
		webhook.ProviderRazorpay,
		webhook.ProviderLemonSqueezy,
		webhook.ProviderWorkOS,
		webhook.ProviderWooCommerce,
		webhook.ProviderReplicate,
		webhook.ProviderFal,
		webhook.ProviderSentry,
		webhook.ProviderGrafana,
		webhook.ProviderDoppler,
		webhook.ProviderSanity,
	} {
		t.Run(string(provider), func(t *testing.T) {
			scheme := webhook.LookupScheme(provider)
			require.True(t, webhook.ValidateScheme(scheme), "registered scheme for %s must be structurally valid", provider)
		})
	}
}

func TestLookupScheme_UnregisteredFallsBackToPermissiveDefault(t *testing.T) {
	scheme := webhook.LookupScheme(webhook.Provider("some-provider-nobody-registered"))
	assert.Equal(t, webhook.AlgorithmHMACSHA256, scheme.Algorithm)
	assert.Equal(t, "x-webhook-signature", scheme.SignatureHeader)
	assert.Equal(t, webhook.PayloadFormRaw, scheme.PayloadForm.Kind)
	assert.True(t, webhook.ValidateScheme(scheme))
}

func TestProvidersUsing(t *testing.T) {
	ed25519Providers := webhook.ProvidersUsing(webhook.AlgorithmEd25519)
	assert.Contains(t, ed25519Providers, webhook.ProviderFal)

	tokenProviders := webhook.ProvidersUsing(webhook.AlgorithmTokenEquality)
	assert.Contains(t, tokenProviders, webhook.ProviderGitLab)

	sha1Providers := webhook.ProvidersUsing(webhook.AlgorithmHMACSHA1)
	assert.Contains(t, sha1Providers, webhook.ProviderVercel)

	// Every registered provider appears under exactly one algorithm bucket.
	total := 0
	for _, alg := range []webhook.Algorithm{
		webhook.AlgorithmHMACSHA1,
		webhook.AlgorithmHMACSHA256,
		webhook.AlgorithmHMACSHA512,
		webhook.AlgorithmEd25519,
		webhook.AlgorithmTokenEquality,
	} {
		total += len(webhook.ProvidersUsing(alg))
	}
	assert.Equal(t, 19, total)
}
