package webhook_test

import (
	"context"
	"crypto/ed25519"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webhookguard/pkg/webhook"
)

func TestJWKSCache_ResolveKeys_CachesWithinTTL(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	fetches := 0
	server := httptest.NewServer(jwksHandler(&fetches, pub))
	defer server.Close()

	cache := webhook.NewJWKSCache(webhook.WithJWKSTTL(time.Hour))

	pems1, err := cache.ResolveKeys(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, pems1, 1)

	pems2, err := cache.ResolveKeys(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, pems1, pems2)
	assert.Equal(t, 1, fetches)
}

func TestJWKSCache_RefetchesAfterExpiry(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	fetches := 0
	server := httptest.NewServer(jwksHandler(&fetches, pub))
	defer server.Close()

	cache := webhook.NewJWKSCache(webhook.WithJWKSTTL(time.Nanosecond))

	_, err = cache.ResolveKeys(context.Background(), server.URL)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = cache.ResolveKeys(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestJWKSCache_SkipsMalformedKeysSilently(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	server := httptest.NewServer(mixedJWKSHandler(pub))
	defer server.Close()

	cache := webhook.NewJWKSCache()
	pems, err := cache.ResolveKeys(context.Background(), server.URL)
	require.NoError(t, err)
	// Only the single well-formed Ed25519 entry survives; the RSA entry and
	// the malformed OKP entry are skipped rather than failing the whole
	// fetch.
	assert.Len(t, pems, 1)
}

// Options.JWKSCache lets a host's own cache (distinct TTL/HTTP client) back
// a Verify call instead of the package-level default.
func TestVerify_Fal_UsesCallerSuppliedJWKSCache(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	fetches := 0
	server := httptest.NewServer(jwksHandler(&fetches, pub))
	defer server.Close()

	cache := webhook.NewJWKSCache(webhook.WithJWKSTTL(time.Minute))

	body := []byte(`{"request_id":"req-custom"}`)
	ts := int64(1_700_000_000)
	sig := signFalPayload(priv, "req-custom", "user-x", ts, body)

	req := webhook.VerificationRequest{
		Headers: webhook.HeadersFromMap(map[string]string{
			"x-fal-webhook-signature":  sig,
			"x-fal-webhook-timestamp":  "1700000000",
			"x-fal-webhook-request-id": "req-custom",
			"x-fal-webhook-user-id":    "user-x",
		}),
		Body: body,
	}

	result, err := webhook.Verify(req, webhook.ProviderFal, "", webhook.Options{
		Now:       fixedNow(ts),
		JWKSURL:   server.URL,
		JWKSCache: cache,
	})
	require.NoError(t, err)
	assert.Equal(t, "fal_req-custom", result.CanonicalEventID)
	assert.Equal(t, 1, fetches)
}
