package webhook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/webhookguard/pkg/webhook"
)

func TestValidateScheme(t *testing.T) {
	tests := []struct {
		name   string
		scheme webhook.SignatureScheme
		want   bool
	}{
		{
			name: "hmac with header is valid",
			scheme: webhook.SignatureScheme{
				Algorithm:       webhook.AlgorithmHMACSHA256,
				SignatureHeader: "x-signature",
			},
			want: true,
		},
		{
			name: "hmac without header is invalid",
			scheme: webhook.SignatureScheme{
				Algorithm: webhook.AlgorithmHMACSHA256,
			},
			want: false,
		},
		{
			name: "ed25519 with static key is valid",
			scheme: webhook.SignatureScheme{
				Algorithm:       webhook.AlgorithmEd25519,
				SignatureHeader: "x-signature",
				Keying:          webhook.Keying{Kind: webhook.KeyingStaticPublicKey, PEM: "pem"},
			},
			want: true,
		},
		{
			name: "ed25519 with jwks is valid",
			scheme: webhook.SignatureScheme{
				Algorithm:       webhook.AlgorithmEd25519,
				SignatureHeader: "x-signature",
				Keying:          webhook.Keying{Kind: webhook.KeyingJWKS, URL: "https://example.com/jwks"},
			},
			want: true,
		},
		{
			name: "ed25519 with shared-secret keying is invalid",
			scheme: webhook.SignatureScheme{
				Algorithm:       webhook.AlgorithmEd25519,
				SignatureHeader: "x-signature",
				Keying:          webhook.Keying{Kind: webhook.KeyingSharedSecret},
			},
			want: false,
		},
		{
			name: "ed25519 without signature header is invalid",
			scheme: webhook.SignatureScheme{
				Algorithm: webhook.AlgorithmEd25519,
				Keying:    webhook.Keying{Kind: webhook.KeyingStaticPublicKey, PEM: "pem"},
			},
			want: false,
		},
		{
			name: "token-equality with header is valid",
			scheme: webhook.SignatureScheme{
				Algorithm:       webhook.AlgorithmTokenEquality,
				SignatureHeader: "x-gitlab-token",
			},
			want: true,
		},
		{
			name: "token-equality without header is invalid",
			scheme: webhook.SignatureScheme{
				Algorithm: webhook.AlgorithmTokenEquality,
			},
			want: false,
		},
		{
			name:   "unknown algorithm is invalid",
			scheme: webhook.SignatureScheme{Algorithm: "rsa-sha256"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webhook.ValidateScheme(tt.scheme))
		})
	}
}
