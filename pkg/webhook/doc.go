// Package webhook verifies inbound webhook requests from third-party
// providers and derives stable identifiers for downstream idempotency.
//
// The package authenticates a request's origin (HMAC-SHA1/256/512, Ed25519
// with optional JWKS key rotation, or plain token equality), validates its
// freshness, and reconstructs the exact bytes the sender signed according to
// a declarative per-provider SignatureScheme. It never panics across its
// API: every entry point returns either a *Success or a non-nil error that
// can be inspected with errors.As into *Failure.
//
// # Basic usage
//
// Verify a request against a known provider:
//
//	req := webhook.VerificationRequest{
//		Headers: webhook.HeadersFromHTTP(r.Header),
//		Body:    body, // must be the exact raw bytes received, never re-marshaled JSON
//	}
//
//	result, err := webhook.Verify(req, webhook.ProviderStripe, secret, webhook.Options{})
//	if err != nil {
//		var failure *webhook.Failure
//		if errors.As(err, &failure) {
//			http.Error(w, failure.Message, http.StatusUnauthorized)
//		}
//		return
//	}
//
// # Multi-provider endpoints
//
// When a single endpoint accepts webhooks from several providers, detect the
// sender and verify against whichever secret matches:
//
//	result, err := webhook.VerifyAny(req, map[webhook.Provider]string{
//		webhook.ProviderStripe: stripeSecret,
//		webhook.ProviderGitHub: githubSecret,
//	}, webhook.Options{})
//
// # Custom schemes
//
// Providers not in the built-in registry can be verified directly against a
// caller-supplied SignatureScheme:
//
//	scheme := webhook.SignatureScheme{
//		Algorithm:         webhook.AlgorithmHMACSHA256,
//		SignatureHeader:   "X-Internal-Signature",
//		SignatureEncoding: webhook.EncodingHex,
//		HeaderFormat:      webhook.HeaderFormat{Kind: webhook.HeaderFormatRaw},
//		PayloadForm:       webhook.PayloadForm{Kind: webhook.PayloadFormRaw},
//		SecretEncoding:    webhook.SecretEncodingUTF8,
//		Keying:            webhook.Keying{Kind: webhook.KeyingSharedSecret},
//		ToleranceSeconds:  300,
//	}
//
//	result, err := webhook.VerifyWithScheme(req, scheme, secret, webhook.Options{})
//
// # Normalization
//
// Verified payloads can optionally be mapped into a small set of
// category-shaped records for providers the normalizer recognizes:
//
//	result, err := webhook.Verify(req, webhook.ProviderStripe, secret, webhook.Options{
//		Normalize: true,
//	})
//	payment, _ := result.Normalized.(webhook.PaymentEvent)
//
// # Error kinds
//
//   - ErrMissingSignature / ErrMissingToken: required header absent.
//   - ErrInvalidSignature / ErrInvalidToken: comparison failed.
//   - ErrTimestampExpired: timestamp outside the freshness window.
//   - ErrTimestampMalformed: timestamp absent or unparsable where required.
//   - ErrKeyResolutionFailed: JWKS fetch or key parse failure.
//   - ErrPlatformNotSupported: unknown provider with no usable default.
//   - ErrPayloadMalformed: templated payload missing a required placeholder.
//   - ErrVerificationError: catch-all for unexpected internal failures.
package webhook
