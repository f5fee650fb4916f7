package webhook

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Headers is a case-insensitive, comma-joining multi-map of HTTP headers, as
// required by the verification request contract: duplicate header values are
// joined with ", " under a single lower-cased key, matching how most HTTP
// stacks (and Go's net/http) already normalize multi-value headers.
type Headers map[string]string

// HeadersFromHTTP builds a Headers map from a net/http.Header, comma-joining
// any repeated values.
func HeadersFromHTTP(h http.Header) Headers {
	out := make(Headers, len(h))
	for k, vs := range h {
		out[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return out
}

// HeadersFromMap builds a Headers map from a plain map, lower-casing keys.
// Callers that already have comma-joined values (e.g. from another
// framework's header accessor) can use this directly.
func HeadersFromMap(m map[string]string) Headers {
	out := make(Headers, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Get returns the header value, or "" if absent. Lookup is case-insensitive.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

// VerificationRequest is the input to every verification entry point. Body
// must be the exact raw bytes received on the wire; re-serializing a parsed
// JSON object before verification will almost always invalidate the
// signature.
type VerificationRequest struct {
	Method  string
	URL     string
	Headers Headers
	Body    []byte
}

// Options configures a single verification call. The zero value uses each
// scheme's default tolerance and skips normalization.
type Options struct {
	// ToleranceSeconds overrides the scheme's default freshness window.
	// Zero means "use the scheme's own ToleranceSeconds".
	ToleranceSeconds int64
	// Normalize, when true, runs the post-verification normalizer and
	// populates Success.Normalized.
	Normalize bool
	// NormalizeCategory restricts normalization to a specific category;
	// empty means "use the provider's assigned category".
	NormalizeCategory Category
	// IncludeRaw, when true and Normalize is set, attaches the raw parsed
	// body to the normalized record's Raw field.
	IncludeRaw bool
	// JWKSURL overrides the scheme's configured JWKS endpoint. Required for
	// schemes (e.g. fal.ai) whose registry entry leaves Keying.URL empty
	// because the endpoint is account-specific.
	JWKSURL string
	// JWKSCache overrides the package-level default JWKS cache. A host that
	// builds its own cache (e.g. via webhookcfg.Config.NewJWKSCache, with a
	// non-default TTL or HTTP client) sets this so its settings actually
	// take effect on the Ed25519/JWKS verification path.
	JWKSCache *JWKSCache
	// Now returns the current time; defaults to time.Now. Exists so tests
	// can pin freshness checks to a fixed instant.
	Now func() time.Time
	// Context bounds a JWKS fetch triggered by this call; defaults to
	// context.Background(). No other step in the pipeline blocks.
	Context context.Context
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) ctx() context.Context {
	if o.Context != nil {
		return o.Context
	}
	return context.Background()
}

func (o Options) jwksCache() *JWKSCache {
	if o.JWKSCache != nil {
		return o.JWKSCache
	}
	return defaultJWKSCache
}

func (o Options) tolerance(scheme SignatureScheme) int64 {
	if o.ToleranceSeconds > 0 {
		return o.ToleranceSeconds
	}
	if scheme.ToleranceSeconds > 0 {
		return scheme.ToleranceSeconds
	}
	return 300
}
