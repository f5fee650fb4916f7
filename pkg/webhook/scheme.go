package webhook

// Provider is a closed enumerated identifier for a webhook sender. New
// providers are added by registering a SignatureScheme, not by extending
// verification logic.
type Provider string

const (
	ProviderStripe       Provider = "stripe"
	ProviderGitHub       Provider = "github"
	ProviderClerk        Provider = "clerk"
	ProviderShopify      Provider = "shopify"
	ProviderVercel       Provider = "vercel"
	ProviderPolar        Provider = "polar"
	ProviderDodoPayments Provider = "dodopayments"
	ProviderGitLab       Provider = "gitlab"
	ProviderPaddle       Provider = "paddle"
	ProviderRazorpay     Provider = "razorpay"
	ProviderLemonSqueezy Provider = "lemonsqueezy"
	ProviderWorkOS       Provider = "workos"
	ProviderWooCommerce  Provider = "woocommerce"
	ProviderReplicate    Provider = "replicate"
	ProviderFal          Provider = "fal"
	ProviderSentry       Provider = "sentry"
	ProviderGrafana      Provider = "grafana"
	ProviderDoppler      Provider = "doppler"
	ProviderSanity       Provider = "sanity"
	// ProviderSupabase has no dedicated signature scheme in the registry
	// (Supabase webhooks are typically fronted by a caller-supplied
	// secret validated upstream); it exists so the normalizer's
	// provider-to-category table can recognize it per its auth assignment.
	ProviderSupabase Provider = "supabase"
	ProviderCustom   Provider = "custom"
	ProviderUnknown  Provider = "unknown"
)

// Algorithm selects the verifier C7 dispatches to.
type Algorithm string

const (
	AlgorithmHMACSHA1      Algorithm = "hmac-sha1"
	AlgorithmHMACSHA256    Algorithm = "hmac-sha256"
	AlgorithmHMACSHA512    Algorithm = "hmac-sha512"
	AlgorithmEd25519       Algorithm = "ed25519"
	AlgorithmTokenEquality Algorithm = "token-equality"
)

// Encoding is how a signature or token is textually represented in its
// header.
type Encoding string

const (
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
)

// HeaderFormatKind is the closed sum for how a signature header's raw value
// maps to the extracted signature (and, for the delimited kind, timestamp).
type HeaderFormatKind string

const (
	// HeaderFormatRaw: the header value, trimmed, is the signature.
	HeaderFormatRaw HeaderFormatKind = "raw"
	// HeaderFormatPrefixed: the header value carries a literal prefix
	// (e.g. "sha256=") that is part of what gets compared, not stripped.
	HeaderFormatPrefixed HeaderFormatKind = "prefixed"
	// HeaderFormatDelimited: the header packs multiple tokens split on a
	// separator. TokenStyle selects how each token is parsed.
	HeaderFormatDelimited HeaderFormatKind = "delimited"
)

// HeaderFormat describes how to parse a scheme's signature header.
type HeaderFormat struct {
	Kind HeaderFormatKind
	// Prefix is used by HeaderFormatPrefixed, e.g. "sha256=".
	Prefix string
	// Separator splits the header into tokens for HeaderFormatDelimited.
	// Defaults to "," when empty.
	Separator string
	// TokenStyle selects how each token is parsed for the delimited kind:
	// "kv" for "key=value" pairs (Stripe/Paddle/WorkOS/Sanity style), or
	// "versioned" for "version,signature" pairs (standard-webhooks style).
	// Defaults to "kv".
	TokenStyle string
	// SigKey names the key (kv style) or expected version literal
	// (versioned style) that carries the signature. Defaults to "v1".
	SigKey string
	// TSKey names the key carrying an embedded timestamp (kv style only).
	// Defaults to "t".
	TSKey string
}

func (f HeaderFormat) separator() string {
	if f.Separator != "" {
		return f.Separator
	}
	return ","
}

func (f HeaderFormat) tokenStyle() string {
	if f.TokenStyle != "" {
		return f.TokenStyle
	}
	return "kv"
}

func (f HeaderFormat) sigKey() string {
	if f.SigKey != "" {
		return f.SigKey
	}
	return "v1"
}

func (f HeaderFormat) tsKey() string {
	if f.TSKey != "" {
		return f.TSKey
	}
	return "t"
}

// TimestampUnit is the unit a header-sourced timestamp is expressed in.
type TimestampUnit string

const (
	UnitUnixSeconds      TimestampUnit = "unix-seconds"
	UnitUnixMilliseconds TimestampUnit = "unix-milliseconds"
	UnitISO8601          TimestampUnit = "iso8601"
)

// TimestampSourceKind is the closed sum for where a scheme's timestamp
// comes from.
type TimestampSourceKind string

const (
	TimestampSourceNone     TimestampSourceKind = "none"
	TimestampSourceHeader   TimestampSourceKind = "header"
	TimestampSourceEmbedded TimestampSourceKind = "embedded-in-signature"
)

// TimestampSource describes how to derive a scheme's timestamp.
type TimestampSource struct {
	Kind TimestampSourceKind
	// Header and Unit apply to TimestampSourceHeader.
	Header string
	Unit   TimestampUnit
	// Key applies to TimestampSourceEmbedded: the key within the
	// delimited signature header's tokens that carries the timestamp.
	Key string
}

// PayloadFormKind is the closed sum for how the signed payload is
// reconstructed from the request.
type PayloadFormKind string

const (
	PayloadFormRaw           PayloadFormKind = "raw"
	PayloadFormTimestamped   PayloadFormKind = "timestamped"
	PayloadFormJSONCanonical PayloadFormKind = "json-canonical"
	PayloadFormTemplated     PayloadFormKind = "templated"
	// PayloadFormTimestampOptional behaves like PayloadFormTimestamped
	// when a timestamp resolves, and like PayloadFormRaw otherwise
	// (Grafana's "<t>.<body> when timestamp is present, else raw body").
	PayloadFormTimestampOptional PayloadFormKind = "timestamped-optional"
	// PayloadFormFalEd25519 is fal.ai's dedicated
	// "{request-id}\n{user-id}\n{timestamp}\n{sha256_hex(body)}" form.
	PayloadFormFalEd25519 PayloadFormKind = "fal-ed25519"
)

// PayloadForm describes how to reconstruct the exact bytes a sender signed.
type PayloadForm struct {
	Kind PayloadFormKind
	// Separator applies to PayloadFormTimestamped/TimestampOptional.
	// Defaults to "." when empty.
	Separator string
	// Template applies to PayloadFormTemplated; placeholders {id},
	// {timestamp}, {body} are substituted.
	Template string
	// MultiCandidate, on PayloadFormJSONCanonical, additionally tries the
	// raw body and the canonicalized body.data.issue_alert sub-object,
	// accepting if any candidate verifies (Sentry's policy).
	MultiCandidate bool
	// RequestIDHeader and UserIDHeader apply to PayloadFormFalEd25519.
	RequestIDHeader string
	UserIDHeader    string
}

func (f PayloadForm) separator() string {
	if f.Separator != "" {
		return f.Separator
	}
	return "."
}

// SecretEncoding describes how the caller-supplied secret string is turned
// into raw key bytes before use.
type SecretEncoding string

const (
	SecretEncodingUTF8   SecretEncoding = "utf8"
	SecretEncodingBase64 SecretEncoding = "base64"
)

// KeyingKind is the closed sum for how verification keys are obtained.
type KeyingKind string

const (
	KeyingSharedSecret    KeyingKind = "shared-secret"
	KeyingStaticPublicKey KeyingKind = "static-public-key"
	KeyingJWKS            KeyingKind = "jwks"
)

// Keying describes how a scheme obtains its verification key(s).
type Keying struct {
	Kind KeyingKind
	// PEM applies to KeyingStaticPublicKey: an SPKI-PEM encoded Ed25519
	// public key.
	PEM string
	// URL applies to KeyingJWKS: the JWKS endpoint to fetch keys from.
	// May be left empty in a registry entry when the endpoint is
	// account-specific; callers then supply Options.JWKSURL.
	URL string
}

// SignatureScheme is the immutable, declarative record describing how one
// provider signs its webhooks. It is a closed sum keyed by Algorithm: the
// verifier dispatches on the tag rather than on a class hierarchy.
type SignatureScheme struct {
	Algorithm         Algorithm
	SignatureHeader   string
	SignatureEncoding Encoding
	HeaderFormat      HeaderFormat
	TimestampSource   TimestampSource
	PayloadForm       PayloadForm
	SecretEncoding    SecretEncoding
	IDHeader          string
	Keying            Keying
	ToleranceSeconds  int64
	Notes             string
}

// ValidateScheme reports whether scheme satisfies the registry's structural
// invariants (§4.3): hmac-* schemes need a signature header; ed25519 needs a
// static public key or JWKS source; token-equality needs a signature header
// (its "token") to compare against.
func ValidateScheme(scheme SignatureScheme) bool {
	switch scheme.Algorithm {
	case AlgorithmHMACSHA1, AlgorithmHMACSHA256, AlgorithmHMACSHA512:
		return scheme.SignatureHeader != ""
	case AlgorithmEd25519:
		if scheme.SignatureHeader == "" {
			return false
		}
		return scheme.Keying.Kind == KeyingStaticPublicKey || scheme.Keying.Kind == KeyingJWKS
	case AlgorithmTokenEquality:
		return scheme.SignatureHeader != ""
	default:
		return false
	}
}
