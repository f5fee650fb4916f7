package webhook

// defaultScheme is the permissive fallback for unregistered providers
// (§4.3): registry lookup is total, never an error by itself.
var defaultScheme = SignatureScheme{
	Algorithm:         AlgorithmHMACSHA256,
	SignatureHeader:   "x-webhook-signature",
	SignatureEncoding: EncodingHex,
	HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
	PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
	SecretEncoding:    SecretEncodingUTF8,
	Keying:            Keying{Kind: KeyingSharedSecret},
	ToleranceSeconds:  300,
	Notes:             "permissive default for unregistered providers",
}

// registry is the process-wide, build-time-immutable provider -> scheme
// mapping (§3, §9 "process-wide registry"). Nothing in this package mutates
// it after init.
var registry = map[Provider]SignatureScheme{
	ProviderStripe: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "stripe-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatDelimited, Separator: ",", TokenStyle: "kv", SigKey: "v1", TSKey: "t"},
		TimestampSource:   TimestampSource{Kind: TimestampSourceEmbedded, Key: "t"},
		PayloadForm:       PayloadForm{Kind: PayloadFormTimestamped, Separator: "."},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             `t=<unix-seconds>,v1=<hex-sha256> over "<t>.<body>"`,
	},
	ProviderGitHub: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "x-hub-signature-256",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatPrefixed, Prefix: "sha256="},
		TimestampSource:   TimestampSource{Kind: TimestampSourceNone},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		IDHeader:          "x-github-delivery",
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             "sha256=<hex> over the raw body; compare full header including prefix",
	},
	ProviderClerk: standardWebhooksScheme("svix-signature", "svix-id", "svix-timestamp"),
	ProviderDodoPayments: standardWebhooksScheme("webhook-signature", "webhook-id", "webhook-timestamp"),
	ProviderReplicate:    standardWebhooksScheme("webhook-signature", "webhook-id", "webhook-timestamp"),
	// Polar's detector rule resolves "webhook-signature" ambiguity via the
	// user-agent substring; the registry entry assumes it settled on the
	// standard-webhooks form (open question: source variants disagree on
	// whether polar instead uses its own x-polar-signature header).
	ProviderPolar: standardWebhooksScheme("webhook-signature", "webhook-id", "webhook-timestamp"),
	ProviderShopify: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "x-shopify-hmac-sha256",
		SignatureEncoding: EncodingBase64,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             "base64 HMAC-SHA256 over raw body; secret is UTF-8 (authoritative per Shopify docs)",
	},
	ProviderWooCommerce: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "x-wc-webhook-signature",
		SignatureEncoding: EncodingBase64,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
	},
	ProviderGitLab: {
		Algorithm:         AlgorithmTokenEquality,
		SignatureHeader:   "x-gitlab-token",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             "token-equality on x-gitlab-token",
	},
	ProviderPaddle: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "paddle-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatDelimited, Separator: ";", TokenStyle: "kv", SigKey: "h1", TSKey: "ts"},
		TimestampSource:   TimestampSource{Kind: TimestampSourceEmbedded, Key: "ts"},
		PayloadForm:       PayloadForm{Kind: PayloadFormTimestamped, Separator: ":"},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             `ts=<t>;h1=<hex> over "<t>:<body>"`,
	},
	ProviderRazorpay: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "x-razorpay-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
	},
	ProviderLemonSqueezy: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "x-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
	},
	ProviderWorkOS: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "workos-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatDelimited, Separator: ",", TokenStyle: "kv", SigKey: "v1", TSKey: "t"},
		TimestampSource:   TimestampSource{Kind: TimestampSourceEmbedded, Key: "t"},
		PayloadForm:       PayloadForm{Kind: PayloadFormTimestamped, Separator: "."},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             `t=<t>,v1=<hex> over "<t>.<body>"`,
	},
	ProviderVercel: {
		Algorithm:         AlgorithmHMACSHA1,
		SignatureHeader:   "x-vercel-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
	},
	ProviderSentry: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "sentry-hook-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		PayloadForm:       PayloadForm{Kind: PayloadFormJSONCanonical, MultiCandidate: true},
		SecretEncoding:    SecretEncodingUTF8,
		IDHeader:          "request-id",
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             "candidates: json-canonical(body), raw body, json-canonical(body.data.issue_alert)",
	},
	ProviderGrafana: {
		Algorithm:       AlgorithmHMACSHA256,
		SignatureHeader: "x-grafana-alerting-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		TimestampSource:   TimestampSource{Kind: TimestampSourceHeader, Header: "x-grafana-alerting-timestamp", Unit: UnitUnixSeconds},
		PayloadForm:       PayloadForm{Kind: PayloadFormTimestampOptional, Separator: "."},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             `"<t>.<body>" when a timestamp header is present, else raw body`,
	},
	ProviderDoppler: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "x-doppler-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatPrefixed, Prefix: "sha256="},
		PayloadForm:       PayloadForm{Kind: PayloadFormRaw},
		SecretEncoding:    SecretEncodingUTF8,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
	},
	ProviderSanity: {
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   "sanity-webhook-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatDelimited, Separator: ",", TokenStyle: "kv", SigKey: "v1", TSKey: "t"},
		TimestampSource:   TimestampSource{Kind: TimestampSourceEmbedded, Key: "t"},
		PayloadForm:       PayloadForm{Kind: PayloadFormTimestamped, Separator: "."},
		SecretEncoding:    SecretEncodingUTF8,
		IDHeader:          "idempotency-key",
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             `t=<t>,v1=<hex> over "<t>.<body>"; idempotency-key is the event id`,
	},
	ProviderFal: {
		Algorithm:         AlgorithmEd25519,
		SignatureHeader:   "x-fal-webhook-signature",
		SignatureEncoding: EncodingHex,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatRaw},
		TimestampSource:   TimestampSource{Kind: TimestampSourceHeader, Header: "x-fal-webhook-timestamp", Unit: UnitUnixSeconds},
		PayloadForm: PayloadForm{
			Kind:            PayloadFormFalEd25519,
			RequestIDHeader: "x-fal-webhook-request-id",
			UserIDHeader:    "x-fal-webhook-user-id",
		},
		SecretEncoding:   SecretEncodingUTF8,
		Keying:           Keying{Kind: KeyingJWKS},
		ToleranceSeconds: 300,
		Notes:            `hex Ed25519 over "<req-id>\n<user-id>\n<t>\nsha256_hex(body)"; keys from JWKS (URL supplied per-call via Options.JWKSURL)`,
	},
}

// standardWebhooksScheme builds the svix-style scheme shared by Clerk,
// Dodo Payments, Replicate, and (per the resolved open question) Polar.
func standardWebhooksScheme(sigHeader, idHeader, tsHeader string) SignatureScheme {
	return SignatureScheme{
		Algorithm:         AlgorithmHMACSHA256,
		SignatureHeader:   sigHeader,
		SignatureEncoding: EncodingBase64,
		HeaderFormat:      HeaderFormat{Kind: HeaderFormatDelimited, Separator: " ", TokenStyle: "versioned", SigKey: "v1"},
		TimestampSource:   TimestampSource{Kind: TimestampSourceHeader, Header: tsHeader, Unit: UnitUnixSeconds},
		PayloadForm:       PayloadForm{Kind: PayloadFormTemplated, Template: "{id}.{timestamp}.{body}"},
		SecretEncoding:    SecretEncodingBase64,
		IDHeader:          idHeader,
		Keying:            Keying{Kind: KeyingSharedSecret},
		ToleranceSeconds:  300,
		Notes:             "standard-webhooks form: whsec_<base64> secret, \"<id>.<timestamp>.<body>\" signed payload",
	}
}

// LookupScheme returns the registered scheme for provider, or the permissive
// default if provider is not registered. Lookup is total: it never fails.
func LookupScheme(provider Provider) SignatureScheme {
	if scheme, ok := registry[provider]; ok {
		return scheme
	}
	return defaultScheme
}

// ProvidersUsing returns every registered provider whose scheme uses the
// given algorithm.
func ProvidersUsing(alg Algorithm) []Provider {
	var out []Provider
	for provider, scheme := range registry {
		if scheme.Algorithm == alg {
			out = append(out, provider)
		}
	}
	return out
}
