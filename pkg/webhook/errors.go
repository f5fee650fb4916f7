package webhook

import "errors"

// ErrorKind is the closed set of failure categories a verification can
// report. Every Failure carries exactly one.
type ErrorKind string

const (
	ErrorKindMissingSignature     ErrorKind = "missing_signature"
	ErrorKindInvalidSignature     ErrorKind = "invalid_signature"
	ErrorKindTimestampExpired     ErrorKind = "timestamp_expired"
	ErrorKindTimestampMalformed   ErrorKind = "timestamp_malformed"
	ErrorKindMissingToken         ErrorKind = "missing_token"
	ErrorKindInvalidToken         ErrorKind = "invalid_token"
	ErrorKindPlatformNotSupported ErrorKind = "platform_not_supported"
	ErrorKindKeyResolutionFailed  ErrorKind = "key_resolution_failed"
	ErrorKindPayloadMalformed     ErrorKind = "payload_malformed"
	ErrorKindVerificationError    ErrorKind = "verification_error"
)

// Sentinel errors, one per ErrorKind, so callers can errors.Is against a
// specific failure category without inspecting a Failure's fields.
var (
	ErrMissingSignature     = errors.New("webhook: missing signature")
	ErrInvalidSignature     = errors.New("webhook: invalid signature")
	ErrTimestampExpired     = errors.New("webhook: timestamp expired")
	ErrTimestampMalformed   = errors.New("webhook: timestamp malformed")
	ErrMissingToken         = errors.New("webhook: missing token")
	ErrInvalidToken         = errors.New("webhook: invalid token")
	ErrPlatformNotSupported = errors.New("webhook: platform not supported")
	ErrKeyResolutionFailed  = errors.New("webhook: key resolution failed")
	ErrPayloadMalformed     = errors.New("webhook: payload malformed")
	ErrVerificationError    = errors.New("webhook: verification error")
)

var sentinelByKind = map[ErrorKind]error{
	ErrorKindMissingSignature:     ErrMissingSignature,
	ErrorKindInvalidSignature:     ErrInvalidSignature,
	ErrorKindTimestampExpired:     ErrTimestampExpired,
	ErrorKindTimestampMalformed:   ErrTimestampMalformed,
	ErrorKindMissingToken:         ErrMissingToken,
	ErrorKindInvalidToken:         ErrInvalidToken,
	ErrorKindPlatformNotSupported: ErrPlatformNotSupported,
	ErrorKindKeyResolutionFailed:  ErrKeyResolutionFailed,
	ErrorKindPayloadMalformed:     ErrPayloadMalformed,
	ErrorKindVerificationError:    ErrVerificationError,
}

// Failure is the typed error a verification returns on anything short of
// Success. It implements error and Unwrap, so errors.Is(err,
// ErrInvalidSignature) and errors.As(err, &failure) both work.
type Failure struct {
	Kind     ErrorKind
	Message  string
	Provider Provider
	Metadata map[string]any
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return sentinelByKind[f.Kind]
}

func newFailure(kind ErrorKind, provider Provider, message string) *Failure {
	return &Failure{Kind: kind, Message: message, Provider: provider}
}

func newFailureWithMeta(kind ErrorKind, provider Provider, message string, meta map[string]any) *Failure {
	return &Failure{Kind: kind, Message: message, Provider: provider, Metadata: meta}
}

// Success is the envelope returned by a verification that authenticated,
// parsed, and (optionally) normalized the request.
type Success struct {
	// Provider is the scheme the request was verified against.
	Provider Provider
	// Body is the JSON-decoded payload when the body parses as JSON,
	// otherwise the raw bytes.
	Body any
	// Raw is always the exact bytes that were verified.
	Raw []byte
	// Metadata carries algorithm, timestamp, and provider-specific fields
	// (e.g. GitHub's event/delivery headers).
	Metadata map[string]any
	// CanonicalEventID is "{provider}_{raw-id}", stable for idempotency.
	CanonicalEventID string
	// Normalized holds the category record when Options.Normalize was set
	// (an UnknownEvent envelope for a provider the normalizer does not
	// recognize); nil when Options.Normalize was not set.
	Normalized any
}
