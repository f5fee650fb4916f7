package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Verify authenticates req against provider's registered scheme, using
// secret as the shared secret, static key, or token (C9, §4.8). provider must
// be a real provider tag; ProviderUnknown (the detector's "nothing matched"
// sentinel, not a registered scheme) is rejected with PlatformNotSupported
// rather than silently falling back to the registry's permissive default,
// which exists for genuinely unregistered/custom tags, not for "I don't
// know who sent this."
func Verify(req VerificationRequest, provider Provider, secret string, opts Options) (*Success, error) {
	if provider == ProviderUnknown {
		return nil, newFailure(ErrorKindPlatformNotSupported, provider, "no provider identified; cannot select a signature scheme")
	}
	return verifyCore(req, LookupScheme(provider), secret, opts, provider)
}

// VerifyWithScheme authenticates req against a caller-supplied scheme
// instead of a registered provider. Results are tagged ProviderCustom.
func VerifyWithScheme(req VerificationRequest, scheme SignatureScheme, secret string, opts Options) (*Success, error) {
	return verifyCore(req, scheme, secret, opts, ProviderCustom)
}

// attemptLog is the shape of one VerifyAny failure recorded in metadata.
type attemptLog struct {
	Provider  string `json:"provider"`
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// VerifyAny tries to authenticate req against whichever provider in
// secrets actually sent it (C9, §4.8). It first runs the provider detector
// as a fast path; failing that, or if the detected provider has no
// configured secret, it tries every entry in secrets and returns the first
// success. On total failure it returns a VerificationError whose metadata
// carries the per-provider attempts.
func VerifyAny(req VerificationRequest, secrets map[Provider]string, opts Options) (*Success, error) {
	if detected := DetectProvider(req); detected != ProviderUnknown {
		if secret, ok := secrets[detected]; ok {
			return Verify(req, detected, secret, opts)
		}
	}

	var attempts []attemptLog
	for provider, secret := range secrets {
		result, err := Verify(req, provider, secret, opts)
		if err == nil {
			return result, nil
		}
		attempts = append(attempts, attemptLog{
			Provider:  string(provider),
			ErrorKind: string(failureKind(err)),
			Message:   err.Error(),
		})
	}

	return nil, newFailureWithMeta(
		ErrorKindVerificationError,
		ProviderUnknown,
		"no configured provider verified this request",
		map[string]any{"attempts": attempts},
	)
}

func failureKind(err error) ErrorKind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return ErrorKindVerificationError
}

// verifyCore runs the full pipeline (§4.8 steps 1-10), dispatching on the
// scheme's algorithm, and converts any unexpected panic (malformed input
// tripping a library invariant) into ErrorKindVerificationError rather than
// letting it cross the API boundary (§4.1, §7).
func verifyCore(req VerificationRequest, scheme SignatureScheme, secret string, opts Options, provider Provider) (result *Success, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = newFailure(ErrorKindVerificationError, provider, fmt.Sprintf("webhook: internal error: %v", r))
		}
	}()

	switch scheme.Algorithm {
	case AlgorithmTokenEquality:
		return verifyTokenScheme(req, scheme, secret, opts, provider)
	case AlgorithmEd25519:
		return verifyEd25519Scheme(req, scheme, secret, opts, provider)
	default:
		return verifyHMACScheme(req, scheme, secret, opts, provider)
	}
}

func verifyHMACScheme(req VerificationRequest, scheme SignatureScheme, secret string, opts Options, provider Provider) (*Success, error) {
	rawHeader := req.Headers.Get(scheme.SignatureHeader)
	sig, ok := extractSignature(req.Headers, scheme)
	if !ok {
		return nil, newFailure(ErrorKindMissingSignature, provider, fmt.Sprintf("missing or unparsable %s header", scheme.SignatureHeader))
	}

	ts, hasTS, err := extractAndCheckTimestamp(req.Headers, scheme, rawHeader, opts, provider)
	if err != nil {
		return nil, err
	}

	candidates, err := payloadCandidates(req, scheme, ts, hasTS, provider)
	if err != nil {
		return nil, err
	}

	verified := false
	for _, candidate := range candidates {
		ok, verr := verifyHMAC(scheme, secret, candidate, sig, rawHeader)
		if verr != nil {
			return nil, newFailure(ErrorKindVerificationError, provider, verr.Error())
		}
		if ok {
			verified = true
			break
		}
	}
	if !verified {
		return nil, newFailure(ErrorKindInvalidSignature, provider, "signature does not match")
	}

	return finishSuccess(req, provider, scheme, ts, hasTS, opts)
}

func verifyEd25519Scheme(req VerificationRequest, scheme SignatureScheme, secret string, opts Options, provider Provider) (*Success, error) {
	rawHeader := req.Headers.Get(scheme.SignatureHeader)
	sigStr, ok := extractSignature(req.Headers, scheme)
	if !ok {
		return nil, newFailure(ErrorKindMissingSignature, provider, fmt.Sprintf("missing %s header", scheme.SignatureHeader))
	}
	sig, err := decode(scheme.SignatureEncoding, sigStr)
	if err != nil {
		return nil, newFailure(ErrorKindInvalidSignature, provider, "signature is not validly encoded: "+err.Error())
	}

	ts, hasTS, err := extractAndCheckTimestamp(req.Headers, scheme, rawHeader, opts, provider)
	if err != nil {
		return nil, err
	}

	candidates, err := payloadCandidates(req, scheme, ts, hasTS, provider)
	if err != nil {
		return nil, err
	}

	pems, err := resolveEd25519Keys(scheme, opts)
	if err != nil {
		return nil, newFailure(ErrorKindKeyResolutionFailed, provider, err.Error())
	}

	verified := false
	for _, candidate := range candidates {
		if verifyEd25519Candidates(pems, candidate, sig) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, newFailure(ErrorKindInvalidSignature, provider, "signature does not match any known key")
	}

	return finishSuccess(req, provider, scheme, ts, hasTS, opts)
}

func verifyTokenScheme(req VerificationRequest, scheme SignatureScheme, secret string, opts Options, provider Provider) (*Success, error) {
	token := req.Headers.Get(scheme.SignatureHeader)
	if token == "" {
		return nil, newFailure(ErrorKindMissingToken, provider, fmt.Sprintf("missing %s header", scheme.SignatureHeader))
	}
	if !verifyToken(token, secret) {
		return nil, newFailure(ErrorKindInvalidToken, provider, "token does not match")
	}
	return finishSuccess(req, provider, scheme, 0, false, opts)
}

// extractAndCheckTimestamp resolves a scheme's timestamp and, when one
// resolves, enforces freshness; when none resolves but the scheme's payload
// form requires one, it reports TimestampMalformed (§4.4).
func extractAndCheckTimestamp(headers Headers, scheme SignatureScheme, rawSignatureHeader string, opts Options, provider Provider) (int64, bool, error) {
	ts, hasTS, err := extractTimestamp(headers, scheme, rawSignatureHeader)
	if err != nil {
		return 0, false, newFailure(ErrorKindTimestampMalformed, provider, "timestamp could not be parsed: "+err.Error())
	}
	if hasTS {
		if !checkFreshness(ts, opts.now(), opts.tolerance(scheme)) {
			return 0, false, newFailure(ErrorKindTimestampExpired, provider, "timestamp outside the freshness window")
		}
		return ts, true, nil
	}
	if requiresTimestamp(scheme) {
		return 0, false, newFailure(ErrorKindTimestampMalformed, provider, "scheme requires a timestamp but none was found")
	}
	return 0, false, nil
}

// finishSuccess runs steps 6-10 of the orchestrator: best-effort JSON body
// parsing, metadata population, canonical event id, and optional
// normalization.
func finishSuccess(req VerificationRequest, provider Provider, scheme SignatureScheme, ts int64, hasTS bool, opts Options) (*Success, error) {
	body, parsed := parseJSONBody(req.Body)

	metadata := map[string]any{"algorithm": string(scheme.Algorithm)}
	if hasTS {
		metadata["timestamp"] = strconv.FormatInt(ts, 10)
	}
	if scheme.IDHeader != "" {
		if id := req.Headers.Get(scheme.IDHeader); id != "" {
			metadata["id"] = id
		}
	}
	populateProviderMetadata(provider, req, metadata)

	metadata[internalRawBodyKey] = req.Body
	eventID := CanonicalEventID(provider, body, metadata)
	delete(metadata, internalRawBodyKey)

	success := &Success{
		Provider:         provider,
		Body:             body,
		Raw:              req.Body,
		Metadata:         metadata,
		CanonicalEventID: eventID,
	}
	if !parsed {
		success.Body = req.Body
	}

	if opts.Normalize {
		success.Normalized = Normalize(provider, success.Body, opts)
	}

	return success, nil
}

func parseJSONBody(raw []byte) (any, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw, false
	}
	return v, true
}

// populateProviderMetadata adds provider-specific fields called out by
// §3's VerificationSuccess description (e.g. GitHub's event/delivery).
func populateProviderMetadata(provider Provider, req VerificationRequest, metadata map[string]any) {
	if provider == ProviderGitHub {
		if v := req.Headers.Get("x-github-delivery"); v != "" {
			metadata["delivery"] = v
		}
		if v := req.Headers.Get("x-github-event"); v != "" {
			metadata["event"] = v
		}
	}
}
