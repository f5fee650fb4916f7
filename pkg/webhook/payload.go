package webhook

import (
	"encoding/json"
	"strconv"
	"strings"

	canonicaljson "github.com/gibson042/canonicaljson-go"
)

// payloadCandidates reconstructs the exact byte sequence(s) the sender may
// have signed, per scheme.PayloadForm (C6, §4.5). Every form yields exactly
// one candidate except Sentry's json-canonical-with-MultiCandidate, which
// yields several; the caller accepts if any candidate verifies.
func payloadCandidates(req VerificationRequest, scheme SignatureScheme, ts int64, hasTS bool, provider Provider) ([][]byte, error) {
	switch scheme.PayloadForm.Kind {
	case PayloadFormRaw:
		return [][]byte{req.Body}, nil

	case PayloadFormTimestamped:
		if !hasTS {
			return nil, newFailure(ErrorKindTimestampMalformed, provider, "timestamped payload form requires a timestamp")
		}
		return [][]byte{timestampedPayload(ts, scheme.PayloadForm.separator(), req.Body)}, nil

	case PayloadFormTimestampOptional:
		if !hasTS {
			return [][]byte{req.Body}, nil
		}
		return [][]byte{timestampedPayload(ts, scheme.PayloadForm.separator(), req.Body)}, nil

	case PayloadFormJSONCanonical:
		return sentryCandidates(req.Body, scheme.PayloadForm.MultiCandidate), nil

	case PayloadFormTemplated:
		body, err := renderTemplate(scheme.PayloadForm.Template, req, scheme, ts, hasTS, provider)
		if err != nil {
			return nil, err
		}
		return [][]byte{body}, nil

	case PayloadFormFalEd25519:
		if !hasTS {
			return nil, newFailure(ErrorKindTimestampMalformed, provider, "fal.ai payload form requires a timestamp")
		}
		reqID := req.Headers.Get(scheme.PayloadForm.RequestIDHeader)
		userID := req.Headers.Get(scheme.PayloadForm.UserIDHeader)
		payload := reqID + "\n" + userID + "\n" + strconv.FormatInt(ts, 10) + "\n" + sha256Hex(req.Body)
		return [][]byte{[]byte(payload)}, nil

	default:
		return [][]byte{req.Body}, nil
	}
}

func timestampedPayload(ts int64, sep string, body []byte) []byte {
	return []byte(strconv.FormatInt(ts, 10) + sep + string(body))
}

// renderTemplate substitutes {id}, {timestamp}, {body} in tmpl. A
// referenced {id} or {timestamp} that cannot be resolved is a
// PayloadMalformed failure; it is never silently replaced with "".
func renderTemplate(tmpl string, req VerificationRequest, scheme SignatureScheme, ts int64, hasTS bool, provider Provider) ([]byte, error) {
	out := tmpl

	if strings.Contains(out, "{id}") {
		id := req.Headers.Get(scheme.IDHeader)
		if id == "" {
			return nil, newFailure(ErrorKindPayloadMalformed, provider, "template references {id} but "+scheme.IDHeader+" header is missing")
		}
		out = strings.ReplaceAll(out, "{id}", id)
	}

	if strings.Contains(out, "{timestamp}") {
		if !hasTS {
			return nil, newFailure(ErrorKindPayloadMalformed, provider, "template references {timestamp} but none resolved")
		}
		out = strings.ReplaceAll(out, "{timestamp}", strconv.FormatInt(ts, 10))
	}

	out = strings.ReplaceAll(out, "{body}", string(req.Body))
	return []byte(out), nil
}

// sentryCandidates implements Sentry's scheme-specific multi-candidate
// policy (§4.5): canonical JSON, falling back to raw on parse failure, plus
// (when multi is set) the raw body itself and the canonicalized
// body.data.issue_alert sub-object when present.
func sentryCandidates(body []byte, multi bool) [][]byte {
	var candidates [][]byte

	if canonical, err := canonicalizeJSON(body); err == nil {
		candidates = append(candidates, canonical)
	} else {
		candidates = append(candidates, body)
	}

	if !multi {
		return candidates
	}

	candidates = append(candidates, body)

	if issueAlert, ok := extractIssueAlert(body); ok {
		if canonical, err := canonicalizeJSON(issueAlert); err == nil {
			candidates = append(candidates, canonical)
		}
	}

	return candidates
}

func canonicalizeJSON(body []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return canonicaljson.Marshal(v)
}

func extractIssueAlert(body []byte) ([]byte, bool) {
	var envelope struct {
		Data struct {
			IssueAlert json.RawMessage `json:"issue_alert"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}
	if len(envelope.Data.IssueAlert) == 0 {
		return nil, false
	}
	return envelope.Data.IssueAlert, true
}
