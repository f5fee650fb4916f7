package webhook

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// extractTimestamp derives a scheme's timestamp (C5, §4.4). The second
// return value is false when the scheme has no timestamp source, or the
// source yields nothing (header absent, or embedded key missing from the
// already-parsed signature header).
func extractTimestamp(headers Headers, scheme SignatureScheme, rawSignatureHeader string) (int64, bool, error) {
	switch scheme.TimestampSource.Kind {
	case TimestampSourceEmbedded:
		tokens := parseKVTokens(rawSignatureHeader, scheme.HeaderFormat.separator())
		key := scheme.TimestampSource.Key
		if key == "" {
			key = scheme.HeaderFormat.tsKey()
		}
		v, ok := tokens[key]
		if !ok {
			return 0, false, nil
		}
		ts, err := parseTimestampValue(v, UnitUnixSeconds)
		if err != nil {
			return 0, false, err
		}
		return ts, true, nil

	case TimestampSourceHeader:
		v := headers.Get(scheme.TimestampSource.Header)
		if v == "" {
			return 0, false, nil
		}
		ts, err := parseTimestampValue(v, scheme.TimestampSource.Unit)
		if err != nil {
			return 0, false, err
		}
		return ts, true, nil

	default:
		return 0, false, nil
	}
}

// parseTimestampValue parses a raw timestamp string per unit. Values at or
// above 10^12 are treated as milliseconds and floored to seconds regardless
// of the declared unit, to accommodate senders that mislabel units (§4.4).
func parseTimestampValue(v string, unit TimestampUnit) (int64, error) {
	v = strings.TrimSpace(v)
	if unit == UnitISO8601 {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return 0, fmt.Errorf("webhook: parsing iso8601 timestamp: %w", err)
		}
		return t.Unix(), nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("webhook: parsing unix timestamp: %w", err)
	}
	if n >= 1_000_000_000_000 || unit == UnitUnixMilliseconds {
		n /= 1000
	}
	return n, nil
}

// checkFreshness reports whether ts is within tolerance seconds of now.
func checkFreshness(ts int64, now time.Time, toleranceSeconds int64) bool {
	diff := now.Unix() - ts
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleranceSeconds
}

// requiresTimestamp reports whether scheme's payload form references a
// timestamp that must resolve for formatting to proceed. Schemes whose
// payload form tolerates an absent timestamp (raw, json-canonical,
// timestamped-optional) are not included here; their timestamp, if any, is
// still freshness-checked when present.
func requiresTimestamp(scheme SignatureScheme) bool {
	switch scheme.PayloadForm.Kind {
	case PayloadFormTimestamped, PayloadFormFalEd25519:
		return true
	case PayloadFormTemplated:
		return strings.Contains(scheme.PayloadForm.Template, "{timestamp}")
	default:
		return false
	}
}
