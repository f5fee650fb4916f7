package webhook

import "strings"

// extractSignature returns the raw signature/token string per scheme's
// header_format (C4, §4.4). The bool is false when the header is absent or
// does not contain a parseable value for the declared format.
func extractSignature(headers Headers, scheme SignatureScheme) (string, bool) {
	raw := headers.Get(scheme.SignatureHeader)
	if raw == "" {
		return "", false
	}
	switch scheme.HeaderFormat.Kind {
	case HeaderFormatPrefixed:
		// The full header value, prefix included, is what gets compared.
		return raw, true
	case HeaderFormatDelimited:
		return extractDelimitedSignature(raw, scheme.HeaderFormat)
	default:
		return strings.TrimSpace(raw), true
	}
}

func extractDelimitedSignature(raw string, format HeaderFormat) (string, bool) {
	if format.tokenStyle() == "versioned" {
		return extractVersionedSignature(raw, format)
	}
	tokens := parseKVTokens(raw, format.separator())
	if v, ok := tokens[format.sigKey()]; ok {
		return v, true
	}
	if v, ok := tokens["signature"]; ok {
		return v, true
	}
	if v, ok := tokens["v1"]; ok {
		return v, true
	}
	return "", false
}

// extractVersionedSignature handles the standard-webhooks multi-signature
// form: space-separated "v1,<sig> v2,<sig>" tokens. Each token is split on
// "," into a version and a signature; the first token whose version matches
// the scheme's configured SigKey wins.
func extractVersionedSignature(raw string, format HeaderFormat) (string, bool) {
	want := format.sigKey()
	for _, token := range strings.Fields(raw) {
		parts := strings.SplitN(token, ",", 2)
		if len(parts) != 2 {
			continue
		}
		if parts[0] == want {
			return parts[1], true
		}
	}
	return "", false
}

// parseKVTokens splits raw on sep into "k=v" tokens, trimming whitespace
// around both keys and values.
func parseKVTokens(raw, sep string) map[string]string {
	tokens := make(map[string]string)
	for _, part := range strings.Split(raw, sep) {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		tokens[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return tokens
}
