package webhook

import (
	"fmt"
	"strconv"
	"strings"
)

// internalRawBodyKey is a private metadata entry the orchestrator sets
// before calling CanonicalEventID, read only by the Doppler fallback's
// sha256_hex(timestamp + ":" + raw-body) synthesis. It never appears in a
// Success.Metadata returned to callers.
const internalRawBodyKey = "_raw_body"

// CanonicalEventID derives the stable "{provider}_{raw-id}" identifier used
// for downstream idempotency (C11, §4.10). When nothing in the per-provider
// priority order resolves, it emits
// "{provider}_generated-missing-{provider}" so callers can recognize a
// non-idempotent result.
func CanonicalEventID(provider Provider, body any, metadata map[string]any) string {
	id := resolveRawID(provider, body, metadata)
	if id == "" {
		return string(provider) + "_generated-missing-" + string(provider)
	}
	return string(provider) + "_" + id
}

func resolveRawID(provider Provider, body any, metadata map[string]any) string {
	switch provider {
	case ProviderStripe:
		return firstNonEmpty(pathString(body, "request.idempotency_key"), pathString(body, "id"), metaString(metadata, "id"), pathString(body, "data.id"))

	case ProviderGitHub:
		return firstNonEmpty(metaString(metadata, "delivery"), metaString(metadata, "id"), pathString(body, "id"))

	case ProviderClerk, ProviderShopify:
		return firstNonEmpty(metaString(metadata, "id"), pathString(body, "id"))

	case ProviderPolar:
		return firstNonEmpty(pathString(body, "data.id"), pathString(body, "id"), metaString(metadata, "id"))

	case ProviderDodoPayments:
		return firstNonEmpty(
			pathString(body, "data.payment_id"),
			pathString(body, "data.subscription_id"),
			pathString(body, "data.id"),
			metaString(metadata, "id"),
		)

	case ProviderGitLab:
		return firstNonEmpty(pathString(body, "object_attributes.id"), pathString(body, "project.id"), metaString(metadata, "id"))

	case ProviderPaddle:
		return firstNonEmpty(pathString(body, "event_id"), pathString(body, "data.id"), metaString(metadata, "id"))

	case ProviderRazorpay:
		return firstNonEmpty(
			pathString(body, "payload.payment.entity.id"),
			pathString(body, "payload.order.entity.id"),
			pathString(body, "payload.subscription.entity.id"),
			pathString(body, "id"),
			metaString(metadata, "id"),
		)

	case ProviderLemonSqueezy:
		eventName := pathString(body, "meta.event_name")
		dataID := pathString(body, "data.id")
		if eventName != "" && dataID != "" {
			return eventName + dataID
		}
		return firstNonEmpty(dataID, pathString(body, "id"), metaString(metadata, "id"))

	case ProviderWorkOS, ProviderVercel, ProviderReplicate, ProviderSentry:
		return firstNonEmpty(pathString(body, "id"), metaString(metadata, "id"))

	case ProviderFal:
		return firstNonEmpty(pathString(body, "request_id"), metaString(metadata, "id"))

	case ProviderGrafana:
		return firstNonEmpty(pathString(body, "groupKey"), pathString(body, "alerts[0].fingerprint"), metaString(metadata, "id"))

	case ProviderDoppler:
		if id := firstNonEmpty(pathString(body, "event.id"), metaString(metadata, "id")); id != "" {
			return id
		}
		raw, _ := metadata[internalRawBodyKey].([]byte)
		return sha256Hex([]byte(metaString(metadata, "timestamp") + ":" + string(raw)))

	case ProviderSanity:
		return firstNonEmpty(pathString(body, "transactionId"), pathString(body, "_id"), metaString(metadata, "id"))

	default:
		return firstNonEmpty(
			pathString(body, "idempotency_key"),
			pathString(body, "event_id"),
			pathString(body, "webhook_id"),
			pathString(body, "request_id"),
			pathString(body, "id"),
			pathString(body, "data.id"),
			metaString(metadata, "id"),
			metaString(metadata, "delivery"),
			metaString(metadata, "requestId"),
		)
	}
}

// pathString navigates a decoded JSON value along a dot-separated path
// (optionally indexing arrays with "[n]") and stringifies whatever scalar it
// finds there. It returns "" for anything absent, nil, or non-scalar.
func pathString(body any, path string) string {
	v, ok := navigate(body, path)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func navigate(v any, path string) (any, bool) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		name, idx, hasIdx := parseSegment(seg)
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := m[name]
		if !ok {
			return nil, false
		}
		if hasIdx {
			arr, ok := next.([]any)
			if !ok || idx >= len(arr) {
				return nil, false
			}
			next = arr[idx]
		}
		cur = next
	}
	return cur, true
}

func parseSegment(seg string) (name string, idx int, hasIdx bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 || !strings.HasSuffix(seg, "]") {
		return seg, 0, false
	}
	n, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil {
		return seg, 0, false
	}
	return seg[:open], n, true
}

func metaString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	s, _ := metadata[key].(string)
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
