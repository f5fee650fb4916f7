package webhook_test

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"testing"

	canonicaljson "github.com/gibson042/canonicaljson-go"
)

// These helpers reconstruct exactly what each provider's real SDK computes,
// so tests exercise the verifier against independently-derived signatures
// rather than round-tripping through the package's own formatter.

func hmacHex(newHash func() hash.Hash, key, msg []byte) string {
	mac := hmac.New(newHash, key)
	mac.Write(msg)
	return hex.EncodeToString(mac.Sum(nil))
}

func hmacBase64(newHash func() hash.Hash, key, msg []byte) string {
	mac := hmac.New(newHash, key)
	mac.Write(msg)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func signStripeHeader(secret string, ts int64, body []byte) string {
	msg := fmt.Sprintf("%d.%s", ts, body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hmacHex(sha256.New, []byte(secret), []byte(msg)))
}

func signGitHubHeader(secret string, body []byte) string {
	return "sha256=" + hmacHex(sha256.New, []byte(secret), body)
}

// signStandardWebhooks implements the svix/standard-webhooks convention:
// secret is "whsec_<base64 key>"; signed content is "<id>.<ts>.<body>".
func signStandardWebhooks(whsecSecret, id string, ts int64, body []byte) string {
	key := decodeWhsec(whsecSecret)
	msg := fmt.Sprintf("%s.%d.%s", id, ts, body)
	return "v1," + hmacBase64(sha256.New, key, []byte(msg))
}

func decodeWhsec(secret string) []byte {
	const prefix = "whsec_"
	s := secret
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		s = s[len(prefix):]
	}
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return key
}

func signShopifyHeader(secret string, body []byte) string {
	return hmacBase64(sha256.New, []byte(secret), body)
}

func signPaddleHeader(secret string, ts int64, body []byte) string {
	msg := fmt.Sprintf("%d:%s", ts, body)
	return fmt.Sprintf("ts=%d;h1=%s", ts, hmacHex(sha256.New, []byte(secret), []byte(msg)))
}

func signWorkOSHeader(secret string, ts int64, body []byte) string {
	msg := fmt.Sprintf("%d.%s", ts, body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hmacHex(sha256.New, []byte(secret), []byte(msg)))
}

func signSanityHeader(secret string, ts int64, body []byte) string {
	msg := fmt.Sprintf("%d.%s", ts, body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hmacHex(sha256.New, []byte(secret), []byte(msg)))
}

func signVercelHeader(secret string, body []byte) string {
	return hmacHex(sha1.New, []byte(secret), body)
}

func signRazorpayHeader(secret string, body []byte) string {
	return hmacHex(sha256.New, []byte(secret), body)
}

func signDopplerHeader(secret string, body []byte) string {
	return "sha256=" + hmacHex(sha256.New, []byte(secret), body)
}

func signGrafanaHeader(secret string, ts int64, hasTS bool, body []byte) string {
	msg := body
	if hasTS {
		msg = []byte(fmt.Sprintf("%d.%s", ts, body))
	}
	return hmacHex(sha256.New, []byte(secret), msg)
}

func signHMACSHA512Hex(secret string, body []byte) string {
	return hmacHex(sha512.New, []byte(secret), body)
}

func sha256HexOf(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func signFalPayload(priv ed25519.PrivateKey, reqID, userID string, ts int64, body []byte) string {
	msg := fmt.Sprintf("%s\n%s\n%d\n%s", reqID, userID, ts, sha256HexOf(body))
	sig := ed25519.Sign(priv, []byte(msg))
	return hex.EncodeToString(sig)
}

func hmacHex_sha256(secret string, msg []byte) string {
	return hmacHex(sha256.New, []byte(secret), msg)
}

// canonicalizeForTest re-serializes raw the same way Sentry's signer
// does: parse then re-marshal with no whitespace, keys in canonical order.
func canonicalizeForTest(t *testing.T, raw []byte) []byte {
	t.Helper()
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("canonicalizeForTest: %v", err)
	}
	out, err := canonicaljson.Marshal(v)
	if err != nil {
		t.Fatalf("canonicalizeForTest: %v", err)
	}
	return out
}
