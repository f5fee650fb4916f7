package webhook

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"hash"
)

// ctEqual is the single constant-time comparison primitive every signature
// and token check in this package routes through. It returns false
// immediately on length mismatch (a length check alone leaks no information
// about content) and otherwise compares the full length regardless of where
// the inputs first differ.
func ctEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

func ctEqualString(a, b string) bool {
	return ctEqual([]byte(a), []byte(b))
}

func hashFuncFor(alg Algorithm) (func() hash.Hash, error) {
	switch alg {
	case AlgorithmHMACSHA1:
		return sha1.New, nil
	case AlgorithmHMACSHA256:
		return sha256.New, nil
	case AlgorithmHMACSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("webhook: %q is not an HMAC algorithm", alg)
	}
}

// computeHMAC computes the raw (undecoded) MAC for msg under key, using the
// hash family named by alg. key is used exactly as given; no encoding
// transform is applied here.
func computeHMAC(alg Algorithm, key, msg []byte) ([]byte, error) {
	newHash, err := hashFuncFor(alg)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(newHash, key)
	mac.Write(msg)
	return mac.Sum(nil), nil
}

// verifyEd25519 reports whether sig is a valid Ed25519 signature of msg under
// the SPKI-PEM encoded public key pemKey. Any structural failure (bad PEM,
// wrong key type, wrong-sized key) returns false rather than an error.
func verifyEd25519(pemKey string, msg, sig []byte) bool {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return false
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return false
	}
	edPub, ok := pub.(ed25519.PublicKey)
	if !ok || len(edPub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(edPub, msg, sig)
}

// sha256Hex is the hex-encoded SHA-256 digest used by fal.ai's body-hash
// payload component.
func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// decode decodes s per the named encoding, validating as it goes.
func decode(enc Encoding, s string) ([]byte, error) {
	switch enc {
	case EncodingHex:
		return hex.DecodeString(s)
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("webhook: unsupported encoding %q", enc)
	}
}

// encode is the inverse of decode; unrecognized encodings return "".
func encode(enc Encoding, b []byte) string {
	switch enc {
	case EncodingHex:
		return hex.EncodeToString(b)
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(b)
	default:
		return ""
	}
}
