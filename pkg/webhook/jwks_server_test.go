package webhook_test

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
)

type jwkTestEntry struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
}

type jwksTestDocument struct {
	Keys []jwkTestEntry `json:"keys"`
}

// jwksHandler serves a JWKS document containing pub (or zero keys when pub
// is nil, to exercise the "no usable key" failure path), counting every
// request it serves into *fetches.
func jwksHandler(fetches *int, pub ed25519.PublicKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*fetches++
		doc := jwksTestDocument{}
		if pub != nil {
			doc.Keys = append(doc.Keys, jwkTestEntry{
				Kty: "OKP",
				Crv: "Ed25519",
				X:   base64.RawURLEncoding.EncodeToString(pub),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// mixedJWKSHandler serves one well-formed Ed25519 key alongside an RSA
// entry and a malformed OKP entry, exercising the "skip individual bad
// keys" rule (§4.7) rather than failing the whole fetch.
func mixedJWKSHandler(pub ed25519.PublicKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := jwksTestDocument{
			Keys: []jwkTestEntry{
				{Kty: "RSA", Crv: "", X: ""},
				{Kty: "OKP", Crv: "Ed25519", X: "not-valid-base64!!"},
				{Kty: "OKP", Crv: "Ed25519", X: base64.RawURLEncoding.EncodeToString(pub)},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}
}
