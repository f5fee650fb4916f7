package webhook

import "fmt"

// resolveEd25519Keys returns the candidate PEM public keys for scheme's
// keying configuration (§4.6 step 2, §4.7). For KeyingJWKS, opts.JWKSURL
// overrides the scheme's own URL when set, which schemes with
// account-specific endpoints (fal.ai) require.
func resolveEd25519Keys(scheme SignatureScheme, opts Options) ([]string, error) {
	switch scheme.Keying.Kind {
	case KeyingStaticPublicKey:
		if scheme.Keying.PEM == "" {
			return nil, fmt.Errorf("webhook: scheme declares static-public-key keying with no PEM configured")
		}
		return []string{scheme.Keying.PEM}, nil

	case KeyingJWKS:
		url := scheme.Keying.URL
		if opts.JWKSURL != "" {
			url = opts.JWKSURL
		}
		if url == "" {
			return nil, fmt.Errorf("webhook: scheme requires a JWKS URL; set Options.JWKSURL")
		}
		return opts.jwksCache().ResolveKeys(opts.ctx(), url)

	default:
		return nil, fmt.Errorf("webhook: ed25519 scheme must use static-public-key or jwks keying")
	}
}

// verifyEd25519Candidates reports whether sig verifies against any of the
// given SPKI-PEM public keys, supporting key rotation: a failure against one
// candidate never aborts the check of the rest (§4.6 step 2).
func verifyEd25519Candidates(pemKeys []string, payload, sig []byte) bool {
	for _, key := range pemKeys {
		if verifyEd25519(key, payload, sig) {
			return true
		}
	}
	return false
}
