package webhook

import "strings"

// resolveHMACKey turns the caller's secret string into raw key bytes
// (§4.6 step 1). whsec_-style secrets (SecretEncodingBase64) have any
// prefix up to and including the first underscore stripped, then are
// base64-decoded; everything else is used as UTF-8 bytes verbatim.
func resolveHMACKey(scheme SignatureScheme, secret string) ([]byte, error) {
	if scheme.SecretEncoding != SecretEncodingBase64 {
		return []byte(secret), nil
	}
	s := secret
	if idx := strings.IndexByte(s, '_'); idx >= 0 {
		s = s[idx+1:]
	}
	return decode(EncodingBase64, s)
}

// verifyHMAC computes the MAC over payload and compares it, in constant
// time, to the signature extracted from the request (C7 HMAC family, §4.6).
func verifyHMAC(scheme SignatureScheme, secret string, payload []byte, extractedSig, rawHeader string) (bool, error) {
	key, err := resolveHMACKey(scheme, secret)
	if err != nil {
		return false, err
	}

	mac, err := computeHMAC(scheme.Algorithm, key, payload)
	if err != nil {
		return false, err
	}

	if scheme.HeaderFormat.Kind == HeaderFormatPrefixed {
		expected := scheme.HeaderFormat.Prefix + encode(EncodingHex, mac)
		return ctEqualString(expected, rawHeader), nil
	}

	if scheme.SignatureEncoding == EncodingBase64 {
		return ctEqualString(encode(EncodingBase64, mac), extractedSig), nil
	}

	return ctEqualString(encode(EncodingHex, mac), extractedSig), nil
}
