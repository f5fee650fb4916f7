package webhook

// verifyToken implements the token-equality algorithm: a constant-time
// comparison of the extracted header value against the configured secret
// (§4.6 "Token-equality").
func verifyToken(token, secret string) bool {
	return ctEqualString(token, secret)
}
