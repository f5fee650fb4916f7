package webhook

import (
	"context"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// JWKSCacheEntry is the cached, already-PEM-converted form of a JWKS
// document for one URL (§3 "JwksCacheEntry").
type JWKSCacheEntry struct {
	PEMs      []string
	ExpiresAt time.Time
}

// JWKSCache fetches, parses, and caches Ed25519 public keys from JWKS
// endpoints (C8, §4.7). A single in-flight fetch per URL is enforced with
// golang.org/x/sync/singleflight, so concurrent cache misses for the same
// URL coalesce into one request; cache hits take only a read lock.
type JWKSCache struct {
	mu      sync.RWMutex
	entries map[string]JWKSCacheEntry
	group   singleflight.Group
	ttl     time.Duration
	client  *http.Client
	log     *slog.Logger
	now     func() time.Time
}

// JWKSCacheOption configures a JWKSCache built with NewJWKSCache.
type JWKSCacheOption func(*JWKSCache)

// WithJWKSTTL overrides the default 24-hour cache lifetime.
func WithJWKSTTL(ttl time.Duration) JWKSCacheOption {
	return func(c *JWKSCache) { c.ttl = ttl }
}

// WithJWKSHTTPClient overrides the default HTTP client (5s timeout).
func WithJWKSHTTPClient(client *http.Client) JWKSCacheOption {
	return func(c *JWKSCache) { c.client = client }
}

// WithJWKSLogger attaches a logger for fetch/refresh diagnostics. The
// verification pipeline itself stays silent; this is opt-in, at the edge.
func WithJWKSLogger(log *slog.Logger) JWKSCacheOption {
	return func(c *JWKSCache) { c.log = log }
}

// NewJWKSCache builds an empty cache with a 24-hour TTL and a 5-second fetch
// deadline (§4.7, §5 "recommended 5s").
func NewJWKSCache(opts ...JWKSCacheOption) *JWKSCache {
	c := &JWKSCache{
		entries: make(map[string]JWKSCacheEntry),
		ttl:     24 * time.Hour,
		client:  &http.Client{Timeout: 5 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultJWKSCache backs every Ed25519/JWKS verification that doesn't
// construct its own cache. It is process-wide so the TTL and single-flight
// guarantees hold across independent Verify calls.
var defaultJWKSCache = NewJWKSCache()

// ResolveKeys returns the cached PEM-encoded Ed25519 public keys for url,
// refetching on a miss or expiry. Concurrent misses for the same url share
// one fetch.
func (c *JWKSCache) ResolveKeys(ctx context.Context, url string) ([]string, error) {
	if pems, ok := c.cached(url); ok {
		return pems, nil
	}

	v, err, _ := c.group.Do(url, func() (any, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (c *JWKSCache) cached(url string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[url]
	if !ok || !c.now().Before(entry.ExpiresAt) {
		return nil, false
	}
	return entry.PEMs, true
}

func (c *JWKSCache) fetch(ctx context.Context, url string) ([]string, error) {
	// Re-check under the singleflight key: a sibling call may have already
	// refreshed the entry while this goroutine waited to be scheduled.
	if pems, ok := c.cached(url); ok {
		return pems, nil
	}

	if c.log != nil {
		c.log.Debug("fetching jwks", slog.String("url", url))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("webhook: building jwks request: %w", err)
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("webhook: fetching jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("webhook: jwks endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("webhook: reading jwks response: %w", err)
	}

	pems, err := parseJWKS(body)
	if err != nil {
		return nil, err
	}
	if len(pems) == 0 {
		return nil, fmt.Errorf("webhook: jwks document contained no usable Ed25519 keys")
	}

	c.mu.Lock()
	c.entries[url] = JWKSCacheEntry{PEMs: pems, ExpiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return pems, nil
}

type jwkDocument struct {
	Keys []jwk `json:"keys"`
}

// jwk models only the RFC 8037 OKP (Ed25519) fields this package cares
// about; RSA or EC entries in the same document are skipped, not fatal.
type jwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
}

// parseJWKS converts a JWKS document's Ed25519 entries into SPKI-PEM.
// Malformed individual keys are skipped silently (§4.7); the caller treats
// a wholly empty result as KeyResolutionFailed.
func parseJWKS(body []byte) ([]string, error) {
	var doc jwkDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("webhook: parsing jwks document: %w", err)
	}

	var pems []string
	for _, k := range doc.Keys {
		if k.Kty != "OKP" || k.Crv != "Ed25519" || k.X == "" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(k.X)
		if err != nil || len(raw) != ed25519.PublicKeySize {
			continue
		}
		pemStr, err := ed25519PublicKeyToPEM(ed25519.PublicKey(raw))
		if err != nil {
			continue
		}
		pems = append(pems, pemStr)
	}
	return pems, nil
}

func ed25519PublicKeyToPEM(pub ed25519.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}
