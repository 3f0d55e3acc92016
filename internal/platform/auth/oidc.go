package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OIDCProvider is the subset of an OpenID Connect discovery document the
// server needs to verify tokens.
type OIDCProvider struct {
	Issuer           string   `json:"issuer"`
	UserinfoEndpoint string   `json:"userinfo_endpoint"`
	JWKSURI          string   `json:"jwks_uri"`
	SigningAlgs      []string `json:"id_token_signing_alg_values_supported"`
}

// NewOIDCProvider fetches issuerURL/.well-known/openid-configuration.
func NewOIDCProvider(issuerURL string) (*OIDCProvider, error) {
	discoveryURL := strings.TrimRight(issuerURL, "/") + "/.well-known/openid-configuration"

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(discoveryURL)
	if err != nil {
		return nil, fmt.Errorf("fetch OIDC discovery document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OIDC discovery endpoint returned status %d", resp.StatusCode)
	}

	var p OIDCProvider
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode OIDC discovery document: %w", err)
	}
	if p.JWKSURI == "" {
		return nil, fmt.Errorf("OIDC discovery document missing jwks_uri")
	}
	return &p, nil
}

// discoveredKeys resolves the JWKS cache from the issuer on first use. A failed
// discovery is retried on the next token instead of being remembered.
type discoveredKeys struct {
	issuer string

	mu    sync.Mutex
	cache *JWKSCache
}

func (d *discoveredKeys) get() (*JWKSCache, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cache != nil {
		return d.cache, nil
	}
	p, err := NewOIDCProvider(d.issuer)
	if err != nil {
		return nil, err
	}
	d.cache = NewJWKSCache(p.JWKSURI, defaultJWKSCacheTTL)
	return d.cache, nil
}
