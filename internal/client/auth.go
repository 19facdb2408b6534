package client

import (
	"context"
	"fmt"
	"net/http"

	"mcpreg/internal/config"
)

// TokenSource records how a token was obtained
type TokenSource string

const (
	// TokenSourceConfigured means the token came from config or environment
	TokenSourceConfigured TokenSource = "configured"
	// TokenSourceAnonymous means the token came from the /auth/none exchange
	TokenSourceAnonymous TokenSource = "anonymous"
)

// Token is a bearer credential for one client invocation. It is never
// persisted and never logged in full.
type Token struct {
	Value  string
	Source TokenSource
}

// IsZero reports whether no token is available
func (t Token) IsZero() bool {
	return t.Value == ""
}

// tokenResponse is the /auth/none exchange response
type tokenResponse struct {
	RegistryToken string `json:"registry_token"`
	ExpiresAt     string `json:"expires_at"`
}

// Authenticate resolves a bearer token for this invocation:
// a configured token wins; otherwise the anonymous exchange is used when
// auto-auth is enabled; otherwise requests proceed unauthenticated and
// endpoints that need auth will fail.
func (c *Client) Authenticate(ctx context.Context, cfg config.RegistryConfig) (Token, error) {
	if cfg.AuthToken != "" {
		if c.verbose {
			fmt.Printf("🔑 Using configured token: %s\n", tokenPreview(cfg.AuthToken))
		}
		return Token{Value: cfg.AuthToken, Source: TokenSourceConfigured}, nil
	}

	if !cfg.AutoAuth {
		if c.verbose {
			fmt.Printf("⚠️  No token configured and auto-auth disabled - proceeding unauthenticated\n")
		}
		return Token{}, nil
	}

	return c.AnonymousToken(ctx)
}

// AnonymousToken obtains a development token from the /auth/none endpoint.
// The exchange is idempotent and side-effect-free on the registry.
func (c *Client) AnonymousToken(ctx context.Context) (Token, error) {
	status, body, err := c.request(ctx, "POST", apiPrefix+"/auth/none", struct{}{}, "")
	if err != nil {
		return Token{}, err
	}
	if status != http.StatusOK {
		return Token{}, newStatusError(ErrAuthFailed, status,
			fmt.Sprintf("anonymous token exchange failed: %s", errorMessage(body)))
	}

	var resp tokenResponse
	if err := decode(body, &resp); err != nil {
		return Token{}, err
	}
	if resp.RegistryToken == "" {
		return Token{}, NewRegistryError(ErrMalformedResponse, "exchange response missing registry_token")
	}

	if c.verbose {
		fmt.Printf("🔑 Got anonymous token %s (expires: %s)\n",
			tokenPreview(resp.RegistryToken), resp.ExpiresAt)
	}

	return Token{Value: resp.RegistryToken, Source: TokenSourceAnonymous}, nil
}
