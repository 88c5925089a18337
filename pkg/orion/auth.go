package orion

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AuthConfig enables OAuth2 client-credentials authentication for Orion
// deployments behind an identity provider. Tokens are fetched from
// TokenURL and refreshed automatically; every MCP request carries the
// bearer token.
type AuthConfig struct {
	// TokenURL is the OAuth2 token endpoint.
	TokenURL string

	// ClientID and ClientSecret identify this client to the identity
	// provider.
	ClientID     string
	ClientSecret string

	// Scopes optionally restricts the requested token scopes.
	Scopes []string
}

// Validate checks the auth configuration.
func (a *AuthConfig) Validate() error {
	if a.TokenURL == "" {
		return fmt.Errorf("token URL is required")
	}
	if a.ClientID == "" {
		return fmt.Errorf("client ID is required")
	}
	if a.ClientSecret == "" {
		return fmt.Errorf("client secret is required")
	}
	return nil
}

// wrap returns an HTTP client that injects bearer tokens into every
// request. The base client performs both the token fetches and the
// underlying MCP requests.
func (a *AuthConfig) wrap(base *http.Client) *http.Client {
	cc := &clientcredentials.Config{
		TokenURL:     a.TokenURL,
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		Scopes:       a.Scopes,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	return cc.Client(ctx)
}
