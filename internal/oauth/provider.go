// Package oauth implements the core of the login gateway: the provider
// abstraction, the registry of known providers, and the authorization flow
// engine (initiate + callback).
//
// Providers are thin adapters over golang.org/x/oauth2 clients. Each adapter
// owns its fixed scope list and the logic to turn an access token into a
// normalized identity; everything else (PKCE, CSRF state, token exchange) is
// shared and lives in the flow service.
package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// UserInfo is the normalized identity returned after a completed flow.
// ID is whatever the provider considers a stable identifier: an email, a
// username, or a numeric account id stringified.
type UserInfo struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
}

// Provider is the capability set every identity provider adapter implements.
type Provider interface {
	// Name returns the registry name of the provider.
	Name() string

	// Config returns the configured OAuth2 client for this provider.
	Config() *oauth2.Config

	// Scopes returns the fixed, ordered scope list requested during
	// authorization. Used verbatim in the authorize URL.
	Scopes() []string

	// UserInfo performs exactly one authenticated GET against the
	// provider's user-info endpoint and extracts the identity.
	// Fails with *RequestError, *StatusError or *SchemaError.
	UserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}

// Factory creates a provider adapter from a configured OAuth2 client and the
// provider's user-info endpoint URL.
type Factory func(cfg *oauth2.Config, userInfoURL string) Provider
