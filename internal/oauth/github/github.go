// Package github adapts GitHub's user endpoint to the gateway's normalized
// identity. GitHub returns the account id as a JSON number, so the adapter
// stringifies it; the API also insists on a product-identifying User-Agent.
package github

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dropDatabas3/gardenauth/internal/oauth"
)

const Name = "github"

// userAgent is required by the GitHub API on every request.
const userAgent = "Garden-Authenticator"

type Provider struct {
	cfg         *oauth2.Config
	userInfoURL string
	http        *http.Client
}

func New(cfg *oauth2.Config, userInfoURL string) *Provider {
	return &Provider{
		cfg:         cfg,
		userInfoURL: userInfoURL,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Provider) Name() string           { return Name }
func (p *Provider) Config() *oauth2.Config { return p.cfg }

func (p *Provider) Scopes() []string {
	return []string{"user:email"}
}

func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, &oauth.RequestError{Provider: Name, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, &oauth.RequestError{Provider: Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &oauth.StatusError{Provider: Name, Status: resp.StatusCode}
	}

	// The id must be a number; json.Number rejects string ids, which is
	// the same contract the upstream API documents.
	var body struct {
		ID *json.Number `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &oauth.SchemaError{Provider: Name, Field: "id", Err: err}
	}
	if body.ID == nil {
		return nil, &oauth.SchemaError{Provider: Name, Field: "id"}
	}

	return &oauth.UserInfo{ID: body.ID.String(), Provider: Name}, nil
}
