// Package twitter adapts Twitter's v2 user endpoint to the gateway's
// normalized identity. The username lives inside a `data` envelope.
package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dropDatabas3/gardenauth/internal/oauth"
)

const Name = "twitter"

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
	return []string{"users.read", "tweet.read"}
}

func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, &oauth.RequestError{Provider: Name, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, &oauth.RequestError{Provider: Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &oauth.StatusError{Provider: Name, Status: resp.StatusCode}
	}

	var body struct {
		Data struct {
			Username *string `json:"username"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &oauth.SchemaError{Provider: Name, Field: "data.username", Err: err}
	}
	if body.Data.Username == nil || *body.Data.Username == "" {
		return nil, &oauth.SchemaError{Provider: Name, Field: "data.username"}
	}

	return &oauth.UserInfo{ID: *body.Data.Username, Provider: Name}, nil
}
