package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "providers: {}\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("default addr: got %q", c.Server.Addr)
	}
	if c.Cache.Kind != "memory" {
		t.Fatalf("default cache kind: got %q", c.Cache.Kind)
	}
	if c.Session.CookieName != "gdn_session" {
		t.Fatalf("default cookie name: got %q", c.Session.CookieName)
	}
	if c.FlowTTL() != time.Hour {
		t.Fatalf("default flow ttl: got %v", c.FlowTTL())
	}
	if c.RateLimit.Enabled {
		t.Fatalf("rate limiting must be opt-in")
	}
	if c.RateLimit.Max != 60 || c.RateLimitWindow() != time.Minute {
		t.Fatalf("default rate limit: max=%d window=%v", c.RateLimit.Max, c.RateLimitWindow())
	}
}

func TestLoad_Providers(t *testing.T) {
	path := writeConfig(t, `
providers:
  google:
    client_id: cid
    client_secret: sec
    auth_url: https://accounts.google.com/o/oauth2/v2/auth
    token_url: https://oauth2.googleapis.com/token
    redirect_url: https://gw.example.com/oauth/callback
    user_info_url: https://openidconnect.googleapis.com/v1/userinfo
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	p, ok := c.Providers["google"]
	if !ok {
		t.Fatalf("google provider missing")
	}
	if p.ClientID != "cid" || p.ClientSecret != "sec" {
		t.Fatalf("credentials not loaded: %+v", p)
	}
}

func TestLoad_EnvOverridesProviderCredentials(t *testing.T) {
	path := writeConfig(t, `
providers:
  github:
    client_id: from-yaml
    client_secret: from-yaml
    auth_url: https://github.com/login/oauth/authorize
    token_url: https://github.com/login/oauth/access_token
    redirect_url: https://gw.example.com/oauth/callback
    user_info_url: https://api.github.com/user
`)

	t.Setenv("GITHUB_CLIENT_ID", "from-env")
	t.Setenv("GITHUB_CLIENT_SECRET", "also-from-env")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	p := c.Providers["github"]
	if p.ClientID != "from-env" || p.ClientSecret != "also-from-env" {
		t.Fatalf("env override not applied: %+v", p)
	}
}

func TestLoad_RejectsUnknownCacheKind(t *testing.T) {
	path := writeConfig(t, "cache:\n  kind: memcached\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown cache kind")
	}
}

func TestLoad_RedisRequiresAddr(t *testing.T) {
	path := writeConfig(t, "cache:\n  kind: redis\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for redis cache without addr")
	}
}
