package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dropDatabas3/gardenauth/internal/flow"
	"github.com/dropDatabas3/gardenauth/internal/oauth"
	"github.com/dropDatabas3/gardenauth/internal/oauth/google"
	"github.com/dropDatabas3/gardenauth/internal/rate"
)

type testEnv struct {
	gateway   *httptest.Server
	client    *http.Client
	tokenHits *atomic.Int64
}

// newTestEnv stands up the full stack against fake provider endpoints:
// a token endpoint that counts exchanges and a user-info endpoint that
// returns a fixed identity.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	var tokenHits atomic.Int64
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at-e2e","token_type":"bearer"}`)
	}))
	t.Cleanup(tokenSrv.Close)

	infoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"email":"alice@example.com"}`)
	}))
	t.Cleanup(infoSrv.Close)

	cfg := &oauth2.Config{
		ClientID:     "cid",
		ClientSecret: "sec",
		RedirectURL:  "http://gateway.local/oauth/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/authorize",
			TokenURL: tokenSrv.URL,
		},
	}
	p := google.New(cfg, infoSrv.URL)
	cfg.Scopes = p.Scopes()

	svc := oauth.NewService(
		map[string]oauth.Provider{google.Name: p},
		flow.NewMemory(time.Minute),
	)

	gw := httptest.NewServer(NewRouter(NewHandler(svc), RouterConfig{
		Session: SessionConfig{CookieName: "gdn_session"},
	}))
	t.Cleanup(gw.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		gateway: gw,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		tokenHits: &tokenHits,
	}
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.gateway.URL + path)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func TestFlow_EndToEnd(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/oauth/authorize?provider=google")
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "accounts.example.com", loc.Host)

	q := loc.Query()
	require.NotEmpty(t, q.Get("state"))
	require.NotEmpty(t, q.Get("code_challenge"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))
	require.Equal(t, "email", q.Get("scope"))

	// the provider redirects back with the code and the echoed state
	resp = env.get(t, "/oauth/callback?code=e2e-code&state="+url.QueryEscape(q.Get("state")))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		UserID   string `json:"user_id"`
		Provider string `json:"provider"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	require.Equal(t, "alice@example.com", out.UserID)
	require.Equal(t, "google", out.Provider)
	require.EqualValues(t, 1, env.tokenHits.Load())

	// replaying the callback finds no flow: the state was consumed
	resp = env.get(t, "/oauth/callback?code=e2e-code&state="+url.QueryEscape(q.Get("state")))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "no_active_flow", decodeError(t, resp))
	require.EqualValues(t, 1, env.tokenHits.Load())
}

func TestCallback_StateMismatch(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/oauth/authorize?provider=google")
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = env.get(t, "/oauth/callback?code=e2e-code&state=forged-state")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "state_mismatch", decodeError(t, resp))

	// the forged callback must never reach the token endpoint
	require.EqualValues(t, 0, env.tokenHits.Load())
}

func TestCallback_WithoutAuthorize(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/oauth/callback?code=e2e-code&state=whatever")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "no_active_flow", decodeError(t, resp))
}

func TestCallback_MissingParams(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/oauth/callback?code=only-code")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_request", decodeError(t, resp))
}

func TestAuthorize_MissingProvider(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/oauth/authorize")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_request", decodeError(t, resp))
}

func TestAuthorize_UnknownProvider(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/oauth/authorize?provider=myspace")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_provider", decodeError(t, resp))
}

func TestAuthorize_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/oauth/authorize?provider=google")
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	found := false
	for _, c := range resp.Cookies() {
		if c.Name == "gdn_session" {
			found = true
			require.True(t, c.HttpOnly)
			require.NotEmpty(t, c.Value)
		}
	}
	require.True(t, found, "session cookie not issued")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/health")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "OK", string(body))
}

func TestRateLimit_FlowEndpointsThrottled(t *testing.T) {
	svc := oauth.NewService(map[string]oauth.Provider{}, flow.NewMemory(time.Minute))
	gw := httptest.NewServer(NewRouter(NewHandler(svc), RouterConfig{
		Session:   SessionConfig{CookieName: "gdn_session"},
		RateLimit: rate.NewMemory(1, time.Minute),
	}))
	t.Cleanup(gw.Close)

	resp, err := http.Get(gw.URL + "/oauth/authorize?provider=google")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp, err = http.Get(gw.URL + "/oauth/authorize?provider=google")
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
	require.Equal(t, "rate_limited", decodeError(t, resp))

	// unthrottled routes stay reachable
	resp, err = http.Get(gw.URL + "/health")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestID_Echoed(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.gateway.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-42")

	resp, err := env.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))
}
