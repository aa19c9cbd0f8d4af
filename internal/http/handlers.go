package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/gardenauth/internal/oauth"
)

// Handler exposes the flow engine over HTTP.
type Handler struct {
	svc *oauth.Service
}

func NewHandler(svc *oauth.Service) *Handler {
	return &Handler{svc: svc}
}

// Authorize handles GET /oauth/authorize?provider=<name>: it starts a flow
// for the caller's session and redirects the browser to the provider.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	provider := strings.TrimSpace(r.URL.Query().Get("provider"))
	if provider == "" {
		WriteError(w, http.StatusBadRequest, "invalid_request", "provider parameter required")
		return
	}

	sessionKey := SessionKey(r.Context())
	if sessionKey == "" {
		WriteError(w, http.StatusInternalServerError, "no_session", "session middleware not mounted")
		return
	}

	authURL, err := h.svc.Initiate(r.Context(), provider, sessionKey)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

type callbackResponse struct {
	UserID   string `json:"user_id"`
	Provider string `json:"provider"`
}

// Callback handles GET /oauth/callback?code=<code>&state=<state>: the
// provider redirecting back after the user consented.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := strings.TrimSpace(q.Get("code"))
	state := strings.TrimSpace(q.Get("state"))
	if code == "" || state == "" {
		WriteError(w, http.StatusBadRequest, "invalid_request", "code and state parameters required")
		return
	}

	sessionKey := SessionKey(r.Context())
	if sessionKey == "" {
		WriteError(w, http.StatusInternalServerError, "no_session", "session middleware not mounted")
		return
	}

	info, err := h.svc.Complete(r.Context(), sessionKey, code, state)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, callbackResponse{UserID: info.ID, Provider: info.Provider})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// writeFlowError maps the flow error taxonomy onto HTTP statuses. Client
// mistakes (unknown provider, stale flow, bad state, dead code) are 400;
// anything on our side or the provider's side after authentication is 500.
func (h *Handler) writeFlowError(w http.ResponseWriter, err error) {
	var (
		exchangeErr *oauth.ExchangeError
		writeErr    *oauth.SessionWriteError
		requestErr  *oauth.RequestError
		statusErr   *oauth.StatusError
		schemaErr   *oauth.SchemaError
	)

	switch {
	case errors.Is(err, oauth.ErrUnknownProvider):
		WriteError(w, http.StatusBadRequest, "invalid_provider", "unknown provider")
	case errors.Is(err, oauth.ErrNoActiveFlow):
		WriteError(w, http.StatusBadRequest, "no_active_flow", "no authorization flow in progress for this session")
	case errors.Is(err, oauth.ErrStateMismatch):
		WriteError(w, http.StatusBadRequest, "state_mismatch", "state token mismatch")
	case errors.As(err, &exchangeErr):
		WriteError(w, http.StatusBadRequest, "exchange_failed", "token exchange failed")
	case errors.As(err, &writeErr):
		WriteError(w, http.StatusInternalServerError, "session_write_failed", "could not persist flow state")
	case errors.As(err, &requestErr), errors.As(err, &statusErr), errors.As(err, &schemaErr):
		WriteError(w, http.StatusInternalServerError, "userinfo_failed", "could not fetch user info from provider")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
