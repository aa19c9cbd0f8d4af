package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gardenauth/internal/rate"
)

// RouterConfig collects everything the router needs beyond the handler.
type RouterConfig struct {
	Session            SessionConfig
	CORSAllowedOrigins []string
	// Metrics is mounted at /metrics when non-nil (promhttp handler).
	Metrics http.Handler
	// RateLimit throttles the flow endpoints when non-nil.
	RateLimit rate.Limiter
}

// NewRouter assembles the route table and the middleware chain.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Home)
	r.Get("/health", h.Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(func(next http.Handler) http.Handler {
				return WithRateLimit(next, cfg.RateLimit)
			})
		}
		r.Use(func(next http.Handler) http.Handler {
			return WithSession(next, cfg.Session)
		})
		r.Get("/oauth/authorize", h.Authorize)
		r.Get("/oauth/callback", h.Callback)
	})

	var out http.Handler = r
	out = WithLogging(out)
	out = WithCORS(out, cfg.CORSAllowedOrigins)
	out = WithRecover(out)
	out = WithRequestID(out)
	return out
}
