package oauth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dropDatabas3/gardenauth/internal/flow"
	"github.com/dropDatabas3/gardenauth/internal/metrics"
	"github.com/dropDatabas3/gardenauth/internal/observability/logger"
	"github.com/dropDatabas3/gardenauth/internal/util"
)

// Service orchestrates the authorization flow: it mints the per-attempt
// security material, persists it keyed by the caller's session, and on
// callback validates, exchanges, and normalizes.
//
// The provider map is read-only after construction; the flow store is the
// only shared mutable state and carries its own concurrency guarantees.
type Service struct {
	providers map[string]Provider
	store     flow.Store
	exchange  *http.Client
}

func NewService(providers map[string]Provider, store flow.Store) *Service {
	return &Service{
		providers: providers,
		store:     store,
		exchange: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				// Token endpoints must answer directly. A redirect is
				// misconfiguration or an interception attempt.
				return errors.New("token endpoint attempted a redirect")
			},
		},
	}
}

// Initiate starts a flow for the named provider and returns the authorize
// URL to redirect the browser to. Any previous unconsumed state for the
// session is overwritten: starting a new flow abandons the old one.
func (s *Service) Initiate(ctx context.Context, providerName, sessionKey string) (string, error) {
	p, ok := s.providers[providerName]
	if !ok {
		return "", ErrUnknownProvider
	}

	verifier := oauth2.GenerateVerifier()
	state, err := newStateToken()
	if err != nil {
		return "", fmt.Errorf("oauth: generating state token: %w", err)
	}

	authURL := p.Config().AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	st := flow.State{
		Provider:     providerName,
		PKCEVerifier: verifier,
		CSRFToken:    state,
	}
	if err := s.store.Put(ctx, sessionKey, st); err != nil {
		metrics.FlowsFailed.WithLabelValues(providerName, "initiate").Inc()
		return "", &SessionWriteError{Err: err}
	}

	metrics.FlowsStarted.WithLabelValues(providerName).Inc()
	logger.From(ctx).Info("authorization flow started", logger.Provider(providerName))
	return authURL, nil
}

// Complete consumes the session's flow state, validates the returned state
// against the stored CSRF token, exchanges the code, and fetches the
// normalized identity. The state is gone after this call, success or not:
// a replayed callback gets ErrNoActiveFlow.
func (s *Service) Complete(ctx context.Context, sessionKey, code, returnedState string) (*UserInfo, error) {
	st, err := s.store.Take(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, flow.ErrNotFound) {
			return nil, ErrNoActiveFlow
		}
		return nil, fmt.Errorf("oauth: reading flow state: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(returnedState), []byte(st.CSRFToken)) != 1 {
		metrics.FlowsFailed.WithLabelValues(st.Provider, "csrf").Inc()
		logger.From(ctx).Warn("state token mismatch",
			logger.Provider(st.Provider), logger.Stage("csrf"))
		return nil, ErrStateMismatch
	}

	p, ok := s.providers[st.Provider]
	if !ok {
		// Provider vanished between initiation and callback. Should not
		// happen while the adapter map is immutable.
		logger.From(ctx).Warn("provider from flow state no longer registered",
			logger.Provider(st.Provider))
		return nil, ErrUnknownProvider
	}

	exCtx := context.WithValue(ctx, oauth2.HTTPClient, s.exchange)
	start := time.Now()
	tok, err := p.Config().Exchange(exCtx, code, oauth2.VerifierOption(st.PKCEVerifier))
	metrics.ExchangeDuration.WithLabelValues(st.Provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FlowsFailed.WithLabelValues(st.Provider, "exchange").Inc()
		logger.From(ctx).Warn("token exchange failed",
			logger.Provider(st.Provider), logger.Stage("exchange"), logger.Err(err))
		return nil, &ExchangeError{Provider: st.Provider, Err: err}
	}

	info, err := p.UserInfo(ctx, tok.AccessToken)
	if err != nil {
		metrics.FlowsFailed.WithLabelValues(st.Provider, "userinfo").Inc()
		logger.From(ctx).Warn("user info fetch failed",
			logger.Provider(st.Provider), logger.Stage("userinfo"), logger.Err(err))
		return nil, err
	}

	metrics.FlowsCompleted.WithLabelValues(st.Provider).Inc()
	logger.From(ctx).Info("authorization flow completed",
		logger.Provider(st.Provider),
		logger.String("subject", util.MaskIdentifier(info.ID)))
	return info, nil
}

// ProviderNames lists the providers materialized for this service.
func (s *Service) ProviderNames() []string {
	out := make([]string, 0, len(s.providers))
	for name := range s.providers {
		out = append(out, name)
	}
	return out
}

// newStateToken returns an opaque, attacker-unpredictable CSRF token that
// rides the provider redirect as the `state` parameter.
func newStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
