// Package flow stores the per-attempt security material of an in-flight
// authorization: which provider was chosen, the PKCE verifier, and the CSRF
// token. One state per session; a new initiation overwrites the previous one.
//
// States are strictly single-use: Take removes the entry before returning it,
// so a replayed callback finds nothing. Entries also expire after a fixed TTL
// so abandoned flows do not linger.
//
// The store may be backed by an in-process cache or by redis interchangeably;
// the only contract that matters to callers is that Take is atomic.
package flow

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Take when the session has no in-flight state.
var ErrNotFound = errors.New("flow: no state for session")

// State is the security material of one authorization attempt. The verifier
// never travels to the browser; the CSRF token round-trips through the
// provider redirect as the `state` parameter.
type State struct {
	Provider     string `json:"provider"`
	PKCEVerifier string `json:"pkce_verifier"`
	CSRFToken    string `json:"csrf_token"`
}

// Store is the session-scoped state contract.
type Store interface {
	// Put writes the state for the session, overwriting any previous
	// entry. The entry expires after the store's TTL.
	Put(ctx context.Context, sessionKey string, st State) error

	// Take retrieves and removes the state in one atomic step, or returns
	// ErrNotFound. A second Take for the same session returns ErrNotFound.
	Take(ctx context.Context, sessionKey string) (*State, error)
}
