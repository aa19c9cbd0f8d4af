package oauth

import (
	"errors"
	"fmt"
)

// Client-side failures. The caller recovers by restarting the flow.
var (
	// ErrUnknownProvider means the requested provider name has no adapter.
	ErrUnknownProvider = errors.New("oauth: unknown provider")

	// ErrNoActiveFlow means there is no in-flight attempt for the session:
	// expired, never started, or already consumed.
	ErrNoActiveFlow = errors.New("oauth: no active flow for session")

	// ErrStateMismatch means the state returned by the provider does not
	// match the CSRF token persisted at initiation.
	ErrStateMismatch = errors.New("oauth: state token mismatch")
)

// SessionWriteError wraps a flow-store write failure. The flow cannot safely
// proceed without durable state, so this maps to a server error.
type SessionWriteError struct {
	Err error
}

func (e *SessionWriteError) Error() string {
	return fmt.Sprintf("oauth: persisting flow state: %v", e.Err)
}

func (e *SessionWriteError) Unwrap() error { return e.Err }

// ExchangeError wraps a failed code-for-token exchange. Most commonly the
// caller presented an expired or already-used code, so this maps to a client
// error.
type ExchangeError struct {
	Provider string
	Err      error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("oauth: token exchange with %s failed: %v", e.Provider, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// RequestError means the user-info HTTP call could not be sent at all.
type RequestError struct {
	Provider string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("oauth: user info request to %s failed: %v", e.Provider, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError means the provider answered the user-info call with a non-2xx
// status. The code is kept for diagnostics.
type StatusError struct {
	Provider string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("oauth: user info from %s returned status %d", e.Provider, e.Status)
}

// SchemaError means the expected identity field was absent or of the wrong
// type in the provider's JSON response.
type SchemaError struct {
	Provider string
	Field    string
	Err      error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oauth: %s user info missing usable %q field: %v", e.Provider, e.Field, e.Err)
	}
	return fmt.Sprintf("oauth: %s user info missing usable %q field", e.Provider, e.Field)
}

func (e *SchemaError) Unwrap() error { return e.Err }
