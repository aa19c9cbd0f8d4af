// Package rate provides fixed-window request limiting for the gateway's
// flow endpoints. Authorization starts write flow state and reach out to
// providers, so a single caller hammering them is both a store-fill and an
// upstream-abuse vector.
package rate

import (
	"context"
	"time"
)

// Result reports one admission decision.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter admits or rejects a request for the given key within the current
// window. Keys are caller identities, typically client IPs.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
