package rate

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter is the single-process counterpart of RedisLimiter. The
// mutex makes the read-increment-write of a window counter atomic; the
// cache's own expiry closes the window.
type MemoryLimiter struct {
	mu     sync.Mutex
	c      *gocache.Cache
	max    int64
	window time.Duration
}

func NewMemory(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		c:      gocache.New(window, window),
		max:    int64(max),
		window: window,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var hits int64 = 1
	if v, exp, ok := l.c.GetWithExpiration(key); ok {
		hits = v.(int64) + 1
		l.c.Set(key, hits, time.Until(exp))
	} else {
		l.c.Set(key, hits, gocache.DefaultExpiration)
	}

	remaining := l.max - hits
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:   hits <= l.max,
		Remaining: remaining,
	}
	if !res.Allowed {
		if _, exp, ok := l.c.GetWithExpiration(key); ok && !exp.IsZero() {
			res.RetryAfter = time.Until(exp)
		} else {
			res.RetryAfter = l.window
		}
	}
	return res, nil
}
