package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps flow state in-process. Suitable for a single instance;
// use the redis store when the gateway runs behind a load balancer.
type MemoryStore struct {
	// The mutex makes Take's get+delete pair atomic; go-cache only
	// guarantees atomicity per call.
	mu sync.Mutex
	c  *gocache.Cache
}

// NewMemory creates a store whose entries expire after ttl.
func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(ttl, time.Minute)}
}

func (s *MemoryStore) Put(_ context.Context, sessionKey string, st State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("flow: encoding state: %w", err)
	}
	s.mu.Lock()
	s.c.Set(sessionKey, b, gocache.DefaultExpiration)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Take(_ context.Context, sessionKey string) (*State, error) {
	s.mu.Lock()
	v, ok := s.c.Get(sessionKey)
	if ok {
		s.c.Delete(sessionKey)
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	b, _ := v.([]byte)
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("flow: decoding state: %w", err)
	}
	return &st, nil
}
