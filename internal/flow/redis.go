package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps flow state in redis so multiple gateway instances can
// serve the same session. GETDEL gives Take its atomicity server-side.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis wraps an existing client. prefix namespaces the keys so the
// gateway can share a redis DB with other services.
func NewRedis(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(sessionKey string) string {
	if s.prefix == "" {
		return "flow:" + sessionKey
	}
	return s.prefix + ":flow:" + sessionKey
}

func (s *RedisStore) Put(ctx context.Context, sessionKey string, st State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("flow: encoding state: %w", err)
	}
	return s.rdb.Set(ctx, s.key(sessionKey), b, s.ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, sessionKey string) (*State, error) {
	b, err := s.rdb.GetDel(ctx, s.key(sessionKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("flow: decoding state: %w", err)
	}
	return &st, nil
}
