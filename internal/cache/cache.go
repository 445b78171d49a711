package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a byte-value cache with TTL-only expiry. Entries are never
// invalidated by writes; they simply age out.
type Store interface {
	// Get returns the cached value, or ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key builds the cache key for a request: the namespace, the URL path,
// and the raw query string verbatim. Parameter order is preserved, so
// "?a=1&b=2" and "?b=2&a=1" are distinct entries; both expire on their
// own TTL, so the duplication is bounded and harmless.
func Key(namespace, path, rawQuery string) string {
	if rawQuery == "" {
		return namespace + ":" + path
	}
	return namespace + ":" + path + "?" + rawQuery
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by Redis.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
