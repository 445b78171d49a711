package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"eventboard/internal/domain"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a TokenStore keeping issued tokens in Redis.
// Each token maps to its user id and expires via the key TTL; a token
// absent from the store is invalid regardless of its signature.
func NewRedisStore(client *redis.Client) domain.TokenStore {
	return &redisStore{client: client, prefix: "token:"}
}

func (s *redisStore) Store(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (s *redisStore) Check(ctx context.Context, token string) (int64, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to check token: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("malformed token entry: %w", err)
	}
	return id, true, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
