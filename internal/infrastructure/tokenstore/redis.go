package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token under a single Redis key so several
// processes on different hosts can share one login
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store using an existing Redis client
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "shesafe:auth:token"
	}
	return &RedisStore{client: client, key: key}
}

// Load returns the saved token or ErrNoToken
func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save stores the token without expiry; the token's own exp claim governs validity
func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear deletes the key
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
