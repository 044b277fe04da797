// Package tokenstore keeps the authorization token between CLI runs.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// ErrNoToken is returned by Load when no token has been saved
var ErrNoToken = errors.New("tokenstore: no token saved")

// Store persists a single bearer token
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Expired reports whether token is a JWT whose exp claim is before now.
// The signature is not verified; that is the backend's job. Opaque tokens
// and JWTs without exp are never considered expired.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// New builds the store selected by cfg.TokenStore
func New(cfg config.AuthConfig) (Store, error) {
	switch cfg.TokenStore {
	case config.TokenStoreMemory:
		return NewMemoryStore(), nil
	case config.TokenStoreFile:
		return NewFileStore(cfg.TokenFile), nil
	case config.TokenStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(client, cfg.Redis.Key), nil
	default:
		return nil, fmt.Errorf("unsupported token store: %s", cfg.TokenStore)
	}
}
