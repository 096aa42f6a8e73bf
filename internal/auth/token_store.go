package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore remembers refresh tokens that may no longer be used.
type TokenStore interface {
	// Revoke marks jti as used. It reports false when jti was already revoked.
	Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

type redisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) TokenStore {
	return &redisTokenStore{rdb: rdb}
}

func revokedKey(jti string) string {
	return "auth:revoked:" + jti
}

func (s *redisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	return s.rdb.SetNX(ctx, revokedKey(jti), "1", ttl).Result()
}
