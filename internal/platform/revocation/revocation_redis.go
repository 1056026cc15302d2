// Package revocation provides a Redis-backed registry of revoked access tokens.
package revocation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shop_backend/internal/feature/auth/domain/entity"
	"shop_backend/internal/feature/auth/usecase"
)

// DefaultPrefix namespaces revocation keys.
const DefaultPrefix = "revoked"

// RevocationRedis implements usecase.RevocationRepository using Redis.
// Each entry expires together with the token it revokes.
type RevocationRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.RevocationRepository = (*RevocationRedis)(nil)

// NewRevocationRedis creates a new RevocationRedis instance.
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RevocationRedis{
		client: client,
		prefix: prefix,
	}
}

// key returns the Redis key for a token ID.
func (r *RevocationRedis) key(tokenID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, tokenID)
}

// Revoke stores the token until its expiry. An already expired token is ignored.
func (r *RevocationRedis) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal revoked token: %w", err)
	}
	return r.client.Set(ctx, r.key(token.ID), data, ttl).Err()
}

// IsRevoked reports whether the token ID is currently revoked.
func (r *RevocationRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired is a no-op: Redis expires entries on its own.
func (r *RevocationRedis) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}
