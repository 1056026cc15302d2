// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"shop_backend/internal/feature/auth/domain/entity"
	"shop_backend/internal/feature/auth/usecase"
)

const (
	// EnvKeyUserCacheTTL overrides DefaultTTL, e.g. "10m".
	EnvKeyUserCacheTTL = "USER_CACHE_TTL"
	// DefaultTTL applies when no positive TTL is configured.
	DefaultTTL = 5 * time.Minute
	// DefaultNamespace prefixes every cache key.
	DefaultNamespace = "users"
)

// CachingUserRepository decorates a UserRepository with Redis caching of lookups by ID.
// Writes go to the inner repository first and then invalidate the affected key.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
// A nil rdb disables caching entirely.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// LoadTTLFromEnv reads USER_CACHE_TTL. Unset or malformed values yield DefaultTTL.
func LoadTTLFromEnv() time.Duration {
	raw := os.Getenv(EnvKeyUserCacheTTL)
	if raw == "" {
		return DefaultTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		slog.Warn("invalid user cache TTL, using default", "value", raw, "default", DefaultTTL)
		return DefaultTTL
	}
	return ttl
}

// Create inserts through the inner repository. New users are not cached until first read.
func (c *CachingUserRepository) Create(ctx context.Context, user *entity.User) error {
	return c.inner.Create(ctx, user)
}

// FindByID retrieves a user, checking cache first then falling back to the database.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.User
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByFullName is never cached; login must see the current hash and status.
func (c *CachingUserRepository) FindByFullName(ctx context.Context, fullName string) ([]*entity.User, error) {
	return c.inner.FindByFullName(ctx, fullName)
}

// List is never cached.
func (c *CachingUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return c.inner.List(ctx)
}

// Update writes through and invalidates the cached entry.
func (c *CachingUserRepository) Update(ctx context.Context, user *entity.User) error {
	if err := c.inner.Update(ctx, user); err != nil {
		return err
	}
	c.invalidate(ctx, user.ID)
	return nil
}

// Delete removes the user and invalidates the cached entry.
func (c *CachingUserRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// invalidate drops the cached entry. Failures are logged, not returned.
func (c *CachingUserRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		slog.Warn("failed to invalidate user cache", "user_id", id, "error", err)
	}
}

// cacheKey generates the cache key for a user ID.
func (c *CachingUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, id)
}
