// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "shop_backend/internal/feature/auth/adapters"
	"shop_backend/internal/feature/auth/usecase"
	"shop_backend/internal/platform/revocation"
)

// NewRevocationRepository creates a RevocationRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewRevocationRepository(rdb *redis.Client, db *gorm.DB) usecase.RevocationRepository {
	if rdb != nil {
		return revocation.NewRevocationRedis(rdb, revocation.DefaultPrefix)
	}
	return authadapters.NewRevocationGorm(db)
}
