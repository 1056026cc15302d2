package di

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shop_backend/internal/platform/cache"
	"shop_backend/internal/platform/revocation"
)

func setup(t *testing.T) (*redis.Client, *gorm.DB) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return rdb, db
}

func TestNewRevocationRepository(t *testing.T) {
	rdb, db := setup(t)

	_, isRedis := NewRevocationRepository(rdb, db).(*revocation.RevocationRedis)
	assert.True(t, isRedis, "redis-backed when a client is given")

	_, isRedis = NewRevocationRepository(nil, db).(*revocation.RevocationRedis)
	assert.False(t, isRedis, "falls back to the database")
}

func TestNewUserRepository(t *testing.T) {
	rdb, db := setup(t)

	_, cached := NewUserRepository(rdb, db, time.Minute).(*cache.CachingUserRepository)
	assert.True(t, cached)

	_, cached = NewUserRepository(nil, db, time.Minute).(*cache.CachingUserRepository)
	assert.False(t, cached)
}
