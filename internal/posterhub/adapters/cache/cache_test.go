package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterhub/internal/posterhub/adapters/cache"
	"posterhub/internal/posterhub/config"
	cachePorts "posterhub/internal/posterhub/ports/cache"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return s, &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		MinIdle:        5,
		DefaultTTL:     24 * time.Hour,
	}
}

func TestNewRedisCache_Success(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.NoError(t, err)
	require.NotNil(t, redisCache)

	_, ok := redisCache.(cachePorts.Cache)
	assert.True(t, ok, "should implement Cache interface")

	assert.NoError(t, redisCache.Close(), "should close without errors")
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	assert.Error(t, err, "Expected error when Redis connection fails")
	assert.Nil(t, redisCache, "Cache should be nil when connection fails")
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_SetAndGet(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	require.NoError(t, redisCache.Set(ctx, "posters:all", `[{"id":"p1"}]`, time.Minute))

	value, err := redisCache.Get(ctx, "posters:all")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, value)

	assert.True(t, s.Exists("posters:all"))
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	// Отсутствие ключа не является ошибкой.
	value, err := redisCache.Get(ctx, "no-such-key")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_SetUsesDefaultTTLForZero(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	require.NoError(t, redisCache.Set(ctx, "posters:idem:token-1", "p1", 0))

	assert.Equal(t, cfg.DefaultTTL, s.TTL("posters:idem:token-1"))
}

func TestRedisCache_Delete(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	require.NoError(t, redisCache.Set(ctx, "posters:all", "[]", time.Minute))
	require.NoError(t, redisCache.Delete(ctx, "posters:all"))

	assert.False(t, s.Exists("posters:all"))

	// Удаление отсутствующего ключа проходит без ошибки.
	assert.NoError(t, redisCache.Delete(ctx, "posters:all"))
}
