package slugcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/config"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func exerciseCache(t *testing.T, cache paymentdomain.SlugCache) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "live")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "live", snowflake.ID(42)))

	id, ok, err := cache.Get(ctx, "live")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, snowflake.ID(42), id)

	require.NoError(t, cache.Delete(ctx, "live"))
	_, ok, err = cache.Get(ctx, "live")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemory(time.Minute))
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseCache(t, NewRedis(client, time.Minute))
}

func TestRedisCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedis(client, time.Minute)
	require.NoError(t, cache.Set(context.Background(), "test", snowflake.ID(7)))
	assert.True(t, mr.Exists(keyPrefix+"test"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(context.Background(), "test")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheDropsCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set(keyPrefix+"bad", "not-a-number"))

	_, ok, err := NewRedis(client, time.Minute).Get(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists(keyPrefix+"bad"))
}

func TestProvide(t *testing.T) {
	cfg := config.Config{}
	assert.IsType(t, &MemoryCache{}, Provide(cfg, nil, zap.NewNop()))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	assert.IsType(t, &RedisCache{}, Provide(cfg, client, zap.NewNop()))
}
