package slugcache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "railzway:stripe:slug:"

// RedisCache shares slug ownership across instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, slug string) (snowflake.ID, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+slug).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := snowflake.ParseString(raw)
	if err != nil {
		// Corrupt value; drop it so the next lookup repopulates.
		_ = c.client.Del(ctx, keyPrefix+slug).Err()
		return 0, false, nil
	}
	return id, true, nil
}

func (c *RedisCache) Set(ctx context.Context, slug string, paymentMethodID snowflake.ID) error {
	return c.client.Set(ctx, keyPrefix+slug, strconv.FormatInt(paymentMethodID.Int64(), 10), c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, slug string) error {
	return c.client.Del(ctx, keyPrefix+slug).Err()
}
