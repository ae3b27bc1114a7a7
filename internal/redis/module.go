package redis

import (
	"context"
	"errors"

	"github.com/railzwaylabs/railzway-stripe/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var ErrDisabled = errors.New("redis_disabled")

var Module = fx.Module("redis",
	fx.Provide(NewClient),
)

// NewClient returns a nil client when redis is disabled so callers can fall
// back to in-process storage.
func NewClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client, err := Dial(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

// Dial opens a client and verifies the connection with a ping.
func Dial(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
