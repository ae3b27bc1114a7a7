package slugcache

import (
	"time"

	"github.com/railzwaylabs/railzway-stripe/internal/config"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 10 * time.Minute

// Provide picks the redis cache when a client is configured.
func Provide(cfg config.Config, client *redis.Client, log *zap.Logger) paymentdomain.SlugCache {
	ttl := cfg.Stripe.SlugCacheTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	if client != nil {
		log.Info("slug cache using redis", zap.Duration("ttl", ttl))
		return NewRedis(client, ttl)
	}
	log.Info("slug cache using in-process memory", zap.Duration("ttl", ttl))
	return NewMemory(ttl)
}
