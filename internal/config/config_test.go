package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RAILZWAY_VAULT_AES_KEY", "local-dev-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "railzway-stripe", cfg.AppName)
	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN, "dbname=railzway_stripe")
	assert.Equal(t, "Stripe refund", cfg.Stripe.RefundReasonName)
	assert.Equal(t, "stripe", cfg.Stripe.GatewayDriver)
	assert.Equal(t, 10*time.Minute, cfg.Stripe.SlugCacheTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RAILZWAY_VAULT_PROVIDER", "plaintext")
	t.Setenv("RAILZWAY_DATABASE_DRIVER", "sqlite")
	t.Setenv("RAILZWAY_DATABASE_DSN", "file::memory:")
	t.Setenv("RAILZWAY_STRIPE_REFUND_REASON_NAME", "Gateway refund")
	t.Setenv("RAILZWAY_STRIPE_GATEWAY_DRIVER", "sandbox")
	t.Setenv("RAILZWAY_STRIPE_SLUG_CACHE_TTL", "30s")
	t.Setenv("RAILZWAY_REDIS_ENABLED", "true")
	t.Setenv("RAILZWAY_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "Gateway refund", cfg.Stripe.RefundReasonName)
	assert.Equal(t, "sandbox", cfg.Stripe.GatewayDriver)
	assert.Equal(t, 30*time.Second, cfg.Stripe.SlugCacheTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestValidateRequiresAESKey(t *testing.T) {
	t.Setenv("RAILZWAY_VAULT_PROVIDER", "aes")
	t.Setenv("RAILZWAY_VAULT_AES_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
