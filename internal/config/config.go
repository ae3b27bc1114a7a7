package config

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "RAILZWAY"

type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
	ModeTest        Mode = "test"
)

type Config struct {
	AppName  string         `mapstructure:"app_name" validate:"required"`
	Mode     Mode           `mapstructure:"mode" validate:"required,oneof=development production test"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres mysql sqlite"`
	DSN          string `mapstructure:"dsn" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	Metrics      bool   `mapstructure:"metrics"`
}

// RedisConfig backs the slug cache. When disabled an in-process cache is used.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type VaultConfig struct {
	Provider string `mapstructure:"provider" validate:"oneof=aes plaintext"`
	AESKey   string `mapstructure:"aes_key" validate:"required_if=Provider aes"`
}

type StripeConfig struct {
	// RefundReasonName names the refund_reasons row used for refunds issued through Stripe.
	RefundReasonName string        `mapstructure:"refund_reason_name" validate:"required"`
	GatewayDriver    string        `mapstructure:"gateway_driver" validate:"required"`
	SlugCacheTTL     time.Duration `mapstructure:"slug_cache_ttl"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool   `mapstructure:"insecure"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "railzway-stripe")
	v.SetDefault("mode", string(ModeDevelopment))
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=railzway_stripe port=5432 sslmode=disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.metrics", false)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("vault.provider", "aes")
	v.SetDefault("vault.aes_key", "")
	v.SetDefault("stripe.refund_reason_name", "Stripe refund")
	v.SetDefault("stripe.gateway_driver", "stripe")
	v.SetDefault("stripe.slug_cache_ttl", 10*time.Minute)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", false)
}

// Load reads configuration from an optional config.yaml, a .env file and
// RAILZWAY_* environment variables, in increasing order of precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/railzway")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

func (c Config) IsProduction() bool {
	return c.Mode == ModeProduction
}
