package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Store     StoreConfig     `koanf:"store"`
	Payment   PaymentConfig   `koanf:"payment"`
	Webhook   WebhookConfig   `koanf:"webhook"`
	Session   SessionConfig   `koanf:"session"`
	Redis     RedisConfig     `koanf:"redis"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Retry     RetryConfig     `koanf:"retry"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Logger    LoggerConfig    `koanf:"logger"`
	Worker    WorkerConfig    `koanf:"worker"`
}

type WorkerConfig struct {
	Interval  time.Duration `koanf:"interval" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required,gt=0"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type StoreConfig struct {
	Currency string `koanf:"currency" validate:"required,len=3"`
}

// PaymentConfig points at the payment processor's REST API.
type PaymentConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	SecretKey   string        `koanf:"secret_key" validate:"required"`
	ConnTimeout time.Duration `koanf:"conn_timeout" validate:"required"`
}

type WebhookConfig struct {
	SigningSecret string `koanf:"signing_secret" validate:"required"`
	// Tolerance bounds the age of a signed timestamp; zero disables the check.
	Tolerance       time.Duration `koanf:"tolerance"`
	CompletionTypes []string      `koanf:"completion_types" validate:"required,min=1,dive,required"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" validate:"required,gt=0"`
}

type SessionConfig struct {
	Secret     string        `koanf:"secret" validate:"required,min=16"`
	Issuer     string        `koanf:"issuer" validate:"required"`
	TTL        time.Duration `koanf:"ttl" validate:"required"`
	CookieName string        `koanf:"cookie_name" validate:"required"`
	Secure     bool          `koanf:"secure"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// KafkaConfig is optional; with no brokers, outbox events are dropped by a
// no-op publisher.
type KafkaConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"gte=1"`
}

type RateLimitConfig struct {
	RPS   float64 `koanf:"rps" validate:"gt=0"`
	Burst int     `koanf:"burst" validate:"gt=0"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 "3000",
		"server.read_timeout":         "15s",
		"server.write_timeout":        "15s",
		"server.idle_timeout":         "60s",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"store.currency":              "usd",
		"payment.base_url":            "https://api.stripe.com",
		"payment.conn_timeout":        "10s",
		"webhook.tolerance":           "5m",
		"webhook.completion_types":    []string{"checkout.session.completed", "payment_intent.succeeded"},
		"webhook.max_body_bytes":      65536,
		"session.issuer":              "storefront",
		"session.ttl":                 "24h",
		"session.cookie_name":         "token",
		"redis.addr":                  "localhost:6379",
		"kafka.topic":                 "storefront.orders",
		"retry.base_delay":            "500ms",
		"retry.max_retries":           3,
		"rate_limit.rps":              5,
		"rate_limit.burst":            10,
		"logger.level":                "info",
		"logger.format":               "text",
		"worker.interval":             "5s",
		"worker.batch_size":           100,
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
