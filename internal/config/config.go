package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	JWTSecret string `env:"JWT_SECRET,required" validate:"required,min=32"`

	CacheProvider         string        `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	CartStoreProvider     string        `env:"CART_STORE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisConnectionString string        `env:"REDIS_CONNECTION_STRING" validate:"required_if=CacheProvider redis,required_if=CartStoreProvider redis"`
	CartTTL               time.Duration `env:"CART_TTL" envDefault:"720h" validate:"gt=0"`
	SettingsCacheTTL      time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"5m" validate:"gte=0"`

	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"log" validate:"omitempty,oneof=log resend"`
	ResendAPIKey  string `env:"RESEND_API_KEY" validate:"required_if=EmailProvider resend"`
	EmailFrom     string `env:"EMAIL_FROM" validate:"omitempty,email"`

	BaseURL        string `env:"BASE_URL" validate:"omitempty,url"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"Rs."`
	PhonePrefix    string `env:"PHONE_PREFIX" envDefault:"+92" validate:"required,startswith=+"`

	SentryDSN string `env:"SENTRY_DSN" validate:"omitempty,url"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	if c.EmailProvider == "resend" && strings.TrimSpace(c.EmailFrom) == "" {
		return fmt.Errorf("EMAIL_FROM is required when EMAIL_PROVIDER is resend")
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("BASE_URL must be a valid absolute URL")
		}
		if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
			return fmt.Errorf("BASE_URL must use https outside local development")
		}
	}

	return nil
}

// TrackOrderURL returns the customer-facing tracking page for an order, or
// an empty string when BASE_URL is not configured.
func (c *Config) TrackOrderURL(orderID int64) string {
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/track-order/%d", baseURL, orderID)
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
