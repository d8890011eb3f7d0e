// Package cache provides a small key/value cache used for read-mostly
// storefront data such as pricing settings.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Provider is a string key/value cache with per-entry TTL.
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider string
	// Redis is required for the redis provider. The provider does not close it.
	Redis *redis.Client
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryProvider()
	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis cache provider requires a redis client")
		}
		return NewRedisProvider(cfg.Redis), nil
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}

// SettingsKey is the cache key for the storefront pricing settings row.
func SettingsKey() string {
	return "settings:pricing"
}

// GetJSON decodes the cached value at key into dst. It returns ErrNotFound
// on a miss.
func GetJSON(ctx context.Context, p Provider, key string, dst any) error {
	raw, err := p.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode cached %s: %w", key, err)
	}
	return nil
}

func SetJSON(ctx context.Context, p Provider, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return p.Set(ctx, key, string(raw), ttl)
}
