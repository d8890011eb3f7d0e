// Package cartstore persists shopping carts between requests. A cart is
// identified by an opaque id carried in an HTTP-only cookie.
package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/murshadpk/storefront/internal/pricing"
)

var (
	ErrNotFound = errors.New("cart not found")
	// ErrConflict means Update kept losing races with other writers.
	ErrConflict = errors.New("cart was modified concurrently")
)

// UpdateFunc receives the stored cart (empty when none exists) and returns
// the cart to store. A returned error aborts the update and is passed back
// unchanged.
type UpdateFunc func(current pricing.Cart) (pricing.Cart, error)

// Store keeps carts keyed by cart id. Implementations must return copies so
// callers never share backing arrays with stored carts.
type Store interface {
	Get(ctx context.Context, id string) (pricing.Cart, error)
	Set(ctx context.Context, id string, cart pricing.Cart, ttl time.Duration) error
	// Update applies fn atomically with respect to other writers of id.
	Update(ctx context.Context, id string, ttl time.Duration, fn UpdateFunc) (pricing.Cart, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

type Config struct {
	Provider string
	Redis    *redis.Client
}

func NewStore(cfg Config) (Store, error) {
	switch cfg.Provider {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis cart store requires a redis client")
		}
		return NewRedisStore(cfg.Redis), nil
	default:
		return nil, fmt.Errorf("unsupported cart store provider: %s", cfg.Provider)
	}
}
