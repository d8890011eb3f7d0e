package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/murshadpk/storefront/internal/pricing"
)

const (
	redisKeyPrefix = "storefront:cart:"
	redisTimeout   = 5 * time.Second

	maxUpdateAttempts = 5
)

// RedisStore keeps carts as JSON with a sliding TTL. It shares its client
// with the cache and never closes it.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, id string) (pricing.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	return readCart(ctx, r.client, redisCartKey(id))
}

// Update runs fn inside WATCH/MULTI so a concurrent write to the same cart
// makes the transaction fail and fn is retried on fresh data.
func (r *RedisStore) Update(ctx context.Context, id string, ttl time.Duration, fn UpdateFunc) (pricing.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	key := redisCartKey(id)
	var next pricing.Cart
	txf := func(tx *redis.Tx) error {
		current, err := readCart(ctx, tx, key)
		if errors.Is(err, ErrNotFound) {
			current = pricing.Cart{}
		} else if err != nil {
			return err
		}

		next, err = fn(current)
		if err != nil {
			return err
		}
		val, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, val, ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	return nil, ErrConflict
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readCart(ctx context.Context, client stringGetter, key string) (pricing.Cart, error) {
	val, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart pricing.Cart
	if err := json.Unmarshal(val, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, cart pricing.Cart, ttl time.Duration) error {
	val, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := r.client.Set(ctx, redisCartKey(id), val, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := r.client.Del(ctx, redisCartKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return nil
}

func redisCartKey(id string) string {
	return redisKeyPrefix + id
}
