package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/murshadpk/storefront/internal/pricing"
)

// MemoryStore is an in-process cart store for single-instance deployments.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	cart      pricing.Cart
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (pricing.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.cleanupExpiredLocked(now)

	entry, ok := s.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry.cart.Clone(), nil
}

func (s *MemoryStore) Set(_ context.Context, id string, cart pricing.Cart, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.cleanupExpiredLocked(now)

	s.carts[id] = memoryEntry{
		cart:      cart.Clone(),
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id string, ttl time.Duration, fn UpdateFunc) (pricing.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.cleanupExpiredLocked(now)

	current := pricing.Cart{}
	if entry, ok := s.carts[id]; ok {
		current = entry.cart.Clone()
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	s.carts[id] = memoryEntry{
		cart:      next.Clone(),
		expiresAt: now.Add(ttl),
	}
	return next.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, id)
	return nil
}

func (s *MemoryStore) cleanupExpiredLocked(now time.Time) {
	for id, entry := range s.carts {
		if !now.Before(entry.expiresAt) {
			delete(s.carts, id)
		}
	}
}

func (s *MemoryStore) Close() error {
	return nil
}
