package repository

import (
	"context"
	"sync"
	"time"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

// memoryRepository keeps session carts in a map. Used for local runs and
// tests where MongoDB is not configured.
type memoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryRepository() CartRepository {
	return &memoryRepository{carts: make(map[string]*domain.Cart)}
}

func (m *memoryRepository) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (m *memoryRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stored := copyCart(cart)
	if stored.CreatedAt.IsZero() {
		if existing, ok := m.carts[cart.SessionID]; ok {
			stored.CreatedAt = existing.CreatedAt
		} else {
			stored.CreatedAt = now
		}
	}
	stored.UpdatedAt = now
	m.carts[cart.SessionID] = stored
	return nil
}

func (m *memoryRepository) DeleteCart(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, sessionID)
	return nil
}

// copyCart isolates stored state from caller mutations.
func copyCart(cart *domain.Cart) *domain.Cart {
	c := *cart
	c.Items = cart.CopyItems()
	return &c
}
