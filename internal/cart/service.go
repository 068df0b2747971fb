// Package cart owns the session cart: add/merge, the buy-now replacement
// path, clearing, and the derived subtotal and item-count queries.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/cache"
	"github.com/SunnieP/analytics-training-demo/internal/domain"
	"github.com/SunnieP/analytics-training-demo/internal/repository"
)

// Observer is notified with the new item count after a mutation has been
// persisted. Drives the cart badge.
type Observer func(sessionID string, itemCount int)

type Service struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sink  analytics.EventSink
	sfg   singleflight.Group // Prevents cache stampede

	obsMu     sync.Mutex
	observers []Observer
}

// NewService wires the store. cache may be nil when no Redis is configured.
func NewService(repo repository.CartRepository, cache cache.CartCache, sink analytics.EventSink) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		sink:  sink,
	}
}

// Subscribe registers an observer for item-count changes.
func (s *Service) Subscribe(fn Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, fn)
}

// AddItem validates the item and merges it into the session cart. Adding a
// product id already in the cart increments its quantity instead of
// appending a second line item.
func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.CartItem) (*domain.Cart, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	c := s.load(ctx, sessionID)
	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, item)
	}

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}

	s.sink.ItemAdded(ctx, analytics.ItemAdded{
		ItemID:       item.ProductID,
		ItemName:     item.Name,
		Price:        item.UnitPrice,
		ItemCategory: item.Category,
		Quantity:     item.Quantity,
	})
	return c, nil
}

// ReplaceWithSingleItem clears the cart and inserts exactly one item. This
// is the buy-now path that skips cart accumulation.
func (s *Service) ReplaceWithSingleItem(ctx context.Context, sessionID string, item domain.CartItem) (*domain.Cart, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	c := &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartItem{item},
		CreatedAt: time.Now(),
	}
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}

	s.sink.ItemAdded(ctx, analytics.ItemAdded{
		ItemID:       item.ProductID,
		ItemName:     item.Name,
		Price:        item.UnitPrice,
		ItemCategory: item.Category,
		Quantity:     item.Quantity,
	})
	return c, nil
}

// Clear empties the cart and erases the persisted record.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteCart(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.invalidateCache(sessionID)
	s.notify(sessionID, 0)
	return nil
}

// Snapshot returns an independent copy of the current line items.
func (s *Service) Snapshot(ctx context.Context, sessionID string) []domain.CartItem {
	return s.load(ctx, sessionID).CopyItems()
}

func (s *Service) Subtotal(ctx context.Context, sessionID string) float64 {
	return s.load(ctx, sessionID).Subtotal()
}

func (s *Service) ItemCount(ctx context.Context, sessionID string) int {
	return s.load(ctx, sessionID).ItemCount()
}

func validateItem(item domain.CartItem) error {
	if item.ProductID == "" {
		return fmt.Errorf("%w: missing product id", ErrInvalidInput)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidInput, item.Quantity)
	}
	if math.IsNaN(item.UnitPrice) || math.IsInf(item.UnitPrice, 0) || item.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// load restores the session cart. A missing or unreadable record is a
// recoverable condition and yields an empty cart.
func (s *Service) load(ctx context.Context, sessionID string) *domain.Cart {
	v, _, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		if s.cache != nil {
			c, err := s.cache.Get(ctx, sessionID)
			if err == nil {
				return c, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("cache get error: %v", err)
			}
		}

		c, err := s.repo.GetCart(ctx, sessionID)
		if err != nil {
			if !errors.Is(err, repository.ErrCartNotFound) {
				log.Printf("cart restore failed, starting empty: %v", err)
			}
			return emptyCart(sessionID), nil
		}

		if s.cache != nil {
			go func() {
				if err := s.cache.Set(context.Background(), sessionID, c); err != nil {
					log.Printf("cache set error: %v", err)
				}
			}()
		}

		return c, nil
	})

	// Each caller gets its own copy; concurrent loads share the
	// singleflight result and mutators edit in place.
	loaded := v.(*domain.Cart)
	c := *loaded
	c.Items = loaded.CopyItems()
	return &c
}

// persist saves the cart, then invalidates the cache and notifies observers.
// Observers always see a durably persisted state.
func (s *Service) persist(ctx context.Context, c *domain.Cart) error {
	if err := s.repo.UpsertCart(ctx, c); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.invalidateCache(c.SessionID)
	s.notify(c.SessionID, c.ItemCount())
	return nil
}

func (s *Service) invalidateCache(sessionID string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

func (s *Service) notify(sessionID string, itemCount int) {
	s.obsMu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn(sessionID, itemCount)
	}
}

func emptyCart(sessionID string) *domain.Cart {
	now := time.Now()
	return &domain.Cart{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
