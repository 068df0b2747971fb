package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/cart"
	"github.com/SunnieP/analytics-training-demo/internal/domain"
	"github.com/SunnieP/analytics-training-demo/internal/orders"
)

// Manager hands out one checkout engine per session.
type Manager struct {
	cart   *cart.Service
	orders orders.TransactionRepository
	sink   analytics.EventSink

	mu      sync.Mutex
	engines map[string]*Engine
}

func NewManager(cartSvc *cart.Service, txns orders.TransactionRepository, sink analytics.EventSink) *Manager {
	return &Manager{
		cart:    cartSvc,
		orders:  txns,
		sink:    sink,
		engines: make(map[string]*Engine),
	}
}

// Begin starts (or resumes) checkout for a session. The cart must be
// non-empty; callers redirect back to the shop otherwise. Reloading the
// checkout page resumes the in-flight engine rather than resetting it.
func (m *Manager) Begin(ctx context.Context, sessionID string) (*Engine, error) {
	items := m.cart.Snapshot(ctx, sessionID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	m.mu.Lock()
	e, ok := m.engines[sessionID]
	if ok && e.State().CurrentStep.IsTerminal() {
		delete(m.engines, sessionID)
		ok = false
	}
	if !ok {
		e = &Engine{
			sessionID: sessionID,
			cart:      m.cart,
			orders:    m.orders,
			sink:      m.sink,
			state:     domain.CheckoutState{CurrentStep: domain.StepShipping},
		}
		m.engines[sessionID] = e
	}
	m.mu.Unlock()

	if !ok {
		var subtotal float64
		for _, item := range items {
			subtotal += item.UnitPrice * float64(item.Quantity)
		}
		m.sink.CheckoutStarted(ctx, analytics.CheckoutStarted{
			Value: subtotal,
			Items: items,
		})
	}
	return e, nil
}

// Engine returns the session's in-flight engine. There is none before Begin
// or after Abandon, which counts as an out-of-sequence use.
func (m *Manager) Engine(sessionID string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.engines[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: checkout not started", ErrOutOfSequence)
	}
	return e, nil
}

// Abandon discards a session's checkout state. The cart is untouched.
func (m *Manager) Abandon(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, sessionID)
}
