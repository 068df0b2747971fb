// Package checkout owns the shipping → payment → complete step sequence and
// the totals math on top of the session cart.
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

// Engine runs one session's checkout. Steps advance strictly
// Shipping → Payment → Complete; the only backward edge is
// Payment → Shipping.
type Engine struct {
	sessionID string
	cart      *cart.Service
	orders    orders.TransactionRepository
	sink      analytics.EventSink

	mu    sync.Mutex
	state domain.CheckoutState
}

// State returns a copy of the current checkout state.
func (e *Engine) State() domain.CheckoutState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetShipping records the shipping method and its flat cost, then advances
// to the payment step. Valid only while on the shipping step.
func (e *Engine) SetShipping(ctx context.Context, method string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.CurrentStep != domain.StepShipping {
		return fmt.Errorf("%w: set shipping in step %s", ErrOutOfSequence, e.state.CurrentStep)
	}

	m := domain.ShippingMethod(method)
	if m != domain.ShippingStandard && m != domain.ShippingExpress {
		return fmt.Errorf("%w: unknown shipping method %q", ErrInvalidInput, method)
	}

	e.state.ShippingMethod = m
	e.state.ShippingCost = m.Cost()
	e.state.CurrentStep = domain.StepPayment

	e.sink.ShippingInfoAdded(ctx, analytics.ShippingInfoAdded{
		ShippingTier: string(m),
		ShippingCost: m.Cost(),
	})
	return nil
}

// BackToShipping returns from the payment step to the shipping step.
// Shipping inputs are retained.
func (e *Engine) BackToShipping() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.CurrentStep != domain.StepPayment {
		return fmt.Errorf("%w: go back in step %s", ErrOutOfSequence, e.state.CurrentStep)
	}
	e.state.CurrentStep = domain.StepShipping
	return nil
}

// Totals recomputes the summary from the live cart and checkout inputs.
func (e *Engine) Totals(ctx context.Context) domain.Totals {
	e.mu.Lock()
	shipping, discount := e.state.ShippingCost, e.state.Discount
	e.mu.Unlock()

	return computeTotals(e.cart.Subtotal(ctx, e.sessionID), shipping, discount)
}
