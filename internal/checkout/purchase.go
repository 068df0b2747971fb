package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

// CompletePurchase finalizes the checkout: it applies the promo code,
// computes the final totals, archives the transaction, clears the cart, and
// advances to the terminal step. Valid only while on the payment step, so a
// duplicate submit fails with ErrOutOfSequence instead of double-charging.
func (e *Engine) CompletePurchase(ctx context.Context, paymentMethod, promo string) (*domain.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.CurrentStep != domain.StepPayment {
		return nil, fmt.Errorf("%w: complete purchase in step %s", ErrOutOfSequence, e.state.CurrentStep)
	}
	if paymentMethod == "" {
		return nil, fmt.Errorf("%w: missing payment method", ErrInvalidInput)
	}

	items := e.cart.Snapshot(ctx, e.sessionID)
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	e.state.PromoCode = normalizePromo(promo)
	e.state.Discount = promoDiscount(promo, subtotal)
	totals := computeTotals(subtotal, e.state.ShippingCost, e.state.Discount)

	txn := &domain.Transaction{
		ID:            newTransactionID(),
		SessionID:     e.sessionID,
		PaymentMethod: paymentMethod,
		PromoCode:     e.state.PromoCode,
		Totals:        totals,
		Items:         items,
		CreatedAt:     time.Now(),
	}

	// The archive and the cart wipe are best-effort: the purchase itself
	// is already decided and must not be reported twice.
	if err := e.orders.SaveTransaction(ctx, txn); err != nil {
		log.Printf("failed to archive transaction %s: %v", txn.ID, err)
	}
	if err := e.cart.Clear(ctx, e.sessionID); err != nil {
		log.Printf("failed to clear cart for session %s: %v", e.sessionID, err)
	}

	e.state.CurrentStep = domain.StepComplete

	e.sink.PaymentInfoAdded(ctx, analytics.PaymentInfoAdded{
		PaymentType:    paymentMethod,
		DiscountAmount: totals.Discount,
	})
	e.sink.PurchaseCompleted(ctx, analytics.PurchaseCompleted{
		TransactionID: txn.ID,
		Value:         totals.Total,
		Shipping:      totals.ShippingCost,
		Tax:           totals.Tax,
		Coupon:        txn.PromoCode,
		Items:         items,
	})

	return txn, nil
}

// newTransactionID mints an identifier unique across the process lifetime.
func newTransactionID() string {
	return "TRN-" + uuid.NewString()
}
