package checkout

import (
	"strings"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

const (
	taxRate   = 0.05
	promoCode = "ANALYTICS20"
	promoRate = 0.20
)

// computeTotals derives display totals from the cart subtotal and the
// checkout inputs. Tax applies to the discounted subtotal, floored at zero;
// shipping is never taxed. Values stay unrounded here so repeated
// recomputation cannot compound rounding error.
func computeTotals(subtotal, shipping, discount float64) domain.Totals {
	taxable := subtotal - discount
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * taxRate

	return domain.Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Discount:     discount,
		Total:        subtotal + shipping + tax - discount,
	}
}

// normalizePromo trims and upcases a submitted promo code.
func normalizePromo(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// promoDiscount returns the discount a code earns against the subtotal.
// Unrecognized codes earn nothing; that is not an error.
func promoDiscount(code string, subtotal float64) float64 {
	if normalizePromo(code) == promoCode {
		return subtotal * promoRate
	}
	return 0
}
