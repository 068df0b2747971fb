package domain

type CheckoutStep string

const (
	StepShipping CheckoutStep = "SHIPPING"
	StepPayment  CheckoutStep = "PAYMENT"
	StepComplete CheckoutStep = "COMPLETE"
)

func (s CheckoutStep) IsTerminal() bool {
	return s == StepComplete
}

// String representation (for logging)
func (s CheckoutStep) String() string {
	return string(s)
}

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "Standard"
	ShippingExpress  ShippingMethod = "Express"
)

// Cost is the flat shipping rate for the method. Express is the only
// method that costs anything.
func (m ShippingMethod) Cost() float64 {
	if m == ShippingExpress {
		return 10.00
	}
	return 0.00
}

// CheckoutState is the mutable per-session checkout record. It lives from
// Begin until the purchase completes or the session abandons checkout.
type CheckoutState struct {
	ShippingMethod ShippingMethod `json:"shipping_method,omitempty"`
	ShippingCost   float64        `json:"shipping_cost"`
	Discount       float64        `json:"discount"`
	PromoCode      string         `json:"promo_code,omitempty"`
	CurrentStep    CheckoutStep   `json:"current_step"`
}

// Totals is derived from the cart and checkout state on demand, never cached.
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping"`
	Tax          float64 `json:"tax"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}
