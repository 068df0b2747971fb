package domain

import "time"

// Transaction is the immutable record produced once per completed purchase.
type Transaction struct {
	ID            string     `json:"transaction_id"`
	SessionID     string     `json:"session_id"`
	PaymentMethod string     `json:"payment_method"`
	PromoCode     string     `json:"coupon,omitempty"`
	Totals        Totals     `json:"totals"`
	Items         []CartItem `json:"items"`
	CreatedAt     time.Time  `json:"created_at"`
}
