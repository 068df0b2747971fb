// Package analytics defines the event sink the rest of the backend reports
// into. Each tracked interaction has one method and one fixed payload shape,
// mirroring the GA4 event schema the training site teaches. Delivery is
// best-effort: a sink must never fail the operation that produced the event.
package analytics

import (
	"context"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

type ProductViewed struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Price        float64 `json:"price"`
	ItemCategory string  `json:"item_category"`
}

type ItemAdded struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Price        float64 `json:"price"`
	ItemCategory string  `json:"item_category"`
	Quantity     int     `json:"quantity"`
}

type CheckoutStarted struct {
	Value float64           `json:"value"`
	Items []domain.CartItem `json:"items"`
}

type ShippingInfoAdded struct {
	ShippingTier string  `json:"shipping_tier"`
	ShippingCost float64 `json:"shipping_cost"`
}

type PaymentInfoAdded struct {
	PaymentType    string  `json:"payment_type"`
	DiscountAmount float64 `json:"discount_amount"`
}

type PurchaseCompleted struct {
	TransactionID string            `json:"transaction_id"`
	Value         float64           `json:"value"`
	Shipping      float64           `json:"shipping"`
	Tax           float64           `json:"tax"`
	Coupon        string            `json:"coupon,omitempty"`
	Items         []domain.CartItem `json:"items"`
}

type NewsletterSignup struct {
	Email string `json:"email"`
}

type ContactFormSubmitted struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Newsletter bool   `json:"newsletter"`
}

type OutboundLinkClicked struct {
	LinkURL  string `json:"link_url"`
	LinkText string `json:"link_text"`
}

type FileDownloaded struct {
	FileName      string `json:"file_name"`
	FileExtension string `json:"file_extension"`
	LinkURL       string `json:"link_url"`
}

type CTAClicked struct {
	ButtonID       string `json:"button_id"`
	CardType       string `json:"card_type,omitempty"`
	ButtonText     string `json:"button_text"`
	ButtonLocation string `json:"button_location"`
}

type ScrollDepthReached struct {
	Depth    int    `json:"depth"`
	PagePath string `json:"page_path"`
}

type ScenarioCompleted struct {
	Scenario string `json:"scenario"`
}

// EventSink receives one call per tracked interaction.
type EventSink interface {
	ProductViewed(ctx context.Context, e ProductViewed)
	ItemAdded(ctx context.Context, e ItemAdded)
	CheckoutStarted(ctx context.Context, e CheckoutStarted)
	ShippingInfoAdded(ctx context.Context, e ShippingInfoAdded)
	PaymentInfoAdded(ctx context.Context, e PaymentInfoAdded)
	PurchaseCompleted(ctx context.Context, e PurchaseCompleted)
	NewsletterSignup(ctx context.Context, e NewsletterSignup)
	ContactFormSubmitted(ctx context.Context, e ContactFormSubmitted)
	OutboundLinkClicked(ctx context.Context, e OutboundLinkClicked)
	FileDownloaded(ctx context.Context, e FileDownloaded)
	CTAClicked(ctx context.Context, e CTAClicked)
	ScrollDepthReached(ctx context.Context, e ScrollDepthReached)
	ScenarioCompleted(ctx context.Context, e ScenarioCompleted)
}
