package analytics

import (
	"context"
	"encoding/json"
	"log"
)

// LogSink writes events to the process log. It is the default sink and the
// stand-in students replace with a real tracking destination.
type LogSink struct{}

func NewLogSink() LogSink {
	return LogSink{}
}

func (LogSink) ProductViewed(_ context.Context, e ProductViewed) { logEvent("view_item", e) }

func (LogSink) ItemAdded(_ context.Context, e ItemAdded) { logEvent("add_to_cart", e) }

func (LogSink) CheckoutStarted(_ context.Context, e CheckoutStarted) { logEvent("begin_checkout", e) }

func (LogSink) ShippingInfoAdded(_ context.Context, e ShippingInfoAdded) {
	logEvent("add_shipping_info", e)
}

func (LogSink) PaymentInfoAdded(_ context.Context, e PaymentInfoAdded) {
	logEvent("add_payment_info", e)
}

func (LogSink) PurchaseCompleted(_ context.Context, e PurchaseCompleted) { logEvent("purchase", e) }

func (LogSink) NewsletterSignup(_ context.Context, e NewsletterSignup) {
	logEvent("newsletter_signup", e)
}

func (LogSink) ContactFormSubmitted(_ context.Context, e ContactFormSubmitted) {
	logEvent("contact_form_submit", e)
}

func (LogSink) OutboundLinkClicked(_ context.Context, e OutboundLinkClicked) {
	logEvent("outbound_click", e)
}

func (LogSink) FileDownloaded(_ context.Context, e FileDownloaded) { logEvent("file_download", e) }

func (LogSink) CTAClicked(_ context.Context, e CTAClicked) {
	name := "cta_click"
	if e.CardType != "" {
		name = "card_click"
	}
	logEvent(name, e)
}

func (LogSink) ScrollDepthReached(_ context.Context, e ScrollDepthReached) {
	logEvent("scroll_depth", e)
}

func (LogSink) ScenarioCompleted(_ context.Context, e ScenarioCompleted) {
	logEvent("scenario_complete", e)
}

func logEvent(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("analytics event %s: failed to marshal payload: %v", name, err)
		return
	}
	log.Printf("analytics event %s: %s", name, data)
}
