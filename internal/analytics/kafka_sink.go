package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

// KafkaSink publishes events to a Kafka topic so a downstream pipeline can
// consume them. The circuit breaker keeps a dead broker from slowing every
// user action down to the write timeout.
type KafkaSink struct {
	writer  *kafka.Writer
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewKafkaSink(brokers ...string) *KafkaSink {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "analytics-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "analytics-kafka",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("breaker %s changed state from %v to %v", name, from, to)
		},
	})

	return &KafkaSink{writer: w, breaker: cb}
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

type eventEnvelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (s *KafkaSink) publish(ctx context.Context, name string, payload any) {
	data, err := json.Marshal(eventEnvelope{
		Event:      name,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", name, err)
		return
	}

	_, err = s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(name),
			Value: data,
		})
	})
	if err != nil {
		log.Printf("failed to publish %s event: %v", name, err)
	}
}

func (s *KafkaSink) ProductViewed(ctx context.Context, e ProductViewed) {
	s.publish(ctx, "view_item", e)
}

func (s *KafkaSink) ItemAdded(ctx context.Context, e ItemAdded) {
	s.publish(ctx, "add_to_cart", e)
}

func (s *KafkaSink) CheckoutStarted(ctx context.Context, e CheckoutStarted) {
	s.publish(ctx, "begin_checkout", e)
}

func (s *KafkaSink) ShippingInfoAdded(ctx context.Context, e ShippingInfoAdded) {
	s.publish(ctx, "add_shipping_info", e)
}

func (s *KafkaSink) PaymentInfoAdded(ctx context.Context, e PaymentInfoAdded) {
	s.publish(ctx, "add_payment_info", e)
}

func (s *KafkaSink) PurchaseCompleted(ctx context.Context, e PurchaseCompleted) {
	s.publish(ctx, "purchase", e)
}

func (s *KafkaSink) NewsletterSignup(ctx context.Context, e NewsletterSignup) {
	s.publish(ctx, "newsletter_signup", e)
}

func (s *KafkaSink) ContactFormSubmitted(ctx context.Context, e ContactFormSubmitted) {
	s.publish(ctx, "contact_form_submit", e)
}

func (s *KafkaSink) OutboundLinkClicked(ctx context.Context, e OutboundLinkClicked) {
	s.publish(ctx, "outbound_click", e)
}

func (s *KafkaSink) FileDownloaded(ctx context.Context, e FileDownloaded) {
	s.publish(ctx, "file_download", e)
}

func (s *KafkaSink) CTAClicked(ctx context.Context, e CTAClicked) {
	name := "cta_click"
	if e.CardType != "" {
		name = "card_click"
	}
	s.publish(ctx, name, e)
}

func (s *KafkaSink) ScrollDepthReached(ctx context.Context, e ScrollDepthReached) {
	s.publish(ctx, "scroll_depth", e)
}

func (s *KafkaSink) ScenarioCompleted(ctx context.Context, e ScenarioCompleted) {
	s.publish(ctx, "scenario_complete", e)
}
