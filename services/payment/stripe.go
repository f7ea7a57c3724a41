package payment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"njeyali/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeGateway verifies and maps Stripe webhook events.
type StripeGateway struct {
	webhookSecret string
}

func NewStripeGateway(webhookSecret string) *StripeGateway {
	return &StripeGateway{webhookSecret: webhookSecret}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) VerifyAndParse(rawBody []byte, signatureHeader string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(rawBody, signatureHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	switch string(event.Type) {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to parse payment intent: %w", err)
		}
		amount := pi.AmountReceived
		if amount == 0 {
			amount = pi.Amount
		}
		return &Event{
			Kind:      EventPaymentSucceeded,
			Type:      string(event.Type),
			BookingID: pi.Metadata["bookingId"],
			Transaction: models.PaymentTransaction{
				TransactionID: pi.ID,
				Amount:        amount, // Stripe reports minor units already
				Currency:      strings.ToUpper(string(pi.Currency)),
				Method:        g.Name(),
				Status:        models.TransactionCompleted,
				OccurredAt:    time.Unix(event.Created, 0).UTC(),
				Notes:         "Stripe payment succeeded",
			},
		}, nil

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to parse payment intent: %w", err)
		}
		return &Event{
			Kind:      EventPaymentFailed,
			Type:      string(event.Type),
			BookingID: pi.Metadata["bookingId"],
			Transaction: models.PaymentTransaction{
				TransactionID: pi.ID,
				Method:        g.Name(),
				Status:        models.TransactionFailed,
			},
		}, nil

	default:
		return &Event{Kind: EventIgnored, Type: string(event.Type)}, nil
	}
}
