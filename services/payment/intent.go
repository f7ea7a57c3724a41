package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"njeyali/config"
	"njeyali/models"
	"njeyali/services/booking"

	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// IntentService initiates payments with the configured gateways. The
// booking id travels to the gateway as opaque metadata so the webhook can
// find its way back; the Redis session entry is a convenience lookup, not
// the source of truth.
type IntentService struct {
	Bookings booking.BookingService
	Paystack *PaystackClient
	Cache    *redis.Client
	Logger   *zap.Logger
}

// StripeIntentResult is returned to the client to complete payment.
type StripeIntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

const intentSessionTTL = 24 * time.Hour

// CreateStripeIntent opens a Stripe payment intent for the booking's
// outstanding balance.
func (s *IntentService) CreateStripeIntent(ctx context.Context, bookingID string) (*StripeIntentResult, error) {
	b, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	balance := b.Payment.Balance()
	if balance <= 0 {
		fe := models.FieldErrors{}
		fe.Add("bookingId", "booking has no outstanding balance")
		return nil, booking.NewValidationError(fe)
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(balance),
		Currency:     stripe.String(strings.ToLower(b.Payment.Currency)),
		Description:  stripe.String(fmt.Sprintf("Payment for booking %s", b.ReferenceNumber)),
		ReceiptEmail: stripe.String(b.Customer.Email),
	}
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("referenceNumber", b.ReferenceNumber)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe payment intent: %w", err)
	}

	s.cacheSession(ctx, pi.ID, b.ID)
	s.Logger.Info("stripe payment intent created",
		zap.String("bookingId", b.ID),
		zap.String("paymentIntentId", pi.ID),
		zap.Int64("amount", balance))

	return &StripeIntentResult{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
	}, nil
}

// InitializePaystack starts a Paystack transaction for the booking's
// outstanding balance and returns the authorization URL for the client.
func (s *IntentService) InitializePaystack(ctx context.Context, bookingID string) (*PaystackInitResult, error) {
	b, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	balance := b.Payment.Balance()
	if balance <= 0 {
		fe := models.FieldErrors{}
		fe.Add("bookingId", "booking has no outstanding balance")
		return nil, booking.NewValidationError(fe)
	}

	result, err := s.Paystack.InitializeTransaction(ctx, PaystackInitRequest{
		Email:       b.Customer.Email,
		Amount:      balance,
		Currency:    b.Payment.Currency,
		CallbackURL: config.AppConfig.PaymentCallbackURL,
		Metadata: map[string]interface{}{
			"bookingId":       b.ID,
			"referenceNumber": b.ReferenceNumber,
		},
	})
	if err != nil {
		return nil, err
	}

	s.cacheSession(ctx, result.Reference, b.ID)
	s.Logger.Info("paystack transaction initialized",
		zap.String("bookingId", b.ID),
		zap.String("reference", result.Reference),
		zap.Int64("amount", balance))
	return result, nil
}

// VerifyPaystack confirms a Paystack transaction server-side and applies a
// successful charge through the same idempotent ledger path the webhook
// uses, so a verify racing a webhook for the same reference records the
// payment once.
func (s *IntentService) VerifyPaystack(ctx context.Context, reference string) (*models.Booking, error) {
	verified, err := s.Paystack.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}
	if verified.Status != "success" {
		fe := models.FieldErrors{}
		fe.Add("reference", fmt.Sprintf("transaction %s is %s, not success", reference, verified.Status))
		return nil, booking.NewValidationError(fe)
	}
	if verified.BookingID == "" {
		fe := models.FieldErrors{}
		fe.Add("reference", "transaction carries no booking metadata")
		return nil, booking.NewValidationError(fe)
	}

	occurredAt := time.Now().UTC()
	if t, err := time.Parse(time.RFC3339, verified.PaidAt); err == nil {
		occurredAt = t.UTC()
	}

	return s.Bookings.RecordTransaction(ctx, verified.BookingID, models.PaymentTransaction{
		TransactionID: verified.Reference,
		Amount:        verified.Amount,
		Currency:      strings.ToUpper(verified.Currency),
		Method:        "paystack",
		Status:        models.TransactionCompleted,
		OccurredAt:    occurredAt,
		Notes:         "Paystack payment verified",
	})
}

func (s *IntentService) cacheSession(ctx context.Context, intentID, bookingID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, "payment-intent:"+intentID, bookingID, intentSessionTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache payment session",
			zap.String("intentId", intentID),
			zap.Error(err))
	}
}
