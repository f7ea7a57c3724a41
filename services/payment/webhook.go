package payment

import (
	"context"
	"errors"
	"fmt"

	"njeyali/services/booking"

	"go.uber.org/zap"
)

// Reconciler converts authenticated gateway notifications into ledger
// mutations. Delivery is at-least-once and unordered; idempotency lives in
// the ledger's transaction id check, so redelivery is always safe.
type Reconciler struct {
	Bookings booking.BookingService
	Gateways map[string]Gateway
	Logger   *zap.Logger
}

func NewReconciler(bookings booking.BookingService, logger *zap.Logger, gateways ...Gateway) *Reconciler {
	byName := make(map[string]Gateway, len(gateways))
	for _, g := range gateways {
		byName[g.Name()] = g
	}
	return &Reconciler{Bookings: bookings, Gateways: byName, Logger: logger}
}

// HandleWebhook runs the reconciliation pipeline for one delivery. A nil
// return means the provider should receive a success acknowledgement.
// Only two situations reject the delivery: a signature failure (the
// provider must not learn anything else) and a failed ledger write (a
// provider retry is the recovery path, made safe by idempotency).
// Everything else - unknown event types, failed charges, missing bookings -
// is logged and acknowledged because redelivery cannot fix it.
func (r *Reconciler) HandleWebhook(ctx context.Context, provider string, rawBody []byte, signatureHeader string) error {
	gateway, ok := r.Gateways[provider]
	if !ok {
		return fmt.Errorf("unknown payment provider %q", provider)
	}

	event, err := gateway.VerifyAndParse(rawBody, signatureHeader)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			r.Logger.Warn("webhook signature verification failed",
				zap.String("provider", provider))
			return ErrUnauthorized
		}
		// Authenticated but unparseable; redelivery will not help.
		r.Logger.Error("webhook payload could not be parsed",
			zap.String("provider", provider),
			zap.Error(err))
		return nil
	}

	switch event.Kind {
	case EventIgnored:
		r.Logger.Debug("webhook event ignored",
			zap.String("provider", provider),
			zap.String("eventType", event.Type))
		return nil

	case EventPaymentFailed:
		r.Logger.Warn("payment failed",
			zap.String("provider", provider),
			zap.String("transactionId", event.Transaction.TransactionID),
			zap.String("bookingId", event.BookingID))
		return nil
	}

	if event.BookingID == "" {
		r.Logger.Error("webhook success event carries no booking metadata",
			zap.String("provider", provider),
			zap.String("transactionId", event.Transaction.TransactionID))
		return nil
	}

	_, err = r.Bookings.RecordTransaction(ctx, event.BookingID, event.Transaction)
	if err != nil {
		switch booking.ErrorCode(err) {
		case booking.CodeNotFound:
			r.Logger.Error("webhook references unknown booking",
				zap.String("provider", provider),
				zap.String("bookingId", event.BookingID),
				zap.String("transactionId", event.Transaction.TransactionID))
			return nil
		case booking.CodeValidation:
			r.Logger.Error("webhook transaction rejected by ledger",
				zap.String("provider", provider),
				zap.String("bookingId", event.BookingID),
				zap.Error(err))
			return nil
		default:
			// Transient write failure: let the provider redeliver.
			return fmt.Errorf("ledger mutation failed: %w", err)
		}
	}

	r.Logger.Info("webhook reconciled",
		zap.String("provider", provider),
		zap.String("bookingId", event.BookingID),
		zap.String("transactionId", event.Transaction.TransactionID))
	return nil
}
