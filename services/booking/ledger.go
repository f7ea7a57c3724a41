package booking

import (
	"context"
	"fmt"
	"time"

	"njeyali/models"

	"go.uber.org/zap"
)

// applyTransaction records tx on the in-memory ledger. Returns false when
// the transaction id was already recorded, in which case the ledger is
// left untouched (at-least-once webhook delivery makes replays routine).
func applyTransaction(b *models.Booking, tx models.PaymentTransaction, now time.Time) (bool, error) {
	if tx.TransactionID == "" {
		fe := models.FieldErrors{}
		fe.Add("transactionId", "transaction id is required")
		return false, NewValidationError(fe)
	}
	if tx.Amount <= 0 {
		fe := models.FieldErrors{}
		fe.Add("amount", "amount must be a positive number of minor units")
		return false, NewValidationError(fe)
	}
	if tx.Currency != "" && b.Payment.Currency != "" && tx.Currency != b.Payment.Currency {
		fe := models.FieldErrors{}
		fe.Add("currency", fmt.Sprintf("ledger currency is %s, got %s", b.Payment.Currency, tx.Currency))
		return false, NewValidationError(fe)
	}

	if b.Payment.FindTransaction(tx.TransactionID) != nil {
		return false, nil
	}

	if tx.Status == "" {
		tx.Status = models.TransactionCompleted
	}
	if tx.Currency == "" {
		tx.Currency = b.Payment.Currency
	}
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = now
	}

	b.Payment.Transactions = append(b.Payment.Transactions, tx)
	b.Payment.Recompute()
	return true, nil
}

// RecordTransaction applies a canonical transaction to the booking's
// ledger. The gateway transaction id is the idempotency key: recording an
// id that already exists is a no-op and returns the booking unchanged.
// paidAmount and the derived payment status are recomputed from the full
// transaction set on every call.
func (svc *DefaultBookingService) RecordTransaction(ctx context.Context, bookingID string, tx models.PaymentTransaction) (*models.Booking, error) {
	var applied bool
	b, err := svc.mutate(ctx, bookingID, func(b *models.Booking) error {
		var applyErr error
		applied, applyErr = applyTransaction(b, tx, svc.now())
		return applyErr
	})
	if err != nil {
		return nil, err
	}

	if !applied {
		svc.Logger.Info("duplicate transaction ignored",
			zap.String("bookingId", b.ID),
			zap.String("transactionId", tx.TransactionID))
		return b, nil
	}

	svc.Logger.Info("payment transaction recorded",
		zap.String("bookingId", b.ID),
		zap.String("reference", b.ReferenceNumber),
		zap.String("transactionId", tx.TransactionID),
		zap.Int64("amount", tx.Amount),
		zap.String("paymentStatus", string(b.Payment.Status)))

	if tx.Status == models.TransactionCompleted || tx.Status == "" {
		svc.notify(ctx, b, "payment_confirmation", map[string]string{
			"transactionId": tx.TransactionID,
			"amount":        fmt.Sprintf("%d", tx.Amount),
			"currency":      b.Payment.Currency,
			"paymentStatus": string(b.Payment.Status),
		})
	}
	return b, nil
}

// VerifyTransaction promotes a pending manual entry to completed once staff
// have confirmed the funds, and recomputes the ledger. Verifying an already
// completed transaction is a no-op.
func (svc *DefaultBookingService) VerifyTransaction(ctx context.Context, bookingID, transactionID, actor string) (*models.Booking, error) {
	b, err := svc.mutate(ctx, bookingID, func(b *models.Booking) error {
		tx := b.Payment.FindTransaction(transactionID)
		if tx == nil {
			return NewNotFoundError(transactionID)
		}
		if tx.Status == models.TransactionCompleted {
			return nil
		}
		if tx.Status != models.TransactionPending {
			fe := models.FieldErrors{}
			fe.Add("transactionId", fmt.Sprintf("cannot verify a %s transaction", tx.Status))
			return NewValidationError(fe)
		}
		tx.Status = models.TransactionCompleted
		if tx.Notes != "" {
			tx.Notes += "; "
		}
		tx.Notes += "verified by " + actor
		b.Payment.Recompute()
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Info("manual transaction verified",
		zap.String("bookingId", b.ID),
		zap.String("transactionId", transactionID),
		zap.String("actor", actor))
	return b, nil
}
