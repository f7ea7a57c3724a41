package booking

import (
	"context"
	"time"

	"njeyali/models"

	"go.uber.org/zap"
)

// applyTransition performs the status change on an in-memory booking: the
// audit entry is appended before status is mutated, and the first arrival
// at each lifecycle stage stamps its milestone exactly once.
func applyTransition(b *models.Booking, next models.BookingStatus, actor, reason, notes string, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return NewInvalidTransitionError(b.Status, next)
	}

	b.StatusHistory = append(b.StatusHistory, models.StatusChange{
		PreviousStatus: b.Status,
		NewStatus:      next,
		ChangedBy:      actor,
		ChangedAt:      now,
		Reason:         reason,
		Notes:          notes,
	})
	b.Status = next

	switch next {
	case models.StatusProcessing:
		if b.Milestones.ProcessedAt == nil {
			b.Milestones.ProcessedAt = &now
		}
	case models.StatusConfirmed:
		if b.Milestones.ConfirmedAt == nil {
			b.Milestones.ConfirmedAt = &now
		}
	case models.StatusCompleted:
		if b.Milestones.CompletedAt == nil {
			b.Milestones.CompletedAt = &now
		}
	case models.StatusCancelled:
		if b.Milestones.CancelledAt == nil {
			b.Milestones.CancelledAt = &now
		}
		// A booking cancelled before any money arrived closes its ledger.
		if b.Payment.PaidAmount == 0 && b.Payment.Status == models.PaymentPending {
			b.Payment.Status = models.PaymentCancelled
		}
	}
	return nil
}

// Transition moves the booking to the next lifecycle state. This is the
// only sanctioned way status changes; it rejects moves out of terminal
// states and records the audit entry atomically with the status write.
func (svc *DefaultBookingService) Transition(ctx context.Context, bookingID string, next models.BookingStatus, actor, reason, notes string) (*models.Booking, error) {
	b, err := svc.mutate(ctx, bookingID, func(b *models.Booking) error {
		return applyTransition(b, next, actor, reason, notes, svc.now())
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Info("booking status changed",
		zap.String("bookingId", b.ID),
		zap.String("reference", b.ReferenceNumber),
		zap.String("status", string(b.Status)),
		zap.String("actor", actor))

	svc.notify(ctx, b, "status_update", map[string]string{
		"status": string(b.Status),
		"reason": reason,
	})
	return b, nil
}
