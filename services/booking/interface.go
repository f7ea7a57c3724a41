package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "njeyali/database/repository/booking"
	"njeyali/models"
	"njeyali/services/notification"

	"go.uber.org/zap"
)

// CreateBookingInput carries everything needed to open a booking.
type CreateBookingInput struct {
	ServiceType models.ServiceType    `json:"serviceType"`
	Details     models.BookingDetails `json:"details"`
	Customer    models.Customer       `json:"customer"`
	TotalAmount int64                 `json:"totalAmount"` // minor units
	Currency    string                `json:"currency"`
}

// MetadataUpdate mutates the free-form staff metadata on a booking.
// Nil fields are left untouched.
type MetadataUpdate struct {
	Priority      *string   `json:"priority,omitempty"`
	AssignedTo    *string   `json:"assignedTo,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	InternalNotes *string   `json:"internalNotes,omitempty"`
}

// BookingService is the aggregate's only sanctioned mutation surface.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error)
	Transition(ctx context.Context, bookingID string, next models.BookingStatus, actor, reason, notes string) (*models.Booking, error)
	RecordTransaction(ctx context.Context, bookingID string, tx models.PaymentTransaction) (*models.Booking, error)
	VerifyTransaction(ctx context.Context, bookingID, transactionID, actor string) (*models.Booking, error)
	UpdateMetadata(ctx context.Context, bookingID string, update MetadataUpdate) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	RefGen   *ReferenceGenerator
	Notifier notification.Sender
	Logger   *zap.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (svc *DefaultBookingService) now() time.Time {
	if svc.Now != nil {
		return svc.Now().UTC()
	}
	return time.Now().UTC()
}

const maxWriteRetries = 3

// mutate re-reads the booking, applies fn and writes it back under the
// optimistic-concurrency check, retrying a bounded number of times when a
// concurrent writer wins the race. fn must be safe to re-apply to a fresh
// read.
func (svc *DefaultBookingService) mutate(ctx context.Context, bookingID string, fn func(*models.Booking) error) (*models.Booking, error) {
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		b, err := svc.Repo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				return nil, NewNotFoundError(bookingID)
			}
			return nil, err
		}

		if err := fn(b); err != nil {
			return nil, err
		}

		err = svc.Repo.UpdateWithVersion(ctx, b)
		if err == nil {
			return b, nil
		}
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			svc.Logger.Debug("booking write conflict, retrying",
				zap.String("bookingId", bookingID),
				zap.Int("attempt", attempt+1))
			continue
		}
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFoundError(bookingID)
		}
		return nil, err
	}
	return nil, NewConflictError(bookingID)
}
