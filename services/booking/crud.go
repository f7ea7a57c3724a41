package booking

import (
	"context"
	"strings"

	bookingRepo "njeyali/database/repository/booking"
	"njeyali/models"
	"njeyali/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the submission, allocates a reference number and
// persists the aggregate in its initial state. Validation failures never
// partially persist anything; a failed reference allocation rejects the
// booking outright.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	fe := models.FieldErrors{}

	if !input.ServiceType.IsValid() {
		fe.Add("serviceType", "unknown service type")
		return nil, NewValidationError(fe)
	}
	for field, msg := range input.Details.Validate(input.ServiceType) {
		fe.Add(field, msg)
	}
	if input.Customer.Name == "" {
		fe.Add("customer.name", "name is required")
	}
	if !utils.IsValidEmail(input.Customer.Email) {
		fe.Add("customer.email", "a valid email address is required")
	}
	if !utils.IsValidPhone(input.Customer.Phone) {
		fe.Add("customer.phone", "a valid phone number is required")
	}
	if input.TotalAmount < 0 {
		fe.Add("totalAmount", "total amount cannot be negative")
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if len(currency) != 3 {
		fe.Add("currency", "currency must be a three-letter ISO code")
	}
	if !fe.Empty() {
		return nil, NewValidationError(fe)
	}

	now := svc.now()
	ref, err := svc.RefGen.Allocate(ctx, input.ServiceType, now)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		ReferenceNumber: ref,
		ServiceType:     input.ServiceType,
		Details:         input.Details,
		Customer:        input.Customer,
		Status:          models.StatusPending,
		StatusHistory:   []models.StatusChange{},
		Payment: models.PaymentDetails{
			TotalAmount:  input.TotalAmount,
			Currency:     currency,
			Status:       models.PaymentPending,
			Transactions: []models.PaymentTransaction{},
		},
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	if err := svc.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	svc.Logger.Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("reference", b.ReferenceNumber),
		zap.String("serviceType", string(b.ServiceType)))

	svc.notify(ctx, b, "booking_confirmation", map[string]string{
		"serviceType": string(b.ServiceType),
	})
	return b, nil
}

// GetBooking fetches a booking by id.
func (svc *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, NewNotFoundError(id)
		}
		return nil, err
	}
	return b, nil
}

// GetBookingByReference fetches a booking by its reference number.
func (svc *DefaultBookingService) GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error) {
	b, err := svc.Repo.GetByReference(ctx, ref)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, NewNotFoundError(ref)
		}
		return nil, err
	}
	return b, nil
}

// ListBookings returns bookings matching the staff filter.
func (svc *DefaultBookingService) ListBookings(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	return svc.Repo.List(ctx, filter)
}

// UpdateMetadata mutates the staff-facing metadata fields. Status and the
// payment ledger are untouchable here; they have their own operations.
func (svc *DefaultBookingService) UpdateMetadata(ctx context.Context, bookingID string, update MetadataUpdate) (*models.Booking, error) {
	return svc.mutate(ctx, bookingID, func(b *models.Booking) error {
		if update.Priority != nil {
			b.Priority = *update.Priority
		}
		if update.AssignedTo != nil {
			b.AssignedTo = *update.AssignedTo
		}
		if update.Tags != nil {
			b.Tags = *update.Tags
		}
		if update.InternalNotes != nil {
			b.InternalNotes = *update.InternalNotes
		}
		return nil
	})
}

// notify sends a templated customer notification. Delivery is best-effort:
// a failure is logged and never propagated, so it cannot block or roll
// back the mutation that triggered it.
func (svc *DefaultBookingService) notify(ctx context.Context, b *models.Booking, template string, data map[string]string) {
	if svc.Notifier == nil {
		return
	}
	if data == nil {
		data = map[string]string{}
	}
	data["name"] = b.Customer.Name
	data["referenceNumber"] = b.ReferenceNumber

	if err := svc.Notifier.Send(ctx, b.Customer.Email, template, data); err != nil {
		svc.Logger.Warn("notification send failed",
			zap.String("bookingId", b.ID),
			zap.String("template", template),
			zap.Error(err))
	}
}
