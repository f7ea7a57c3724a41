package bookingRepo

import (
	"context"
	"errors"

	"njeyali/models"
)

var (
	// ErrNotFound is returned when no booking matches the lookup.
	ErrNotFound = errors.New("booking not found")
	// ErrVersionConflict is returned when an optimistic-concurrency check
	// fails on write; the caller must re-read and retry.
	ErrVersionConflict = errors.New("booking version conflict")
)

// ListFilter narrows staff booking listings.
type ListFilter struct {
	ServiceType models.ServiceType
	Status      models.BookingStatus
	AssignedTo  string
	Email       string
	Limit       int64
}

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByReference(ctx context.Context, ref string) (*models.Booking, error)
	// UpdateWithVersion replaces the stored booking only if its version still
	// matches booking.Version, bumping the version on success. Returns
	// ErrVersionConflict when another writer got there first.
	UpdateWithVersion(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context, filter ListFilter) ([]models.Booking, error)
}

// CounterRepository allocates monotonically increasing sequence numbers
// from a shared counter, atomically with respect to concurrent callers.
type CounterRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}
