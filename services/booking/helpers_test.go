package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "njeyali/database/repository/booking"
	"njeyali/models"

	"go.uber.org/zap"
)

// memBookingRepo is an in-memory BookingRepository with the same
// optimistic-concurrency semantics as the Mongo implementation.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	// conflictsLeft forces that many UpdateWithVersion calls to fail with
	// ErrVersionConflict before writes succeed again.
	conflictsLeft int
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func cloneBooking(b *models.Booking) *models.Booking {
	out := *b
	out.StatusHistory = append([]models.StatusChange(nil), b.StatusHistory...)
	out.Payment.Transactions = append([]models.PaymentTransaction(nil), b.Payment.Transactions...)
	out.Tags = append([]string(nil), b.Tags...)
	return &out
}

func (r *memBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; ok {
		return fmt.Errorf("duplicate booking id %s", b.ID)
	}
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *memBookingRepo) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ReferenceNumber == ref {
			return cloneBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *memBookingRepo) UpdateWithVersion(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return bookingRepo.ErrVersionConflict
	}
	if stored.Version != b.Version {
		return bookingRepo.ErrVersionConflict
	}
	updated := cloneBooking(b)
	updated.Version = b.Version + 1
	updated.UpdatedAt = time.Now().UTC()
	r.bookings[b.ID] = updated
	b.Version = updated.Version
	b.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *memBookingRepo) List(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.ServiceType != "" && b.ServiceType != filter.ServiceType {
			continue
		}
		out = append(out, *cloneBooking(b))
	}
	return out, nil
}

// memCounterRepo allocates sequences under a mutex.
type memCounterRepo struct {
	mu   sync.Mutex
	seqs map[string]int64
	err  error
}

func newMemCounterRepo() *memCounterRepo {
	return &memCounterRepo{seqs: make(map[string]int64)}
}

func (r *memCounterRepo) Next(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.seqs[key]++
	return r.seqs[key], nil
}

// recordingSender captures notifications for assertions.
type recordingSender struct {
	mu    sync.Mutex
	sent  []string // template names in order
	fail  bool
}

func (s *recordingSender) Send(ctx context.Context, to, template string, data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("smtp unreachable")
	}
	s.sent = append(s.sent, template)
	return nil
}

func newTestService() (*DefaultBookingService, *memBookingRepo, *memCounterRepo, *recordingSender) {
	repo := newMemBookingRepo()
	counter := newMemCounterRepo()
	sender := &recordingSender{}
	svc := &DefaultBookingService{
		Repo:     repo,
		RefGen:   NewReferenceGenerator(counter, "NJ"),
		Notifier: sender,
		Logger:   zap.NewNop(),
	}
	return svc, repo, counter, sender
}

func validVisaInput() CreateBookingInput {
	travel := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2028, 5, 1, 0, 0, 0, 0, time.UTC)
	dob := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	return CreateBookingInput{
		ServiceType: models.ServiceVisaApplication,
		Details: models.BookingDetails{
			Visa: &models.VisaDetails{
				Nationality:    "Nigerian",
				Destination:    "France",
				TravelDate:     travel,
				PassportNumber: "A01234567",
				PassportExpiry: expiry,
				DateOfBirth:    dob,
			},
		},
		Customer: models.Customer{
			Name:  "Amina Bello",
			Email: "amina@example.com",
			Phone: "+2348012345678",
		},
		TotalAmount: 100000,
		Currency:    "USD",
	}
}

func mustCreate(svc *DefaultBookingService, input CreateBookingInput) *models.Booking {
	b, err := svc.CreateBooking(context.Background(), input)
	if err != nil {
		panic(err)
	}
	return b
}
