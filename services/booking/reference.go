package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "njeyali/database/repository/booking"
	"njeyali/models"
)

// ReferenceGenerator produces human-readable, globally unique booking
// references of the form {PREFIX}-{SERVICE_CODE}-{YYMMDD}-{SEQ4}. The
// sequence is drawn from a per-day counter incremented atomically in the
// database, so concurrent creations on the same day can never collide.
type ReferenceGenerator struct {
	Counter bookingRepo.CounterRepository
	Prefix  string
}

func NewReferenceGenerator(counter bookingRepo.CounterRepository, prefix string) *ReferenceGenerator {
	if prefix == "" {
		prefix = "NJ"
	}
	return &ReferenceGenerator{Counter: counter, Prefix: prefix}
}

// Allocate reserves the next reference for the given day. When the counter
// increment fails the booking must be rejected rather than risk issuing a
// duplicate reference (fail closed).
func (g *ReferenceGenerator) Allocate(ctx context.Context, st models.ServiceType, now time.Time) (string, error) {
	day := now.UTC().Format("060102")
	seq, err := g.Counter.Next(ctx, "booking-ref-"+day)
	if err != nil {
		return "", fmt.Errorf("reference allocation failed: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s-%04d", g.Prefix, st.Code(), day, seq), nil
}
