package payment

import (
	"errors"

	"njeyali/models"
)

// ErrUnauthorized is returned when a webhook signature does not verify.
// It is the only webhook failure surfaced to the provider as a rejection.
var ErrUnauthorized = errors.New("invalid webhook signature")

// EventKind classifies a gateway notification after authentication.
type EventKind int

const (
	// EventIgnored covers event types that never mutate the ledger.
	EventIgnored EventKind = iota
	// EventPaymentFailed is logged but does not mutate the ledger.
	EventPaymentFailed
	// EventPaymentSucceeded triggers a ledger mutation.
	EventPaymentSucceeded
)

// Event is the canonical shape every gateway notification is mapped to
// before it touches the ledger. BookingID comes from the opaque metadata
// attached when the payment intent was created; Transaction carries the
// provider's own charge identifier, never a re-derived one.
type Event struct {
	Kind        EventKind
	Type        string // provider's raw event type, for logging
	BookingID   string
	Transaction models.PaymentTransaction
}

// Gateway authenticates and parses provider-specific webhook payloads.
type Gateway interface {
	Name() string
	// VerifyAndParse checks the provider signature against the raw body and
	// maps the payload to a canonical Event. Returns ErrUnauthorized
	// (possibly wrapped) when the signature does not verify.
	VerifyAndParse(rawBody []byte, signatureHeader string) (*Event, error)
}
