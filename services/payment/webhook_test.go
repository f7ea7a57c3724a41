package payment

import (
	"context"
	"errors"
	"testing"

	"njeyali/models"
	"njeyali/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBookings records ledger calls; only RecordTransaction is reachable
// from the webhook pipeline.
type fakeBookings struct {
	booking.BookingService

	recorded []models.PaymentTransaction
	lastID   string
	err      error
}

func (f *fakeBookings) RecordTransaction(ctx context.Context, bookingID string, tx models.PaymentTransaction) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastID = bookingID
	f.recorded = append(f.recorded, tx)
	return &models.Booking{ID: bookingID}, nil
}

func newTestReconciler(bookings *fakeBookings) *Reconciler {
	return NewReconciler(bookings, zap.NewNop(), NewPaystackGateway(paystackTestSecret))
}

func successBody() []byte {
	return []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "psk_ref_1",
			"amount": 100000,
			"currency": "USD",
			"metadata": {"bookingId": "bk-1"}
		}
	}`)
}

func TestHandleWebhookRecordsSuccess(t *testing.T) {
	bookings := &fakeBookings{}
	r := newTestReconciler(bookings)
	body := successBody()

	err := r.HandleWebhook(context.Background(), "paystack", body, paystackSign(body, paystackTestSecret))
	require.NoError(t, err)

	require.Len(t, bookings.recorded, 1)
	assert.Equal(t, "bk-1", bookings.lastID)
	assert.Equal(t, "psk_ref_1", bookings.recorded[0].TransactionID)
	assert.Equal(t, int64(100000), bookings.recorded[0].Amount)
}

func TestHandleWebhookUnknownProvider(t *testing.T) {
	r := newTestReconciler(&fakeBookings{})
	err := r.HandleWebhook(context.Background(), "flutterwave", []byte(`{}`), "sig")
	assert.Error(t, err)
}

func TestHandleWebhookBadSignature(t *testing.T) {
	bookings := &fakeBookings{}
	r := newTestReconciler(bookings)

	err := r.HandleWebhook(context.Background(), "paystack", successBody(), "bogus")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, bookings.recorded, "unauthenticated deliveries must not reach the ledger")
}

func TestHandleWebhookAcksIgnoredEvents(t *testing.T) {
	bookings := &fakeBookings{}
	r := newTestReconciler(bookings)
	body := []byte(`{"event":"subscription.create","data":{}}`)

	err := r.HandleWebhook(context.Background(), "paystack", body, paystackSign(body, paystackTestSecret))
	require.NoError(t, err)
	assert.Empty(t, bookings.recorded)
}

func TestHandleWebhookAcksMissingBookingID(t *testing.T) {
	bookings := &fakeBookings{}
	r := newTestReconciler(bookings)
	body := []byte(`{"event":"charge.success","data":{"reference":"r","amount":100,"currency":"USD"}}`)

	err := r.HandleWebhook(context.Background(), "paystack", body, paystackSign(body, paystackTestSecret))
	require.NoError(t, err, "nothing actionable, so do not provoke a redelivery")
	assert.Empty(t, bookings.recorded)
}

func TestHandleWebhookAcksUnknownBooking(t *testing.T) {
	bookings := &fakeBookings{err: booking.NewNotFoundError("bk-1")}
	r := newTestReconciler(bookings)
	body := successBody()

	err := r.HandleWebhook(context.Background(), "paystack", body, paystackSign(body, paystackTestSecret))
	assert.NoError(t, err, "redelivery cannot resolve a missing booking")
}

func TestHandleWebhookPropagatesTransientLedgerFailure(t *testing.T) {
	bookings := &fakeBookings{err: errors.New("mongo timeout")}
	r := newTestReconciler(bookings)
	body := successBody()

	err := r.HandleWebhook(context.Background(), "paystack", body, paystackSign(body, paystackTestSecret))
	assert.Error(t, err, "the provider retry is the recovery path")
}

func TestHandleWebhookReplaySafety(t *testing.T) {
	// The reconciler itself is stateless; replay safety lives in the ledger.
	// Two deliveries of the same event reach RecordTransaction twice with the
	// same transaction id, which the ledger treats as a no-op.
	bookings := &fakeBookings{}
	r := newTestReconciler(bookings)
	body := successBody()
	sig := paystackSign(body, paystackTestSecret)

	require.NoError(t, r.HandleWebhook(context.Background(), "paystack", body, sig))
	require.NoError(t, r.HandleWebhook(context.Background(), "paystack", body, sig))

	require.Len(t, bookings.recorded, 2)
	assert.Equal(t, bookings.recorded[0].TransactionID, bookings.recorded[1].TransactionID)
}
