package payment

import (
	"fmt"
	"testing"
	"time"

	"njeyali/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const stripeTestSecret = "whsec_test_secret"

func stripeSign(t *testing.T, body []byte) string {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, body, stripeTestSecret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), fmt.Sprintf("%x", sig))
}

func TestStripeVerifyAndParseIntentSucceeded(t *testing.T) {
	g := NewStripeGateway(stripeTestSecret)
	body := []byte(`{
		"id": "evt_1",
		"type": "payment_intent.succeeded",
		"created": 1787000000,
		"data": {
			"object": {
				"id": "pi_123",
				"amount": 100000,
				"amount_received": 100000,
				"currency": "usd",
				"metadata": {"bookingId": "bk-7"}
			}
		}
	}`)

	event, err := g.VerifyAndParse(body, stripeSign(t, body))
	require.NoError(t, err)

	assert.Equal(t, EventPaymentSucceeded, event.Kind)
	assert.Equal(t, "bk-7", event.BookingID)
	assert.Equal(t, "pi_123", event.Transaction.TransactionID)
	assert.Equal(t, int64(100000), event.Transaction.Amount)
	assert.Equal(t, "USD", event.Transaction.Currency)
	assert.Equal(t, "stripe", event.Transaction.Method)
	assert.Equal(t, models.TransactionCompleted, event.Transaction.Status)
}

func TestStripeFallsBackToAmountWhenNothingReceived(t *testing.T) {
	g := NewStripeGateway(stripeTestSecret)
	body := []byte(`{
		"id": "evt_2",
		"type": "payment_intent.succeeded",
		"created": 1787000000,
		"data": {"object": {"id": "pi_9", "amount": 2500, "currency": "usd", "metadata": {}}}
	}`)

	event, err := g.VerifyAndParse(body, stripeSign(t, body))
	require.NoError(t, err)
	assert.Equal(t, int64(2500), event.Transaction.Amount)
}

func TestStripeRejectsBadSignature(t *testing.T) {
	g := NewStripeGateway(stripeTestSecret)
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)

	_, err := g.VerifyAndParse(body, "t=12345,v1=deadbeef")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStripeMapsPaymentFailed(t *testing.T) {
	g := NewStripeGateway(stripeTestSecret)
	body := []byte(`{
		"id": "evt_3",
		"type": "payment_intent.payment_failed",
		"created": 1787000000,
		"data": {"object": {"id": "pi_5", "metadata": {"bookingId": "bk-3"}}}
	}`)

	event, err := g.VerifyAndParse(body, stripeSign(t, body))
	require.NoError(t, err)
	assert.Equal(t, EventPaymentFailed, event.Kind)
	assert.Equal(t, "bk-3", event.BookingID)
	assert.Equal(t, models.TransactionFailed, event.Transaction.Status)
}

func TestStripeIgnoresUnknownEvents(t *testing.T) {
	g := NewStripeGateway(stripeTestSecret)
	body := []byte(`{"id":"evt_4","type":"customer.created","data":{"object":{}}}`)

	event, err := g.VerifyAndParse(body, stripeSign(t, body))
	require.NoError(t, err)
	assert.Equal(t, EventIgnored, event.Kind)
	assert.Equal(t, "customer.created", event.Type)
}
