package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"njeyali/models"
)

// PaystackGateway verifies and maps Paystack webhook events. Paystack signs
// the raw body with HMAC-SHA512 keyed by the account secret and sends the
// hex digest in the x-paystack-signature header. Amounts arrive in kobo
// (minor units) and pass through unconverted.
type PaystackGateway struct {
	secretKey string
}

func NewPaystackGateway(secretKey string) *PaystackGateway {
	return &PaystackGateway{secretKey: secretKey}
}

func (g *PaystackGateway) Name() string { return "paystack" }

type paystackWebhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string                 `json:"reference"`
		Amount    int64                  `json:"amount"`
		Currency  string                 `json:"currency"`
		PaidAt    string                 `json:"paid_at"`
		Metadata  map[string]interface{} `json:"metadata"`
	} `json:"data"`
}

func (g *PaystackGateway) VerifyAndParse(rawBody []byte, signatureHeader string) (*Event, error) {
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signatureHeader)) {
		return nil, ErrUnauthorized
	}

	var payload paystackWebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse paystack event: %w", err)
	}

	if payload.Event != "charge.success" {
		return &Event{Kind: EventIgnored, Type: payload.Event}, nil
	}

	occurredAt := time.Now().UTC()
	if t, err := time.Parse(time.RFC3339, payload.Data.PaidAt); err == nil {
		occurredAt = t.UTC()
	}

	bookingID := ""
	if v, ok := payload.Data.Metadata["bookingId"].(string); ok {
		bookingID = v
	}

	return &Event{
		Kind:      EventPaymentSucceeded,
		Type:      payload.Event,
		BookingID: bookingID,
		Transaction: models.PaymentTransaction{
			TransactionID: payload.Data.Reference,
			Amount:        payload.Data.Amount,
			Currency:      strings.ToUpper(payload.Data.Currency),
			Method:        g.Name(),
			Status:        models.TransactionCompleted,
			OccurredAt:    occurredAt,
			Notes:         "Paystack webhook - charge success",
		},
	}, nil
}
