package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PaystackClient is a minimal REST client for the two Paystack endpoints
// the platform uses: transaction initialize and transaction verify.
type PaystackClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackClient(secretKey, baseURL string) *PaystackClient {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackClient{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// PaystackInitRequest starts a hosted checkout transaction. Amount is in
// minor units (kobo); metadata must carry the bookingId so webhooks can
// locate the booking.
type PaystackInitRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Currency    string                 `json:"currency,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// PaystackInitResult is what the frontend needs to send the customer to
// the hosted payment page.
type PaystackInitResult struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
}

// PaystackVerifiedTransaction is the subset of the verify response the
// reconciliation path consumes.
type PaystackVerifiedTransaction struct {
	Status    string
	Reference string
	Amount    int64
	Currency  string
	PaidAt    string
	BookingID string
}

func (c *PaystackClient) InitializeTransaction(ctx context.Context, req PaystackInitRequest) (*PaystackInitResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode paystack request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode paystack response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !decoded.Status {
		return nil, fmt.Errorf("paystack initialize rejected: %s", decoded.Message)
	}

	return &PaystackInitResult{
		AuthorizationURL: decoded.Data.AuthorizationURL,
		AccessCode:       decoded.Data.AccessCode,
		Reference:        decoded.Data.Reference,
	}, nil
}

func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*PaystackVerifiedTransaction, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Status    string                 `json:"status"`
			Reference string                 `json:"reference"`
			Amount    int64                  `json:"amount"`
			Currency  string                 `json:"currency"`
			PaidAt    string                 `json:"paid_at"`
			Metadata  map[string]interface{} `json:"metadata"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode paystack response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !decoded.Status {
		return nil, fmt.Errorf("paystack verify rejected: %s", decoded.Message)
	}

	bookingID := ""
	if v, ok := decoded.Data.Metadata["bookingId"].(string); ok {
		bookingID = v
	}

	return &PaystackVerifiedTransaction{
		Status:    decoded.Data.Status,
		Reference: decoded.Data.Reference,
		Amount:    decoded.Data.Amount,
		Currency:  decoded.Data.Currency,
		PaidAt:    decoded.Data.PaidAt,
		BookingID: bookingID,
	}, nil
}
