package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"njeyali/middleware"
	"njeyali/models"
	"njeyali/services/booking"
	"njeyali/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentHandler exposes payment initiation, webhooks and the staff-side
// ledger operations.
type PaymentHandler struct {
	intents    *payment.IntentService
	reconciler *payment.Reconciler
	bookings   booking.BookingService
	logger     *zap.Logger
}

func NewPaymentHandler(intents *payment.IntentService, reconciler *payment.Reconciler, bookings booking.BookingService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{intents: intents, reconciler: reconciler, bookings: bookings, logger: logger}
}

// CreateStripeIntentHandler opens a Stripe payment intent for a booking.
func (h *PaymentHandler) CreateStripeIntentHandler(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.intents.CreateStripeIntent(c.Request.Context(), input.BookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// InitializePaystackHandler starts a Paystack hosted checkout for a booking.
func (h *PaymentHandler) InitializePaystackHandler(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.intents.InitializePaystack(c.Request.Context(), input.BookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// VerifyPaystackHandler confirms a Paystack transaction server-side.
func (h *PaymentHandler) VerifyPaystackHandler(c *gin.Context) {
	b, err := h.intents.VerifyPaystack(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "payment": b.Payment})
}

// WebhookHandler receives asynchronous gateway notifications. The provider
// name comes from the route; the raw body must reach the verifier
// untouched. Authenticated deliveries are acknowledged unless the ledger
// write itself failed, in which case a non-2xx asks the provider to retry.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	provider := c.Param("provider")

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		signature = c.GetHeader("x-paystack-signature")
	}

	err = h.reconciler.HandleWebhook(c.Request.Context(), provider, rawBody, signature)
	if err != nil {
		if errors.Is(err, payment.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
		h.logger.Error("webhook processing failed",
			zap.String("provider", provider),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// ManualPaymentHandler records an offline payment (bank transfer, cash).
// Manual entries stay pending and do not count toward paidAmount until a
// staff member verifies them.
func (h *PaymentHandler) ManualPaymentHandler(c *gin.Context) {
	var input struct {
		BookingID     string `json:"bookingId" binding:"required"`
		TransactionID string `json:"transactionId"`
		Amount        int64  `json:"amount" binding:"required"`
		Currency      string `json:"currency"`
		Method        string `json:"method"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	txID := input.TransactionID
	if txID == "" {
		txID = fmt.Sprintf("MANUAL-%s", uuid.New().String())
	}
	method := input.Method
	if method == "" {
		method = "bank-transfer"
	}

	b, err := h.bookings.RecordTransaction(c.Request.Context(), input.BookingID, models.PaymentTransaction{
		TransactionID: txID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		Method:        method,
		Status:        models.TransactionPending,
		OccurredAt:    time.Now().UTC(),
		Notes:         input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment recorded. Awaiting verification.",
		"payment": b.Payment,
	})
}

// VerifyManualPaymentHandler promotes a pending manual entry to completed.
func (h *PaymentHandler) VerifyManualPaymentHandler(c *gin.Context) {
	var input struct {
		BookingID     string `json:"bookingId" binding:"required"`
		TransactionID string `json:"transactionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.bookings.VerifyTransaction(c.Request.Context(), input.BookingID, input.TransactionID, middleware.Actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": b.Payment})
}

// PaymentHistoryHandler returns the ledger for one booking.
func (h *PaymentHandler) PaymentHistoryHandler(c *gin.Context) {
	b, err := h.bookings.GetBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalAmount":  b.Payment.TotalAmount,
		"paidAmount":   b.Payment.PaidAmount,
		"balance":      b.Payment.Balance(),
		"status":       b.Payment.Status,
		"transactions": b.Payment.Transactions,
	})
}
