package routes

import (
	"njeyali/handlers"
	"njeyali/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes registers payment initiation, webhook and staff
// ledger endpoints.
func RegisterPaymentRoutes(r *gin.Engine, ph *handlers.PaymentHandler) {
	api := r.Group("/api/payments")
	{
		// Client-facing payment initiation.
		api.POST("/create-intent", ph.CreateStripeIntentHandler)
		api.POST("/paystack/initialize", ph.InitializePaystackHandler)
		api.GET("/paystack/verify/:reference", ph.VerifyPaystackHandler)

		// Gateway webhooks authenticate with signatures, not JWTs.
		api.POST("/webhook/:provider", ph.WebhookHandler)

		// Staff ledger operations.
		staff := api.Group("")
		staff.Use(middleware.StaffAuthMiddleware())
		staff.POST("/manual", ph.ManualPaymentHandler)
		staff.POST("/manual/verify", ph.VerifyManualPaymentHandler)
		staff.GET("/history/:bookingId", ph.PaymentHistoryHandler)
	}
}
