package routes

import (
	"njeyali/handlers"
	"njeyali/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking aggregate.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		// Public: submission and reference lookup.
		api.POST("", bh.CreateBookingHandler)
		api.GET("/reference/:reference", bh.GetBookingByReferenceHandler)

		// Staff operations.
		staff := api.Group("")
		staff.Use(middleware.StaffAuthMiddleware())
		staff.GET("", bh.ListBookingsHandler)
		staff.GET("/:id", bh.GetBookingHandler)
		staff.PUT("/:id/status", bh.TransitionHandler)
		staff.PATCH("/:id", bh.UpdateMetadataHandler)
	}
}
