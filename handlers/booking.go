package handlers

import (
	"net/http"

	bookingRepo "njeyali/database/repository/booking"
	"njeyali/middleware"
	"njeyali/models"
	"njeyali/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking aggregate over HTTP.
type BookingHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// respondServiceError maps typed service errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	if se, ok := err.(*booking.ServiceError); ok {
		switch se.Code {
		case booking.CodeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": se.Message, "fields": se.Fields})
		case booking.CodeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": se.Message})
		case booking.CodeInvalidTransition:
			c.JSON(http.StatusConflict, gin.H{"error": se.Message})
		case booking.CodeConflict:
			c.JSON(http.StatusConflict, gin.H{"error": se.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": se.Message})
		}
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
}

// CreateBookingHandler accepts a customer service request submission.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.svc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler fetches a booking by id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingByReferenceHandler fetches a booking by reference number, the
// lookup customers use.
func (h *BookingHandler) GetBookingByReferenceHandler(c *gin.Context) {
	b, err := h.svc.GetBookingByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler returns bookings for the staff dashboard.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	filter := bookingRepo.ListFilter{
		ServiceType: models.ServiceType(c.Query("serviceType")),
		Status:      models.BookingStatus(c.Query("status")),
		AssignedTo:  c.Query("assignedTo"),
		Email:       c.Query("email"),
	}
	bookings, err := h.svc.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// TransitionHandler moves a booking through its lifecycle.
func (h *BookingHandler) TransitionHandler(c *gin.Context) {
	var input struct {
		Status models.BookingStatus `json:"status" binding:"required"`
		Reason string               `json:"reason"`
		Notes  string               `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.svc.Transition(c.Request.Context(), c.Param("id"), input.Status, middleware.Actor(c), input.Reason, input.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateMetadataHandler mutates priority, assignment, tags and notes.
func (h *BookingHandler) UpdateMetadataHandler(c *gin.Context) {
	var input booking.MetadataUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.svc.UpdateMetadata(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
