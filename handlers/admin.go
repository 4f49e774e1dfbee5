package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "sparklean/database/repository/booking"
	"sparklean/models"
)

// AdminHandler serves the staff back-office booking endpoints.
type AdminHandler struct {
	Bookings bookingRepo.BookingRepository
}

// GetBookingHandler handles GET /api/admin/bookings/:reference.
func (h *AdminHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Bookings.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingStatusHandler handles PATCH /api/admin/bookings/:reference/status.
func (h *AdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	switch input.Status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": "unknown booking status"})
		return
	}

	b, err := h.Bookings.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Bookings.UpdateStatus(c.Request.Context(), b.ID, input.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking status updated", "status": input.Status})
}
