package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sparklean/models"
	"sparklean/services/booking"
	"sparklean/utils"
)

// BookingHandler exposes the wizard endpoints over the booking flow service.
type BookingHandler struct {
	Service booking.BookingFlowService
}

// StartSessionHandler handles POST /api/booking/session.
func (h *BookingHandler) StartSessionHandler(c *gin.Context) {
	draft, err := h.Service.StartSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GetDraftHandler handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetDraftHandler(c *gin.Context) {
	draft, err := h.Service.GetDraft(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft":        draft,
		"earliestStep": booking.EarliestIncompleteStep(draft),
	})
}

// SetServiceHandler handles PUT /api/booking/session/:sessionID/service.
func (h *BookingHandler) SetServiceHandler(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Service.SetService(c.Request.Context(), c.Param("sessionID"), input.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetDetailsHandler handles PUT /api/booking/session/:sessionID/details.
func (h *BookingHandler) SetDetailsHandler(c *gin.Context) {
	var input struct {
		Bedrooms  int      `json:"bedrooms"`
		Bathrooms int      `json:"bathrooms"`
		ExtraIDs  []string `json:"extraIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Service.SetDetails(c.Request.Context(), c.Param("sessionID"), input.Bedrooms, input.Bathrooms, input.ExtraIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetScheduleHandler handles PUT /api/booking/session/:sessionID/schedule.
func (h *BookingHandler) SetScheduleHandler(c *gin.Context) {
	var input struct {
		Date      string           `json:"date" binding:"required"`
		Time      string           `json:"time" binding:"required"`
		Frequency models.Frequency `json:"frequency"`
		Location  string           `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Service.SetSchedule(c.Request.Context(), c.Param("sessionID"), input.Date, input.Time, input.Frequency, input.Location)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetCleanerHandler handles PUT /api/booking/session/:sessionID/cleaner.
func (h *BookingHandler) SetCleanerHandler(c *gin.Context) {
	var input struct {
		CleanerID string `json:"cleanerId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Service.SetCleaner(c.Request.Context(), c.Param("sessionID"), input.CleanerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetContactHandler handles PUT /api/booking/session/:sessionID/contact.
func (h *BookingHandler) SetContactHandler(c *gin.Context) {
	var input struct {
		Email               string `json:"email"`
		SpecialInstructions string `json:"specialInstructions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Service.SetContact(c.Request.Context(), c.Param("sessionID"), input.Email, input.SpecialInstructions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ResetSessionHandler handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) ResetSessionHandler(c *gin.Context) {
	if err := h.Service.Reset(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking session reset"})
}

// AvailableSlotsHandler handles GET /api/booking/slots?date=YYYY-MM-DD.
func (h *BookingHandler) AvailableSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}
	slots, err := h.Service.AvailableSlots(date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// SubmitHandler handles POST /api/booking/session/:sessionID/submit.
func (h *BookingHandler) SubmitHandler(c *gin.Context) {
	result, err := h.Service.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ConfirmationHandler handles GET /api/booking/confirmation.
// Query params: ref (payment reference) and session.
func (h *BookingHandler) ConfirmationHandler(c *gin.Context) {
	ref := c.Query("ref")
	if ref == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "ref query parameter is required")
		return
	}
	view, err := h.Service.Resolve(c.Request.Context(), c.Query("session"), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
