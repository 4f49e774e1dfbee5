package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "sparklean/database/repository/booking"
	promoRepo "sparklean/database/repository/promo"
	"sparklean/services/booking"
	"sparklean/services/catalog"
	"sparklean/services/promo"
)

// respondError maps service failures onto HTTP statuses with a stable error
// code the frontend branches on. Anything unrecognized is a 500 and gets
// logged; typed failures are the caller's problem and are not.
func respondError(c *gin.Context, err error) {
	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "validationError",
			"field": ve.Field, "message": ve.Message,
		})
		return
	}

	var ise *booking.IncompleteStepError
	if errors.As(err, &ise) {
		c.JSON(http.StatusConflict, gin.H{
			"error":        "incompleteStep",
			"requiredStep": string(ise.Required),
		})
		return
	}

	var bnf *booking.BookingNotFoundError
	if errors.As(err, &bnf) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":            "bookingNotFound",
			"paymentReference": bnf.PaymentReference,
		})
		return
	}

	var pe *promo.PromoError
	if errors.As(err, &pe) {
		status := http.StatusConflict
		if pe.Code == "codeInvalid" || pe.Code == "scopeMismatch" {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": pe.Code, "message": pe.Message})
		return
	}

	var me *catalog.MismatchError
	if errors.As(err, &me) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "catalogMismatch",
			"kind":  me.Kind, "id": me.ID,
		})
		return
	}

	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "bookingNotFound", "message": "booking not found"})
		return
	}

	if errors.Is(err, promoRepo.ErrClaimNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "claimNotFound", "message": "promo claim not found"})
		return
	}

	if errors.Is(err, booking.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sessionNotFound", "message": "booking session not found or expired"})
		return
	}

	zap.L().Error("unhandled request failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "something went wrong"})
}
