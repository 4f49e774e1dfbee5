package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sparklean/services/promo"
)

// PromoHandler exposes the promo claim lifecycle.
type PromoHandler struct {
	Service promo.PromoService
}

// ClaimHandler handles POST /api/promo/claim.
func (h *PromoHandler) ClaimHandler(c *gin.Context) {
	var input struct {
		Code        string `json:"code" binding:"required"`
		SessionID   string `json:"sessionId" binding:"required"`
		ServiceSlug string `json:"serviceSlug"`
		Email       string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	claim, err := h.Service.Claim(c.Request.Context(), input.Code, input.SessionID, input.ServiceSlug, input.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, claim)
}

// ActiveClaimHandler handles GET /api/promo/claim/:sessionID.
func (h *PromoHandler) ActiveClaimHandler(c *gin.Context) {
	claim, err := h.Service.ActiveClaim(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if claim == nil {
		c.JSON(http.StatusOK, gin.H{"claim": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

// RevokeClaimHandler handles DELETE /api/admin/promo/claims/:claimID.
func (h *PromoHandler) RevokeClaimHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// The body is optional for revocations.
	_ = c.ShouldBindJSON(&input)

	if err := h.Service.Revoke(c.Request.Context(), c.Param("claimID"), input.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "claim revoked"})
}

// ExpireLapsedHandler handles POST /api/admin/promo/expire-lapsed; the same
// sweep the background worker runs, callable on demand.
func (h *PromoHandler) ExpireLapsedHandler(c *gin.Context) {
	n, err := h.Service.ExpireLapsed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": n})
}
