package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pointsledger/referral-backend/internal/services"
)

// ReferralHandler handles referral-related HTTP requests
type ReferralHandler struct {
	referralService *services.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(referralService *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// RecordReferral handles POST /referrals
func (h *ReferralHandler) RecordReferral(c *gin.Context) {
	var request struct {
		ReferrerID string `json:"referrer_id" binding:"required"`
		ReferredID string `json:"referred_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.referralService.RecordReferral(c.Request.Context(), request.ReferrerID, request.ReferredID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
