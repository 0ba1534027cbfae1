package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pointsledger/referral-backend/internal/services"
)

// PointsHandler handles balance-related HTTP requests
type PointsHandler struct {
	pointsService *services.PointsService
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(pointsService *services.PointsService) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
	}
}

// AddPoints handles POST /points
func (h *PointsHandler) AddPoints(c *gin.Context) {
	var request struct {
		UserID string `json:"user_id" binding:"required"`
		Amount int64  `json:"amount"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.pointsService.AddPoints(c.Request.Context(), request.UserID, request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": request.UserID, "balance": balance})
}

// GetBalance handles GET /points/:user_id
func (h *PointsHandler) GetBalance(c *gin.Context) {
	userID := c.Param("user_id")

	points, err := h.pointsService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "points": points})
}
