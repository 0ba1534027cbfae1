package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pointsledger/referral-backend/internal/apperrors"
)

// respondError maps the closed error taxonomy onto HTTP status codes.
// AlreadyReferred is a business outcome and gets its own body shape so
// clients can branch on it without parsing the message.
func respondError(c *gin.Context, err error) {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidArgument:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.CodeAlreadyReferred:
		c.JSON(http.StatusConflict, gin.H{"status": "already_referred", "message": err.Error()})
	case apperrors.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.CodeUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable: " + err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
