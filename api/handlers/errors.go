package handlers

import (
	"net/http"

	"carecalendar-api/internal/common"
	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to HTTP status codes.
// Internal details never reach the client.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case common.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case common.IsAuthenticationError(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case common.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
