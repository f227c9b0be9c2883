package handlers

import (
	"log/slog"
	"net/http"

	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError writes a service error as a JSON response with the status
// carried in the apperrors chain. Client failures surface the error message;
// server faults respond with the fallback text only and log the cause.
func respondError(c *gin.Context, logger *slog.Logger, fallback string, err error) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
