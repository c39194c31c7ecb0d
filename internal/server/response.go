package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DjangoClawd/superbowl-boxes/internal/service"
	"github.com/DjangoClawd/superbowl-boxes/internal/storage"
)

// writeError maps engine errors to HTTP statuses: validation 400, missing
// records 404, rejected state transitions 409, anything else 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPoolLocked),
		errors.Is(err, service.ErrAlreadyLocked),
		errors.Is(err, service.ErrNotLocked),
		errors.Is(err, service.ErrResultsRecorded),
		errors.Is(err, service.ErrNumbersNotAssigned):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
