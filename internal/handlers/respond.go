package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"homefind/api/internal/apperr"
)

// respondError maps the boundary error kinds to HTTP statuses. Transient and
// unknown errors are logged with detail but answered with a generic body so
// storage internals never reach a client.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrTransient):
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily_unavailable"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
