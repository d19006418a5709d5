// Package respond maps domain errors onto HTTP responses.
package respond

import (
	"errors"
	"net/http"

	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"
	"menu-app/internal/translation"

	"github.com/gin-gonic/gin"
)

// Error writes the status and body for err and aborts the request.
func Error(c *gin.Context, log *logger.Logger, err error) {
	var (
		verr *translation.ValidationError
		cerr *translation.ConfigurationError
		serr *translation.ServiceError
	)
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.As(err, &cerr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "translation not configured", "details": cerr.Reason})
	case errors.As(err, &serr):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "translation service error", "details": serr.Error()})
	case errors.Is(err, repos.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, repos.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Already exists"})
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
