package api

import (
	"crypto/subtle"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/utils"
)

// apiKeyMiddleware guards every route except the probes. All callers are
// backend services; there is no per-user identity at this layer.
func apiKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			presentError(c, errors.Wrap(models.UnAuthorizedError, "missing or invalid API key"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// contextLoggerMiddleware stores a request-scoped logger in the request
// context so that downstream code picks it up with LoggerFromContext.
func contextLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger.With("method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(
			utils.StoreLoggerInContext(c.Request.Context(), requestLogger))
		c.Next()
	}
}
