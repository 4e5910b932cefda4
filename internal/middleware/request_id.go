package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskbridge/taskbridge-api/internal/constants"
	"github.com/taskbridge/taskbridge-api/internal/logging"
)

// RequestLogger tags every request with a UUID, echoes it in the response
// header, and writes one structured access log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logging.Logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}
