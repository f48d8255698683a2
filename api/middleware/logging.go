package middleware

import (
	"time"

	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogging assigns each request an ID, echoes it back in the
// X-Request-ID header and logs the request lifecycle.
func RequestLogging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		reqLogger := log.WithRequestID(requestID)
		c.Set("logger", reqLogger)

		start := time.Now()

		reqLogger.Info("Request started",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if userID, err := CurrentUserID(c); err == nil {
			fields = append(fields, "telegram_user_id", string(userID))
		}

		if status >= 500 {
			reqLogger.Error(append([]interface{}{"Request failed"}, fields...)...)
		} else {
			reqLogger.Info(append([]interface{}{"Request completed"}, fields...)...)
		}
	}
}
