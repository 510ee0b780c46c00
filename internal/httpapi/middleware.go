package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paraglidehq/basen/internal/logging"
)

const headerRequestID = "X-Request-ID"

// requestLogger tags each request with an id, puts a child logger in the
// request context and logs the completed request.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}

		child := logger.With().
			Str(logging.FieldRequestID, reqID).
			Str(logging.FieldMethod, c.Request.Method).
			Str(logging.FieldPath, c.Request.URL.Path).
			Str(logging.FieldClientIP, c.ClientIP()).
			Logger()

		c.Header(headerRequestID, reqID)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), child))

		c.Next()

		child.Info().
			Int(logging.FieldStatus, c.Writer.Status()).
			Float64(logging.FieldLatency, float64(time.Since(start).Microseconds())/1000).
			Msg("request completed")
	}
}
