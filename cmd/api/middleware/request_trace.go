package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"dellerose/cmd/api/trace"
	"dellerose/internal/logger"
)

const headerRequestID = "X-Request-Id"

// RequestTrace guarantees every inbound request has a request id, stores it
// in the context, mirrors it on the response header, and logs the completed
// request.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		c.Writer.Header().Set(headerRequestID, requestID)

		c.Next()

		logger.InfoWithFields("completed request", logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
		})
	}
}
