package middleware

import (
	"time"

	"go-couture-api/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns a request id and logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	l := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		l.Info("request completed",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Audit records an admin action after the handler has run.
func Audit(audit bootstrap.AuditLogger, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		audit.Record(bootstrap.AuditEvent{
			Action:   action,
			ActorID:  c.GetString(CtxUserID),
			Resource: c.Request.URL.Path,
			Status:   c.Writer.Status(),
		})
	}
}
