package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/pkg/middleware/device"
)

// Audit records an audit line for every successful request on the route.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("audit")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("device_id", device.Value(c)),
		}
		if principal := PrincipalFromContext(c); principal != nil {
			fields = append(fields, zap.String("principal_id", principal.ID), zap.String("role", string(principal.Role)))
		}
		logger.Info("audit", fields...)
	}
}
