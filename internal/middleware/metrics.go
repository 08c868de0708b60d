package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/service"
)

const anonymousRole = "anonymous"

// Metrics returns middleware that captures request metrics using the provided service.
// The role label is read after the handler chain so JWT and OptionalJWT have run.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, roleLabel(c), c.Writer.Status(), duration)
	}
}

func roleLabel(c *gin.Context) string {
	principal := PrincipalFromContext(c)
	if principal == nil || principal.Role == "" {
		return anonymousRole
	}
	return string(principal.Role)
}
