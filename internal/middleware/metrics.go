package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/recipeshare/backend/internal/metrics"
)

// Metrics records request counts and latency labelled by route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		done := metrics.RequestStarted(c.Request.Method)
		c.Next()
		done(c.FullPath(), c.Writer.Status())
	}
}
