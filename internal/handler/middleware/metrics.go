package middleware

import (
	"time"

	"shareit/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware labels requests by route template, not raw path.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
