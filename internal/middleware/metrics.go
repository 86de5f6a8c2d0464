package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/pkg/metrics"
)

// Metrics records request count and latency per route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			// keeps label cardinality bounded for SPA and unknown paths
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
