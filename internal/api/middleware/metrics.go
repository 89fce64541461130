package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/pkg/metrics"
)

// Metrics records request count and latency per route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			// unmatched paths share one label so scanners cannot blow up cardinality
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
