package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madfam-org/tezca-gateway/internal/core"
)

// HTTPMetricsMiddleware records request counts, latency, and in-flight
// requests. With a noop or unknown recorder it degrades to a pass-through.
func HTTPMetricsMiddleware(r core.Recorder) gin.HandlerFunc {
	m, ok := r.(*Metrics)
	if !ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath())
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath uses the route pattern rather than the raw path so label
// cardinality stays bounded.
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}
