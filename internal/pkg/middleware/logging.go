package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
)

// Logging logs every request with method, path, status, and latency.
// Health probes are skipped to keep the log readable.
func Logging(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"request_id", GetRequestID(c),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
			logger.Errorw("HTTP request", fields...)
			return
		}

		if c.Writer.Status() >= 500 {
			logger.Errorw("HTTP request", fields...)
		} else if c.Writer.Status() >= 400 {
			logger.Warnw("HTTP request", fields...)
		} else {
			logger.Infow("HTTP request", fields...)
		}
	}
}
