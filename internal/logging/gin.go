package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"conversation-service/internal/middleware"
)

// GinMiddleware attaches a request-scoped logger to the request context and
// logs each completed request. It expects middleware.RequestID to run first.
func GinMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		child := logger.With().
			Str(FieldRequestID, middleware.RequestIDFromContext(c)).
			Str(FieldMethod, c.Request.Method).
			Str(FieldPath, c.Request.URL.Path).
			Str(FieldClientIP, c.ClientIP()).
			Logger()
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), child))

		c.Next()

		status := c.Writer.Status()
		evt := child.Info()
		if status >= 500 {
			evt = child.Error()
		} else if status >= 400 {
			evt = child.Warn()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.Str(FieldRoute, c.FullPath()).
			Int(FieldStatus, status).
			Int64(FieldLatency, time.Since(start).Milliseconds()).
			Msg("request completed")
	}
}
