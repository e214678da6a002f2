package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conversation-service/internal/middleware"
	"conversation-service/internal/telemetry"
)

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router gin.IRoutes, emitter *telemetry.AuditEmitter, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/audit-test", func(c *gin.Context) {
		if emitter == nil {
			respondError(c, http.StatusServiceUnavailable, "audit emitter not configured", nil)
			return
		}
		emitter.Emit(c.Request.Context(), telemetry.AuditEvent{
			Level:     "INFO",
			Action:    "debug.audit_test",
			Text:      "audit test",
			RequestID: middleware.RequestIDFromContext(c),
		})
		respondMessage(c, http.StatusOK, "audit event emitted")
	})
}
