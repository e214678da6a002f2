package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"conversation-service/internal/service"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(c *gin.Context, code int, data any) {
	c.JSON(code, envelope{Status: statusSuccess, Data: data})
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, envelope{Status: statusSuccess, Message: message})
}

func respondError(c *gin.Context, code int, message string, cause error) {
	body := envelope{Status: statusError, Message: message}
	if cause != nil {
		body.Error = cause.Error()
	}
	c.JSON(code, body)
}

// respondServiceError maps a service error onto the HTTP error envelope.
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		respondError(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	respondError(c, statusForKind(svcErr.Kind), svcErr.Message, svcErr.Err)
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindInvalidArgument:
		return http.StatusBadRequest
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
