package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"conversation-service/internal/middleware"
	"conversation-service/internal/service"
	"conversation-service/internal/telemetry"
)

// ConversationHandler serves the conversation endpoints.
type ConversationHandler struct {
	conversations service.ConversationService
	audit         *telemetry.AuditEmitter
}

// NewConversationHandler builds a ConversationHandler. audit may be nil.
func NewConversationHandler(conversations service.ConversationService, audit *telemetry.AuditEmitter) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		audit:         audit,
	}
}

// RegisterRoutes mounts the conversation endpoints on r.
func (h *ConversationHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/conversations", h.ListConversations)
	r.GET("/conversations/:id", h.GetConversation)
	r.DELETE("/conversations/:id", h.DeleteConversation)
	r.POST("/conversations/:id/messages", h.SendMessage)
}

// ListConversations returns the conversations of the user named by ?userId=.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	list, err := h.conversations.ListConversations(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// GetConversation returns one conversation with its full history.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	conv, err := h.conversations.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, conv)
}

type sendMessageRequest struct {
	SenderID      string  `json:"senderId"`
	Body          string  `json:"body"`
	SecondaryText *string `json:"secondaryText"`
}

// SendMessage stores a message sent by a participant.
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	msg, err := h.conversations.SendMessage(c.Request.Context(), service.SendMessageInput{
		RoomID:        c.Param("id"),
		SenderID:      req.SenderID,
		Body:          req.Body,
		SecondaryText: req.SecondaryText,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.emit(c, "message.sent", "message sent", msg.SenderID, &msg.ChatRoomID)
	respondData(c, http.StatusCreated, msg)
}

type deleteConversationRequest struct {
	UserID string `json:"userId"`
}

// DeleteConversation removes a conversation for everyone. The caller id is
// taken from the body or from ?userId=, see resolveUserID.
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	var req deleteConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	userID := resolveUserID(req.UserID, c.Query("userId"))

	if err := h.conversations.DeleteConversation(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	var roomID *int
	if id, err := strconv.Atoi(strings.TrimSpace(c.Param("id"))); err == nil {
		roomID = &id
	}
	h.emit(c, "conversation.deleted", "conversation deleted", userID, roomID)
	respondMessage(c, http.StatusOK, "conversation deleted")
}

// resolveUserID applies the caller-id precedence rule: a non-empty body
// value wins over the query parameter.
func resolveUserID(fromBody, fromQuery string) string {
	if strings.TrimSpace(fromBody) != "" {
		return fromBody
	}
	return fromQuery
}

// emit leaves room_id out of the record when roomID is nil.
func (h *ConversationHandler) emit(c *gin.Context, action, text, userID string, roomID *int) {
	h.audit.Emit(c.Request.Context(), telemetry.AuditEvent{
		Level:     "INFO",
		Action:    action,
		Text:      text,
		RequestID: middleware.RequestIDFromContext(c),
		UserID:    &userID,
		RoomID:    roomID,
	})
}
