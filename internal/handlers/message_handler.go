package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scoutline/scoutline-api/internal/dtos"
	"github.com/scoutline/scoutline-api/internal/services"
)

// MessageHandler serves the per-room message endpoints.
type MessageHandler struct {
	Messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{Messages: messages}
}

// ListMessages is the GET /rooms/:roomID/messages endpoint. Listing marks
// counterpart-sent messages read as a side effect.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	id, ok := roomID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	msgs, err := h.Messages.ListMessages(c.Request.Context(), id, act, page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendMessage is the POST /rooms/:roomID/messages endpoint.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req dtos.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	msg, err := h.Messages.SendMessage(c.Request.Context(), id, act, services.SendMessageInput{
		Content:     req.Content,
		Subject:     req.Subject,
		MessageType: req.MessageType,
		FileURLs:    req.FileURLs,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// UpdateMessageStatus is the PATCH /rooms/:roomID/messages endpoint.
func (h *MessageHandler) UpdateMessageStatus(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req dtos.UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if err := h.Messages.UpdateMessageStatus(c.Request.Context(), id, act, req.MessageIDs, req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
