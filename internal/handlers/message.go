package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/middleware"
	"github.com/taskbridge/taskbridge-api/internal/services"
)

// MessageHandler handles the support chat endpoints.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListMessages returns the caller's support conversation, oldest first.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	messages, err := h.messageService.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage stores the caller's message and returns the assistant reply.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SendRequest struct {
		Content string `json:"content" binding:"required"`
	}
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reply, err := h.messageService.Send(userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}
