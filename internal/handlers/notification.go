package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/middleware"
	"github.com/taskbridge/taskbridge-api/internal/services"
)

// NotificationHandler handles the caller's notification feed.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	notifications, err := h.notificationService.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount returns how many of the caller's notifications are unread.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
