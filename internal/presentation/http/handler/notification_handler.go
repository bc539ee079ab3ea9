package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gsolanocr/comercio-api/internal/notify"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/dto/response"
)

// NotificationHandler handles notification center endpoints
type NotificationHandler struct {
	center *notify.Center
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// List returns the notifications, newest first
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	response.OK(c, "Notifications retrieved", gin.H{
		"notifications": h.center.List(),
		"unread":        h.center.UnreadCount(),
	})
}

// MarkAllRead flags every notification as read
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	h.center.MarkAllRead()
	response.OK(c, "All notifications marked as read", nil)
}

// Clear empties the notification list
// DELETE /api/v1/notifications
func (h *NotificationHandler) Clear(c *gin.Context) {
	h.center.Clear()
	response.OK(c, "Notifications cleared", nil)
}
