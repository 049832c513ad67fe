package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shared-lists/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// GetNotifications returns the user's notifications, most recent first.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notifications.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
