package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/dto"
	"github.com/workhive/task-management-api/internal/middleware"
	"github.com/workhive/task-management-api/internal/realtime"
	"github.com/workhive/task-management-api/internal/services"
	"github.com/workhive/task-management-api/internal/utils"
)

// NotificationHandler handles notification endpoints. All routes operate on
// the authenticated user's own notifications.
type NotificationHandler struct {
	notificationService *services.NotificationService
	publisher           realtime.Publisher
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService, publisher realtime.Publisher) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, publisher: publisher}
}

// List handles GET /notifications/pagedata
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	opts := utils.GetPageOptions(c, "title")
	notifications, meta, err := h.notificationService.GetNotificationsPage(userID, opts)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NotificationPage{Notifications: notifications, Meta: meta})
}

// UnreadCount handles GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// SetReadState handles PUT /notifications/read/:id. The refreshed unread
// badge is pushed back to the acting user.
func (h *NotificationHandler) SetReadState(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid notification id")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	var req dto.ReadStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, `"read" is a required field`)
		return
	}

	notification, err := h.notificationService.MarkRead(id, *req.Read)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.publisher.Publish(realtime.EventNewNotification, userID)

	c.JSON(http.StatusOK, notification)
}
