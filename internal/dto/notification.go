package dto

import (
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
)

// ReadStateRequest represents the mark-read/unread payload
type ReadStateRequest struct {
	Read *bool `json:"read" binding:"required"`
}

// NotificationPage is the paginated notification list envelope.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Meta          utils.PageMeta        `json:"meta"`
}
