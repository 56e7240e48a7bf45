package dto

import (
	"time"

	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
)

// TaskRequest represents the create/update task payload
type TaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	Deadline    time.Time           `json:"deadline"`
	AssignedTo  uint64              `json:"assignedTo"`
}

// TaskStatusRequest represents the status transition payload. CompletedAt is
// supplied by the client and stored verbatim.
type TaskStatusRequest struct {
	Status      models.TaskStatus `json:"status" binding:"required"`
	CompletedAt *time.Time        `json:"completedAt"`
}

// TaskPage is the paginated task list envelope.
type TaskPage struct {
	Tasks []models.Task  `json:"tasks"`
	Meta  utils.PageMeta `json:"meta"`
}
