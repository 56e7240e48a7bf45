package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Task rows are hard deleted so a deleted title can be reused immediately.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"title"`
	Description string       `gorm:"type:varchar(500);not null" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Deadline    time.Time    `gorm:"not null" json:"deadline"`
	CompletedAt *time.Time   `json:"completedAt"`
	AssignedTo  uint64       `gorm:"not null" json:"assignedTo"`
	CreatedBy   uint64       `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Assignee User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Creator  User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// IsOverdue reports whether the task is overdue relative to the given start
// of day: not completed, no completion timestamp, and past its deadline.
func (t Task) IsOverdue(startOfDay time.Time) bool {
	return t.Status != TaskStatusCompleted && t.CompletedAt == nil && t.Deadline.Before(startOfDay)
}
