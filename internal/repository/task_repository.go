package repository

import (
	"strings"
	"time"

	"github.com/workhive/task-management-api/internal/database"
	"github.com/workhive/task-management-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// taskSearchColumns whitelists the columns a listing may search by.
var taskSearchColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"status":      "status",
	"priority":    "priority",
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByTitle finds a task by exact title, excluding excludeID when non-zero
func (r *GormTaskRepository) FindByTitle(title string, excludeID uint64) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("title = ?", title)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) scoped(scope TaskScope) *gorm.DB {
	query := r.db.Model(&models.Task{})
	if scope.CreatedBy != nil {
		query = query.Where("created_by = ?", *scope.CreatedBy)
	}
	if scope.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *scope.AssignedTo)
	}
	return query
}

// ListPage retrieves tasks with filtering and pagination, newest first
func (r *GormTaskRepository) ListPage(filter TaskPageFilter) ([]models.Task, int64, error) {
	query := r.scoped(filter.Scope)

	if filter.Opts.Search != "" {
		if col, ok := taskSearchColumns[filter.Opts.SearchBy]; ok {
			query = query.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(filter.Opts.Search)+"%")
		}
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.CounterpartID != nil {
		if filter.Scope.CreatedBy != nil {
			query = query.Where("assigned_to = ?", *filter.CounterpartID)
		} else {
			query = query.Where("created_by = ?", *filter.CounterpartID)
		}
	}
	if filter.Deadline != nil {
		day := filter.Deadline.Truncate(24 * time.Hour)
		query = query.Where("deadline >= ? AND deadline < ?", day, day.AddDate(0, 0, 1))
	}

	var itemCount int64
	if err := query.Count(&itemCount).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(filter.Opts)).
		Preload("Assignee").
		Preload("Creator").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, itemCount, nil
}

// ListAll retrieves every task
func (r *GormTaskRepository) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOverdue retrieves the scope's overdue tasks
func (r *GormTaskRepository) ListOverdue(scope TaskScope, startOfDay time.Time, preload ...string) ([]models.Task, error) {
	query := r.scoped(scope).
		Where("status <> ?", models.TaskStatusCompleted).
		Where("completed_at IS NULL").
		Where("deadline < ?", startOfDay)
	for _, p := range preload {
		query = query.Preload(p)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatus counts the scope's tasks in a status, optionally restricted
// to deadlines on or after deadlineFrom
func (r *GormTaskRepository) CountByStatus(scope TaskScope, status models.TaskStatus, deadlineFrom *time.Time) (int64, error) {
	query := r.scoped(scope).Where("status = ?", status)
	if deadlineFrom != nil {
		query = query.Where("deadline >= ?", *deadlineFrom)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountOverdue counts the scope's overdue tasks
func (r *GormTaskRepository) CountOverdue(scope TaskScope, startOfDay time.Time) (int64, error) {
	var count int64
	err := r.scoped(scope).
		Where("status <> ?", models.TaskStatusCompleted).
		Where("completed_at IS NULL").
		Where("deadline < ?", startOfDay).
		Count(&count).Error
	return count, err
}

// ListTimestamps retrieves creation/completion timestamps for the scope
func (r *GormTaskRepository) ListTimestamps(scope TaskScope) ([]TaskTimestamps, error) {
	var rows []TaskTimestamps
	err := r.scoped(scope).
		Select("created_at", "completed_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListReport retrieves the filtered report set, newest first
func (r *GormTaskRepository) ListReport(filter ReportFilter) ([]models.Task, error) {
	query := r.db.Model(&models.Task{}).Where("created_by = ?", filter.CreatedBy)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.FirstDate != nil {
		query = query.Where("created_at >= ?", *filter.FirstDate)
	}
	if filter.LastDate != nil {
		// Inclusive through the last millisecond of the day.
		end := filter.LastDate.Truncate(24 * time.Hour).Add(24*time.Hour - time.Millisecond)
		query = query.Where("created_at <= ?", end)
	}

	var tasks []models.Task
	err := query.
		Order("created_at DESC").
		Preload("Assignee").
		Preload("Creator").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateStatus updates only the status and completedAt columns
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus, completedAt *time.Time) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Select("status", "completed_at").
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		}).Error
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.Task{}, id).Error
}

// ExistsForUser reports whether any task references the user as creator or
// assignee
func (r *GormTaskRepository) ExistsForUser(userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("created_by = ? OR assigned_to = ?", userID, userID).
		Count(&count).Error
	return count > 0, err
}
