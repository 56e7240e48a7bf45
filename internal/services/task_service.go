package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/constants"
	"github.com/workhive/task-management-api/internal/email"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/realtime"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

// TaskService owns the task lifecycle, aggregation, and reporting. Creating
// or updating a task notifies the assignee over email, the notification log,
// and the realtime channel; none of those side channels can fail the
// operation itself.
type TaskService struct {
	taskRepo      repository.TaskRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
	mailer        email.Sender
	publisher     realtime.Publisher
	appName       string
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
	mailer email.Sender,
	publisher realtime.Publisher,
	appName string,
) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		notifications: notifications,
		mailer:        mailer,
		publisher:     publisher,
		appName:       appName,
	}
}

// TaskInput represents input for creating or updating a task
type TaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Status      models.TaskStatus
	Deadline    time.Time
	AssignedTo  uint64
	CreatedBy   uint64
}

// TaskSummary partitions a scope's tasks into four buckets. Pending and
// in-progress exclude tasks whose deadline has passed; those land in overdue
// instead, so the four buckets sum to total by construction.
type TaskSummary struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
	Total      int64 `json:"total"`
}

// ProgressPoint is one calendar day of the progress series.
type ProgressPoint struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// TaskReport is the breakdown of a filtered report set. Unlike TaskSummary
// the categories are computed independently and are not guaranteed to
// partition the total.
type TaskReport struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
}

func validateTask(input TaskInput) error {
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 || len(title) > 100 {
		return apperrors.NewValidation(`"title" should have a length between 3 and 100`)
	}
	if len(input.Description) < 10 || len(input.Description) > 500 {
		return apperrors.NewValidation(`"description" should have a length between 10 and 500`)
	}
	switch input.Priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
	default:
		return apperrors.NewValidation(`"priority" must be one of [Low, Medium, High]`)
	}
	switch input.Status {
	case "", models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted:
	default:
		return apperrors.NewValidation(`"status" must be one of [Pending, In Progress, Completed]`)
	}
	if input.Deadline.IsZero() {
		return apperrors.NewValidation(`"deadline" should be a valid date`)
	}
	if input.AssignedTo == 0 {
		return apperrors.NewValidation(`"assignedTo" is a required field`)
	}
	if input.CreatedBy == 0 {
		return apperrors.NewValidation(`"createdBy" is a required field`)
	}
	return nil
}

// checkDuplicateTitle is a fast-path pre-check; the unique index on title is
// the actual guarantee under concurrent creates.
func (s *TaskService) checkDuplicateTitle(title string, excludeID uint64) error {
	_, err := s.taskRepo.FindByTitle(title, excludeID)
	if err == nil {
		return apperrors.NewDuplicate("Task with this title already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check title: %w", err)
	}
	return nil
}

// CreateTask creates a task and notifies the assignee. Returns the assignee
// id so the API layer can push the task-updates event.
func (s *TaskService) CreateTask(input TaskInput) (uint64, error) {
	if err := validateTask(input); err != nil {
		return 0, err
	}
	if err := s.checkDuplicateTitle(input.Title, 0); err != nil {
		return 0, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      status,
		Deadline:    input.Deadline,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}

	member, err := s.userRepo.FindByID(task.AssignedTo)
	if err != nil {
		return 0, fmt.Errorf("failed to find assignee: %w", err)
	}
	manager, err := s.userRepo.FindByID(task.CreatedBy)
	if err != nil {
		return 0, fmt.Errorf("failed to find creator: %w", err)
	}

	title := "New Task"
	text := fmt.Sprintf("Hi %s, A new task %q has been assigned to you by %s with deadline %q.",
		member.Username, task.Title, manager.Username, task.Deadline.Format(constants.ReportLayout))
	html := fmt.Sprintf("<h1>Hi %s</h1><p>A new task %q has been assigned to you by %s with deadline %q.</p>",
		member.Username, task.Title, manager.Username, task.Deadline.Format(constants.ReportLayout))

	s.mailer.Send(member.Email, title, text, html)

	if _, err := s.notifications.CreateNotification(CreateNotificationInput{
		Title: title,
		Text:  text,
		For:   task.AssignedTo,
	}); err != nil {
		log.Printf("task service: creating notification for task %d: %v", task.ID, err)
	}

	s.publisher.Publish(realtime.EventNotification, task.AssignedTo)

	return task.AssignedTo, nil
}

// UpdateTask updates a task's fields and notifies the assignee again.
func (s *TaskService) UpdateTask(id uint64, input TaskInput) (*models.Task, error) {
	if err := validateTask(input); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateTitle(input.Title, id); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Priority = input.Priority
	if input.Status != "" {
		task.Status = input.Status
	}
	task.Deadline = input.Deadline
	task.AssignedTo = input.AssignedTo
	task.CreatedBy = input.CreatedBy

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.FindByID(task.ID, "Assignee", "Creator")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	title := "Task Updated"
	text := fmt.Sprintf("Hi %s, A task %q has been updated by %s. Please visit the \"Assigned Tasks\" list in the %q app to see the details.",
		updated.Assignee.Username, updated.Title, updated.Creator.Username, s.appName)
	html := fmt.Sprintf("<h1>Hi %s</h1><p>A task %q has been updated by %s. Please visit the \"Assigned Tasks\" list in the %q app to see the details.</p>",
		updated.Assignee.Username, updated.Title, updated.Creator.Username, s.appName)

	s.mailer.Send(updated.Assignee.Email, title, text, html)

	if _, err := s.notifications.CreateNotification(CreateNotificationInput{
		Title: title,
		Text:  text,
		For:   updated.AssignedTo,
	}); err != nil {
		log.Printf("task service: creating notification for task %d: %v", updated.ID, err)
	}

	s.publisher.Publish(realtime.EventNotification, updated.AssignedTo)

	return updated, nil
}

// UpdateTaskStatus updates only the status and completedAt columns. The
// completion timestamp is supplied by the caller, not computed here.
func (s *TaskService) UpdateTaskStatus(id uint64, status models.TaskStatus, completedAt *time.Time) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.UpdateStatus(id, status, completedAt); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	task.Status = status
	task.CompletedAt = completedAt
	return task, nil
}

// DeleteTask hard deletes a task and returns it so the API layer can push
// the task-updates event with the former assignee id.
func (s *TaskService) DeleteTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

// GetTaskByID returns a task by id.
func (s *TaskService) GetTaskByID(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UserHasTasks reports whether the user is referenced by any task as creator
// or assignee. UserService consults it before deleting a user.
func (s *TaskService) UserHasTasks(userID uint64) (bool, error) {
	return s.taskRepo.ExistsForUser(userID)
}

// GetAllTasksPage returns the manager's created tasks, paginated.
func (s *TaskService) GetAllTasksPage(filter repository.TaskPageFilter, managerID uint64) ([]models.Task, utils.PageMeta, error) {
	filter.Scope = repository.ManagerScope(managerID)
	tasks, itemCount, err := s.taskRepo.ListPage(filter)
	if err != nil {
		return nil, utils.PageMeta{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, utils.NewPageMeta(filter.Opts, itemCount), nil
}

// GetAssignedTasksPage returns the member's assigned tasks, paginated.
func (s *TaskService) GetAssignedTasksPage(filter repository.TaskPageFilter, memberID uint64) ([]models.Task, utils.PageMeta, error) {
	filter.Scope = repository.MemberScope(memberID)
	tasks, itemCount, err := s.taskRepo.ListPage(filter)
	if err != nil {
		return nil, utils.PageMeta{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, utils.NewPageMeta(filter.Opts, itemCount), nil
}

// GetAllTasks returns every task.
func (s *TaskService) GetAllTasks() ([]models.Task, error) {
	return s.taskRepo.ListAll()
}

// GetAllOverdueTasks returns the manager's overdue tasks.
func (s *TaskService) GetAllOverdueTasks(managerID uint64) ([]models.Task, error) {
	return s.taskRepo.ListOverdue(repository.ManagerScope(managerID), startOfToday(), "Assignee")
}

// GetOverdueTasks returns the member's overdue tasks.
func (s *TaskService) GetOverdueTasks(memberID uint64) ([]models.Task, error) {
	return s.taskRepo.ListOverdue(repository.MemberScope(memberID), startOfToday(), "Creator")
}

// GetAllTaskSummary returns the four-bucket summary of the manager's tasks.
func (s *TaskService) GetAllTaskSummary(managerID uint64) (TaskSummary, error) {
	return s.summary(repository.ManagerScope(managerID))
}

// GetTaskSummary returns the four-bucket summary of the member's tasks.
func (s *TaskService) GetTaskSummary(memberID uint64) (TaskSummary, error) {
	return s.summary(repository.MemberScope(memberID))
}

func (s *TaskService) summary(scope repository.TaskScope) (TaskSummary, error) {
	today := startOfToday()

	pending, err := s.taskRepo.CountByStatus(scope, models.TaskStatusPending, &today)
	if err != nil {
		return TaskSummary{}, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	inProgress, err := s.taskRepo.CountByStatus(scope, models.TaskStatusInProgress, &today)
	if err != nil {
		return TaskSummary{}, fmt.Errorf("failed to count in-progress tasks: %w", err)
	}
	completed, err := s.taskRepo.CountByStatus(scope, models.TaskStatusCompleted, nil)
	if err != nil {
		return TaskSummary{}, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	overdue, err := s.taskRepo.CountOverdue(scope, today)
	if err != nil {
		return TaskSummary{}, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	return TaskSummary{
		Pending:    pending,
		InProgress: inProgress,
		Completed:  completed,
		Overdue:    overdue,
		Total:      pending + inProgress + completed + overdue,
	}, nil
}

// GetAllTaskProgress returns the per-day progress series of the manager's
// tasks.
func (s *TaskService) GetAllTaskProgress(managerID uint64) ([]ProgressPoint, error) {
	return s.progress(repository.ManagerScope(managerID))
}

// GetTaskProgress returns the per-day progress series of the member's tasks.
func (s *TaskService) GetTaskProgress(memberID uint64) ([]ProgressPoint, error) {
	return s.progress(repository.MemberScope(memberID))
}

// progress buckets creation and completion counts per calendar day, then
// walks the complete inclusive range from the earliest creation to the
// latest completion (or creation), filling gaps with zero.
func (s *TaskService) progress(scope repository.TaskScope) ([]ProgressPoint, error) {
	rows, err := s.taskRepo.ListTimestamps(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load task timestamps: %w", err)
	}
	if len(rows) == 0 {
		return []ProgressPoint{}, nil
	}

	created := make(map[string]int)
	completed := make(map[string]int)

	first := dayOf(rows[0].CreatedAt)
	last := first
	for _, row := range rows {
		createdDay := dayOf(row.CreatedAt)
		created[createdDay.Format(constants.DayKeyLayout)]++

		endDay := createdDay
		if row.CompletedAt != nil {
			completedDay := dayOf(*row.CompletedAt)
			completed[completedDay.Format(constants.DayKeyLayout)]++
			endDay = completedDay
		}

		if createdDay.Before(first) {
			first = createdDay
		}
		if endDay.After(last) {
			last = endDay
		}
	}

	var series []ProgressPoint
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(constants.DayKeyLayout)
		series = append(series, ProgressPoint{
			Date:      key,
			Created:   created[key],
			Completed: completed[key],
		})
	}

	return series, nil
}

// GetReport returns the filtered task set plus its category breakdown.
func (s *TaskService) GetReport(filter repository.ReportFilter) ([]models.Task, TaskReport, error) {
	tasks, err := s.taskRepo.ListReport(filter)
	if err != nil {
		return nil, TaskReport{}, fmt.Errorf("failed to build report: %w", err)
	}

	today := startOfToday()
	report := TaskReport{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted {
			report.Completed++
		}
		if t.Status == models.TaskStatusPending && !t.Deadline.Before(today) {
			report.Pending++
		}
		if t.Status == models.TaskStatusInProgress && !t.Deadline.Before(today) {
			report.InProgress++
		}
		if t.IsOverdue(today) {
			report.Overdue++
		}
	}

	return tasks, report, nil
}

// ExportReportCSV renders the filtered task set as CSV with human-formatted
// dates.
func (s *TaskService) ExportReportCSV(filter repository.ReportFilter) (string, error) {
	tasks, err := s.taskRepo.ListReport(filter)
	if err != nil {
		return "", fmt.Errorf("failed to build report: %w", err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"Title", "Description", "Status", "Priority", "Created At", "Deadline", "Completed At", "Assigned To", "Created By"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range tasks {
		completedAt := ""
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.Format(constants.ReportLayout)
		}
		record := []string{
			t.Title,
			t.Description,
			string(t.Status),
			string(t.Priority),
			t.CreatedAt.Format(constants.ReportLayout),
			t.Deadline.Format(constants.ReportLayout),
			completedAt,
			t.Assignee.Username,
			t.Creator.Username,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	return sb.String(), nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
