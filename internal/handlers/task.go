package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/dto"
	"github.com/workhive/task-management-api/internal/middleware"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/realtime"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/services"
	"github.com/workhive/task-management-api/internal/utils"
)

// TaskHandler handles task endpoints. Mutations push a realtime event to the
// other party: task changes go to the assignee, status changes go back to
// the creator.
type TaskHandler struct {
	taskService *services.TaskService
	publisher   realtime.Publisher
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, publisher realtime.Publisher) *TaskHandler {
	return &TaskHandler{taskService: taskService, publisher: publisher}
}

// Create handles POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid task data")
		return
	}

	assigneeID, err := h.taskService.CreateTask(services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.publisher.Publish(realtime.EventTaskUpdates, assigneeID)

	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully"})
}

// Update handles PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid task id")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid task data")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.publisher.Publish(realtime.EventTaskUpdates, task.AssignedTo)

	c.JSON(http.StatusOK, task)
}

// UpdateStatus handles PUT /tasks/updateStatus/:id
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid task id")
		return
	}

	var req dto.TaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid status data")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(id, req.Status, req.CompletedAt)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.publisher.Publish(realtime.EventStatusUpdate, task.CreatedBy)

	c.JSON(http.StatusOK, gin.H{"message": "Task status updated successfully"})
}

// Delete handles DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid task id")
		return
	}

	task, err := h.taskService.DeleteTask(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.publisher.Publish(realtime.EventTaskUpdates, task.AssignedTo)

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GetByID handles GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid task id")
		return
	}

	task, err := h.taskService.GetTaskByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func pageFilterFromQuery(c *gin.Context) repository.TaskPageFilter {
	return repository.TaskPageFilter{
		Status:        models.TaskStatus(c.Query("status")),
		Priority:      models.TaskPriority(c.Query("priority")),
		CounterpartID: queryUint64(c, "user"),
		Deadline:      queryDate(c, "deadline"),
		Opts:          utils.GetPageOptions(c, "title"),
	}
}

// ListCreated handles GET /tasks/pagedata, the manager's created tasks.
func (h *TaskHandler) ListCreated(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	filter := pageFilterFromQuery(c)
	tasks, meta, err := h.taskService.GetAllTasksPage(filter, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskPage{Tasks: tasks, Meta: meta})
}

// ListAssigned handles GET /tasks/assignedTasks, the member's assigned tasks.
func (h *TaskHandler) ListAssigned(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	filter := pageFilterFromQuery(c)
	tasks, meta, err := h.taskService.GetAssignedTasksPage(filter, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskPage{Tasks: tasks, Meta: meta})
}

// ListAll handles GET /tasks
func (h *TaskHandler) ListAll(c *gin.Context) {
	tasks, err := h.taskService.GetAllTasks()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// OverdueCreated handles GET /tasks/allOverdueTasks/:id, the manager's
// overdue tasks.
func (h *TaskHandler) OverdueCreated(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	tasks, err := h.taskService.GetAllOverdueTasks(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// OverdueAssigned handles GET /tasks/overdueTasks/:id, the member's overdue
// tasks.
func (h *TaskHandler) OverdueAssigned(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	tasks, err := h.taskService.GetOverdueTasks(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// SummaryCreated handles GET /tasks/allTaskSummary/:id
func (h *TaskHandler) SummaryCreated(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	summary, err := h.taskService.GetAllTaskSummary(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SummaryAssigned handles GET /tasks/taskSummary/:id
func (h *TaskHandler) SummaryAssigned(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	summary, err := h.taskService.GetTaskSummary(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ProgressCreated handles GET /tasks/allTaskProgress/:id
func (h *TaskHandler) ProgressCreated(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	series, err := h.taskService.GetAllTaskProgress(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": series})
}

// ProgressAssigned handles GET /tasks/taskProgress/:id
func (h *TaskHandler) ProgressAssigned(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	series, err := h.taskService.GetTaskProgress(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": series})
}

func reportFilterFromQuery(c *gin.Context, managerID uint64) repository.ReportFilter {
	return repository.ReportFilter{
		CreatedBy:  managerID,
		Status:     models.TaskStatus(c.Query("status")),
		AssignedTo: queryUint64(c, "assignedTo"),
		FirstDate:  queryDate(c, "firstDate"),
		LastDate:   queryDate(c, "lastDate"),
	}
}

// Report handles GET /tasks/report
func (h *TaskHandler) Report(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	tasks, report, err := h.taskService.GetReport(reportFilterFromQuery(c, userID))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "report": report})
}

// ExportReport handles GET /tasks/export, returning the filtered
// report as a CSV attachment.
func (h *TaskHandler) ExportReport(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authorization token missing")
		return
	}

	payload, err := h.taskService.ExportReportCSV(reportFilterFromQuery(c, userID))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "task-report.csv"))
	c.Data(http.StatusOK, "text/csv", []byte(payload))
}
