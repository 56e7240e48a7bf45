package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/realtime"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/services"
	"github.com/workhive/task-management-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "router-suite-secret"

type nullMailer struct{}

func (nullMailer) Send(to, subject, text, html string) {}

// RouterTestSuite exercises the HTTP surface end to end over an in-memory
// database.
type RouterTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	admin   *models.User
	manager *models.User
	member  *models.User
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&models.Designation{},
		&models.Department{},
		&models.User{},
		&models.Task{},
		&models.Notification{},
	))
	s.db = db

	designationIDs := map[string]uint64{}
	for _, name := range []string{"Admin", "Manager", "Member"} {
		d := models.Designation{Name: name}
		s.Require().NoError(db.Create(&d).Error)
		designationIDs[name] = d.ID
	}
	dept := models.Department{Name: "Engineering"}
	s.Require().NoError(db.Create(&dept).Error)

	s.admin = s.seedUser(designationIDs["Admin"], dept.ID, "routeadmin")
	s.manager = s.seedUser(designationIDs["Manager"], dept.ID, "routemanager")
	s.member = s.seedUser(designationIDs["Member"], dept.ID, "routemember")

	hub := realtime.NewHub()
	go hub.Run()

	mailer := nullMailer{}
	imageDir := s.T().TempDir()

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifications := services.NewNotificationService(repository.NewNotificationRepository(db), hub)
	taskService := services.NewTaskService(taskRepo, userRepo, notifications, mailer, hub, "Task Management System")
	userService := services.NewUserService(userRepo, mailer, imageDir, "Task Management System")
	userService.SetTaskChecker(taskService)
	authService := services.NewAuthService(userRepo, userService, mailer, testSecret, "Task Management System")
	designationService := services.NewDesignationService(repository.NewDesignationRepository(db), userRepo)
	departmentService := services.NewDepartmentService(repository.NewDepartmentRepository(db), userRepo)

	s.router = gin.New()
	RegisterRoutes(s.router, Handlers{
		Auth:         NewAuthHandler(authService, imageDir),
		Task:         NewTaskHandler(taskService, hub),
		User:         NewUserHandler(userService, imageDir),
		Notification: NewNotificationHandler(notifications, hub),
		Designation:  NewDesignationHandler(designationService),
		Department:   NewDepartmentHandler(departmentService),
	}, hub, testSecret, imageDir)
}

var routerUserSeq int

func (s *RouterTestSuite) seedUser(designationID, departmentID uint64, username string) *models.User {
	s.T().Helper()
	routerUserSeq++

	hash, err := bcrypt.GenerateFromPassword([]byte("secret@123"), bcrypt.MinCost)
	s.Require().NoError(err)

	user := models.User{
		FirstName:      "Route",
		LastName:       "Tester",
		Username:       username,
		Email:          username + "@example.com",
		EmployeeNumber: fmt.Sprintf("RT-%04d", routerUserSeq),
		PasswordHash:   string(hash),
		DesignationID:  designationID,
		DepartmentID:   departmentID,
		Image:          fmt.Sprintf("%d-%s.png", routerUserSeq, username),
		Approved:       true,
	}
	s.Require().NoError(s.db.Create(&user).Error)

	var loaded models.User
	s.Require().NoError(s.db.Preload("Designation").First(&loaded, user.ID).Error)
	return &loaded
}

func (s *RouterTestSuite) tokenFor(user *models.User) string {
	s.T().Helper()
	signed, _, err := token.Sign(testSecret, user.ID, user.Designation.Name, time.Now())
	s.Require().NoError(err)
	return signed
}

func (s *RouterTestSuite) request(method, path string, body any, as *models.User) *httptest.ResponseRecorder {
	s.T().Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+s.tokenFor(as))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) createTask(title string) {
	s.T().Helper()
	w := s.request(http.MethodPost, "/tasks", gin.H{
		"title":       title,
		"description": "A description long enough to pass validation",
		"priority":    "High",
		"deadline":    time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"assignedTo":  s.member.ID,
	}, s.manager)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *RouterTestSuite) TestLogin() {
	w := s.request(http.MethodPost, "/auth/login", gin.H{
		"email":    s.manager.Email,
		"password": "secret@123",
	}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.NotEmpty(resp.Token)
	s.Equal(s.manager.ID, resp.User.ID)

	w = s.request(http.MethodPost, "/auth/login", gin.H{
		"email":    s.manager.Email,
		"password": "wrong",
	}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.JSONEq(`{"message":"Incorrect Password"}`, w.Body.String())
}

func (s *RouterTestSuite) TestCreateTask() {
	s.createTask("Ship the release notes")

	var task models.Task
	s.Require().NoError(s.db.Where("title = ?", "Ship the release notes").First(&task).Error)
	s.Equal(s.manager.ID, task.CreatedBy)
	s.Equal(models.TaskStatusPending, task.Status)
}

func (s *RouterTestSuite) TestCreateTaskRoleGate() {
	w := s.request(http.MethodPost, "/tasks", gin.H{"title": "Should not exist"}, s.member)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/tasks", gin.H{"title": "Should not exist"}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestTaskPageEnvelope() {
	s.createTask("Envelope check one")
	s.createTask("Envelope check two")

	w := s.request(http.MethodGet, "/tasks/pagedata?page=1&take=1", nil, s.manager)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Tasks []models.Task `json:"tasks"`
		Meta  struct {
			Page        int   `json:"page"`
			Take        int   `json:"take"`
			ItemCount   int64 `json:"itemCount"`
			PageCount   int   `json:"pageCount"`
			HasNextPage bool  `json:"hasNextPage"`
		} `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Tasks, 1)
	s.Equal(int64(2), resp.Meta.ItemCount)
	s.Equal(2, resp.Meta.PageCount)
	s.True(resp.Meta.HasNextPage)
}

func (s *RouterTestSuite) TestAssignedTasksVisibleToMember() {
	s.createTask("Visible to assignee")

	w := s.request(http.MethodGet, "/tasks/assignedTasks", nil, s.member)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "Visible to assignee")

	// The assignee view is gated to members.
	w = s.request(http.MethodGet, "/tasks/assignedTasks", nil, s.manager)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestStatusUpdate() {
	s.createTask("Status transition subject")
	var task models.Task
	s.Require().NoError(s.db.Where("title = ?", "Status transition subject").First(&task).Error)

	completedAt := time.Now().Format(time.RFC3339)
	w := s.request(http.MethodPut, fmt.Sprintf("/tasks/updateStatus/%d", task.ID), gin.H{
		"status":      "Completed",
		"completedAt": completedAt,
	}, s.member)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.JSONEq(`{"message":"Task status updated successfully"}`, w.Body.String())

	s.Require().NoError(s.db.First(&task, task.ID).Error)
	s.Equal(models.TaskStatusCompleted, task.Status)
	s.NotNil(task.CompletedAt)
}

func (s *RouterTestSuite) TestReportExportIsCSV() {
	s.createTask("Exported row")

	w := s.request(http.MethodGet, "/tasks/export", nil, s.manager)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("text/csv", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "task-report.csv")
	s.Contains(w.Body.String(), "Title,Description,Status,Priority,Created At,Deadline,Completed At,Assigned To,Created By")
	s.Contains(w.Body.String(), "Exported row")
}

func (s *RouterTestSuite) TestDuplicateTaskTitle() {
	s.createTask("Unique once")

	w := s.request(http.MethodPost, "/tasks", gin.H{
		"title":       "Unique once",
		"description": "A description long enough to pass validation",
		"priority":    "Low",
		"deadline":    time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"assignedTo":  s.member.ID,
	}, s.manager)
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"message":"Task with this title already exists"}`, w.Body.String())
}

func (s *RouterTestSuite) TestPublicCatalogs() {
	w := s.request(http.MethodGet, "/departments", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Engineering")

	w = s.request(http.MethodGet, "/designations", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Manager")
}

func (s *RouterTestSuite) TestDesignationCRUDRequiresAdmin() {
	w := s.request(http.MethodPost, "/designations", gin.H{"name": "Lead"}, s.manager)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/designations", gin.H{"name": "Lead"}, s.admin)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *RouterTestSuite) TestNotificationsFlow() {
	s.createTask("Notify on creation")

	w := s.request(http.MethodGet, "/notifications/pagedata", nil, s.member)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var page struct {
		Notifications []models.Notification `json:"notifications"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	s.Require().Len(page.Notifications, 1)
	s.Equal("New Task", page.Notifications[0].Title)

	w = s.request(http.MethodGet, "/notifications/unread-count", nil, s.member)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"count":1}`, w.Body.String())

	w = s.request(http.MethodPut, fmt.Sprintf("/notifications/read/%d", page.Notifications[0].ID), gin.H{"read": true}, s.member)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodGet, "/notifications/unread-count", nil, s.member)
	s.JSONEq(`{"count":0}`, w.Body.String())
}

func (s *RouterTestSuite) TestGetUserByID() {
	w := s.request(http.MethodGet, fmt.Sprintf("/users/%d", s.member.ID), nil, s.member)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user models.User
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	s.Equal(s.member.ID, user.ID)
	s.Equal("Member", user.Designation.Name)
}

func (s *RouterTestSuite) TestTaskSummaryByUser() {
	s.createTask("Summary subject")

	w := s.request(http.MethodGet, fmt.Sprintf("/tasks/taskSummary/%d", s.member.ID), nil, s.member)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var summary struct {
		Total   int64 `json:"total"`
		Pending int64 `json:"pending"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	s.Equal(int64(1), summary.Total)
	s.Equal(int64(1), summary.Pending)

	w = s.request(http.MethodGet, fmt.Sprintf("/tasks/allTaskSummary/%d", s.manager.ID), nil, s.manager)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	s.Equal(int64(1), summary.Total)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
