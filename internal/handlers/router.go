package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/constants"
	"github.com/workhive/task-management-api/internal/middleware"
	"github.com/workhive/task-management-api/internal/realtime"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Auth         *AuthHandler
	Task         *TaskHandler
	User         *UserHandler
	Notification *NotificationHandler
	Designation  *DesignationHandler
	Department   *DepartmentHandler
}

// RegisterRoutes wires every endpoint onto the engine. The designation and
// department catalogs and the registration endpoints stay public so the
// signup form can render; everything else sits behind the token check with
// per-route designation gates.
func RegisterRoutes(r *gin.Engine, h Handlers, hub *realtime.Hub, jwtSecret, imageDir string) {
	r.Static("/images", imageDir)
	r.GET("/ws", hub.ServeWS)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}

	requireAuth := middleware.RequireAuth(jwtSecret)
	adminOnly := middleware.RequireDesignation(constants.DesignationAdmin)
	managerOnly := middleware.RequireDesignation(constants.DesignationManager)
	memberOnly := middleware.RequireDesignation(constants.DesignationMember)

	designations := r.Group("/designations")
	{
		designations.GET("", h.Designation.ListAll)
		designations.GET("/pagedata", requireAuth, adminOnly, h.Designation.List)
		designations.GET("/:id", requireAuth, adminOnly, h.Designation.GetByID)
		designations.POST("", requireAuth, adminOnly, h.Designation.Create)
		designations.PUT("/:id", requireAuth, adminOnly, h.Designation.Update)
		designations.DELETE("/:id", requireAuth, adminOnly, h.Designation.Delete)
	}

	departments := r.Group("/departments")
	{
		departments.GET("", h.Department.ListAll)
		departments.GET("/pagedata", requireAuth, adminOnly, h.Department.List)
		departments.GET("/:id", requireAuth, adminOnly, h.Department.GetByID)
		departments.POST("", requireAuth, adminOnly, h.Department.Create)
		departments.PUT("/:id", requireAuth, adminOnly, h.Department.Update)
		departments.DELETE("/:id", requireAuth, adminOnly, h.Department.Delete)
	}

	users := r.Group("/users", requireAuth)
	{
		users.GET("", adminOnly, h.User.ListAll)
		users.GET("/pagedata", adminOnly, h.User.List)
		users.GET("/userSummary", adminOnly, h.User.Summary)
		users.GET("/usersOverTime", adminOnly, h.User.OverTime)
		users.GET("/designation/:designation", middleware.RequireDesignation(constants.DesignationManager, constants.DesignationMember), h.User.ListByDesignation)
		users.GET("/:id", h.User.GetByID)
		users.POST("", adminOnly, h.User.Create)
		users.PUT("/approve/:id", adminOnly, h.User.SetApproval)
		users.PUT("/changePassword/:id", h.User.ChangePassword)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", adminOnly, h.User.Delete)
	}

	tasks := r.Group("/tasks", requireAuth)
	{
		tasks.GET("", managerOnly, h.Task.ListAll)
		tasks.GET("/pagedata", managerOnly, h.Task.ListCreated)
		tasks.GET("/assignedTasks", memberOnly, h.Task.ListAssigned)
		tasks.GET("/overdueTasks/:id", memberOnly, h.Task.OverdueAssigned)
		tasks.GET("/allOverdueTasks/:id", managerOnly, h.Task.OverdueCreated)
		tasks.GET("/taskSummary/:id", memberOnly, h.Task.SummaryAssigned)
		tasks.GET("/allTaskSummary/:id", managerOnly, h.Task.SummaryCreated)
		tasks.GET("/taskProgress/:id", memberOnly, h.Task.ProgressAssigned)
		tasks.GET("/allTaskProgress/:id", managerOnly, h.Task.ProgressCreated)
		tasks.GET("/report", managerOnly, h.Task.Report)
		tasks.GET("/export", managerOnly, h.Task.ExportReport)
		tasks.GET("/:id", managerOnly, h.Task.GetByID)
		tasks.POST("", managerOnly, h.Task.Create)
		tasks.PUT("/updateStatus/:id", memberOnly, h.Task.UpdateStatus)
		tasks.PUT("/:id", managerOnly, h.Task.Update)
		tasks.DELETE("/:id", managerOnly, h.Task.Delete)
	}

	notifications := r.Group("/notifications", requireAuth, memberOnly)
	{
		notifications.GET("/pagedata", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.PUT("/read/:id", h.Notification.SetReadState)
	}
}
