package repository

import (
	"time"

	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
)

// TaskScope restricts task queries to one actor's view: the tasks a manager
// created, or the tasks assigned to a member. Exactly one field is set.
type TaskScope struct {
	CreatedBy  *uint64
	AssignedTo *uint64
}

// ManagerScope scopes queries to tasks created by the given user.
func ManagerScope(userID uint64) TaskScope {
	return TaskScope{CreatedBy: &userID}
}

// MemberScope scopes queries to tasks assigned to the given user.
func MemberScope(userID uint64) TaskScope {
	return TaskScope{AssignedTo: &userID}
}

// TaskPageFilter holds the filtering options of a paginated task listing.
type TaskPageFilter struct {
	Scope    TaskScope
	Status   models.TaskStatus
	Priority models.TaskPriority
	// CounterpartID filters by the other party: the assignee in the manager
	// view, the creator in the member view.
	CounterpartID *uint64
	Deadline      *time.Time
	Opts          utils.PageOptions
}

// ReportFilter holds the filtering options of the task report. LastDate is
// inclusive through the end of that day.
type ReportFilter struct {
	CreatedBy  uint64
	Status     models.TaskStatus
	AssignedTo *uint64
	FirstDate  *time.Time
	LastDate   *time.Time
}

// TaskTimestamps carries the two timestamps the progress series buckets by.
type TaskTimestamps struct {
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByTitle finds a task by exact title, excluding excludeID when
	// non-zero. Used for the duplicate pre-check.
	FindByTitle(title string, excludeID uint64) (*models.Task, error)

	// ListPage retrieves tasks with filtering and pagination, newest first
	ListPage(filter TaskPageFilter) ([]models.Task, int64, error)

	// ListAll retrieves every task
	ListAll() ([]models.Task, error)

	// ListOverdue retrieves the scope's overdue tasks: not completed, no
	// completion timestamp, deadline before startOfDay
	ListOverdue(scope TaskScope, startOfDay time.Time, preload ...string) ([]models.Task, error)

	// CountByStatus counts the scope's tasks in a status; when deadlineFrom
	// is set only tasks with deadline >= deadlineFrom are counted
	CountByStatus(scope TaskScope, status models.TaskStatus, deadlineFrom *time.Time) (int64, error)

	// CountOverdue counts the scope's overdue tasks
	CountOverdue(scope TaskScope, startOfDay time.Time) (int64, error)

	// ListTimestamps retrieves creation/completion timestamps for the scope
	ListTimestamps(scope TaskScope) ([]TaskTimestamps, error)

	// ListReport retrieves the filtered report set, newest first, with
	// creator and assignee preloaded
	ListReport(filter ReportFilter) ([]models.Task, error)

	Update(task *models.Task) error

	// UpdateStatus updates only the status and completedAt columns
	UpdateStatus(id uint64, status models.TaskStatus, completedAt *time.Time) error

	// Delete hard deletes a task
	Delete(id uint64) error

	// ExistsForUser reports whether any task references the user as creator
	// or assignee
	ExistsForUser(userID uint64) (bool, error)
}

// GroupCount is one group's user count in a grouped aggregate.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// UserPageFilter holds the filtering options of a paginated user listing.
type UserPageFilter struct {
	Approved      *bool
	DesignationID *uint64
	DepartmentID  *uint64
	Opts          utils.PageOptions
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email with designation and department
	// preloaded
	FindByEmail(email string) (*models.User, error)

	// FindByField finds a user by a unique column value, excluding excludeID
	// when non-zero. Used for the duplicate pre-checks.
	FindByField(field, value string, excludeID uint64) (*models.User, error)

	// ListPage retrieves users with filtering and pagination, ordered by
	// username
	ListPage(filter UserPageFilter) ([]models.User, int64, error)

	// ListAll retrieves every user
	ListAll() ([]models.User, error)

	// ListAllWithRefs retrieves every user with designation and department
	// preloaded
	ListAllWithRefs() ([]models.User, error)

	// ListByDesignationName retrieves the users holding a designation
	ListByDesignationName(name string) ([]models.User, error)

	// ListCreatedAt retrieves every user's creation timestamp
	ListCreatedAt() ([]time.Time, error)

	// CountByApproval counts users by approval state
	CountByApproval(approved bool) (int64, error)

	// CountByDesignation counts users grouped by designation name
	CountByDesignation() ([]GroupCount, error)

	// CountByDepartment counts users grouped by department name
	CountByDepartment() ([]GroupCount, error)

	Update(user *models.User) error

	// UpdatePassword updates only the password hash
	UpdatePassword(id uint64, passwordHash string) error

	// SetApproval updates only the approval flag
	SetApproval(id uint64, approved bool) error

	// Delete hard deletes a user
	Delete(id uint64) error

	// ExistsByDesignation reports whether any user holds the designation
	ExistsByDesignation(designationID uint64) (bool, error)

	// ExistsByDepartment reports whether any user belongs to the department
	ExistsByDepartment(departmentID uint64) (bool, error)
}

// DesignationRepository defines the interface for designation data access
type DesignationRepository interface {
	Create(designation *models.Designation) error
	FindByID(id uint64) (*models.Designation, error)

	// FindByName finds a designation by name, case-insensitively, excluding
	// excludeID when non-zero
	FindByName(name string, excludeID uint64) (*models.Designation, error)

	ListPage(opts utils.PageOptions) ([]models.Designation, int64, error)
	ListAll() ([]models.Designation, error)
	Update(designation *models.Designation) error
	Delete(id uint64) error
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(department *models.Department) error
	FindByID(id uint64) (*models.Department, error)

	// FindByName finds a department by name, case-insensitively, excluding
	// excludeID when non-zero
	FindByName(name string, excludeID uint64) (*models.Department, error)

	ListPage(opts utils.PageOptions) ([]models.Department, int64, error)
	ListAll() ([]models.Department, error)
	Update(department *models.Department) error
	Delete(id uint64) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id uint64) (*models.Notification, error)

	// ListPage retrieves a recipient's notifications, newest first
	ListPage(recipientID uint64, opts utils.PageOptions) ([]models.Notification, int64, error)

	// CountUnread counts a recipient's unread notifications
	CountUnread(recipientID uint64) (int64, error)

	Update(notification *models.Notification) error
}
