package dto

import (
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
)

// UserRequest represents the multipart create/update user form. Password is
// only honored on create; the image file arrives as a separate part.
type UserRequest struct {
	FirstName      string `form:"firstName"`
	LastName       string `form:"lastName"`
	Username       string `form:"userName"`
	Email          string `form:"email"`
	EmployeeNumber string `form:"employeeNumber"`
	Password       string `form:"password"`
	DesignationID  uint64 `form:"designation"`
	DepartmentID   uint64 `form:"department"`
}

// ApprovalRequest represents the approve/reject payload
type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UserRef is the slim user shape the assignee picker consumes.
type UserRef struct {
	ID       uint64 `json:"id"`
	Username string `json:"userName"`
	Image    string `json:"image"`
}

// UserPage is the paginated user list envelope.
type UserPage struct {
	Users []models.User  `json:"users"`
	Meta  utils.PageMeta `json:"meta"`
}
