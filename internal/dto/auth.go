package dto

import (
	"time"

	"github.com/workhive/task-management-api/internal/models"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the multipart self-registration form. The
// profile image arrives as a separate file part.
type RegisterRequest struct {
	FirstName      string `form:"firstName"`
	LastName       string `form:"lastName"`
	Username       string `form:"userName"`
	Email          string `form:"email"`
	EmployeeNumber string `form:"employeeNumber"`
	Password       string `form:"password"`
	DesignationID  uint64 `form:"designation"`
	DepartmentID   uint64 `form:"department"`
}

// LoginResponse carries the token alongside the authenticated user.
type LoginResponse struct {
	Token   string       `json:"token"`
	Expires time.Time    `json:"expires"`
	User    *models.User `json:"user"`
}
