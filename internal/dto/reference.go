package dto

import (
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
)

// NameRequest represents the create/update payload for designations and
// departments.
type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// DesignationPage is the paginated designation list envelope.
type DesignationPage struct {
	Designations []models.Designation `json:"designations"`
	Meta         utils.PageMeta       `json:"meta"`
}

// DepartmentPage is the paginated department list envelope.
type DepartmentPage struct {
	Departments []models.Department `json:"departments"`
	Meta        utils.PageMeta      `json:"meta"`
}
