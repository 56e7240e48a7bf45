package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/dto"
	"github.com/workhive/task-management-api/internal/services"
	"github.com/workhive/task-management-api/internal/utils"
)

// DepartmentHandler handles department endpoints.
type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// Create handles POST /departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, `"name" is a required field`)
		return
	}

	department, err := h.departmentService.CreateDepartment(req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, department)
}

// Update handles PUT /departments/:id
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid department id")
		return
	}

	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, `"name" is a required field`)
		return
	}

	department, err := h.departmentService.UpdateDepartment(id, req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

// Delete handles DELETE /departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid department id")
		return
	}

	if err := h.departmentService.DeleteDepartment(id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

// GetByID handles GET /departments/:id
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid department id")
		return
	}

	department, err := h.departmentService.GetDepartmentByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

// List handles GET /departments/pagedata
func (h *DepartmentHandler) List(c *gin.Context) {
	opts := utils.GetPageOptions(c, "name")
	departments, meta, err := h.departmentService.GetDepartmentsPage(opts)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DepartmentPage{Departments: departments, Meta: meta})
}

// ListAll handles GET /departments. Public so the registration form can load it.
func (h *DepartmentHandler) ListAll(c *gin.Context) {
	departments, err := h.departmentService.GetAllDepartments()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}
