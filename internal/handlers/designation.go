package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/dto"
	"github.com/workhive/task-management-api/internal/services"
	"github.com/workhive/task-management-api/internal/utils"
)

// DesignationHandler handles designation endpoints.
type DesignationHandler struct {
	designationService *services.DesignationService
}

// NewDesignationHandler creates a new DesignationHandler
func NewDesignationHandler(designationService *services.DesignationService) *DesignationHandler {
	return &DesignationHandler{designationService: designationService}
}

// Create handles POST /designations
func (h *DesignationHandler) Create(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, `"name" is a required field`)
		return
	}

	designation, err := h.designationService.CreateDesignation(req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, designation)
}

// Update handles PUT /designations/:id
func (h *DesignationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid designation id")
		return
	}

	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, `"name" is a required field`)
		return
	}

	designation, err := h.designationService.UpdateDesignation(id, req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, designation)
}

// Delete handles DELETE /designations/:id
func (h *DesignationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid designation id")
		return
	}

	if err := h.designationService.DeleteDesignation(id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Designation deleted successfully"})
}

// GetByID handles GET /designations/:id
func (h *DesignationHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid designation id")
		return
	}

	designation, err := h.designationService.GetDesignationByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, designation)
}

// List handles GET /designations/pagedata
func (h *DesignationHandler) List(c *gin.Context) {
	opts := utils.GetPageOptions(c, "name")
	designations, meta, err := h.designationService.GetDesignationsPage(opts)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DesignationPage{Designations: designations, Meta: meta})
}

// ListAll handles GET /designations. Public so the registration form can load it.
func (h *DesignationHandler) ListAll(c *gin.Context) {
	designations, err := h.designationService.GetAllDesignations()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"designations": designations})
}
