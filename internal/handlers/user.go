package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/dto"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/services"
	"github.com/workhive/task-management-api/internal/utils"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	userService *services.UserService
	imageDir    string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, imageDir string) *UserHandler {
	return &UserHandler{userService: userService, imageDir: imageDir}
}

func userInputFromForm(req dto.UserRequest, image string) services.UserInput {
	return services.UserInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		Password:       req.Password,
		DesignationID:  req.DesignationID,
		DepartmentID:   req.DepartmentID,
		Image:          image,
	}
}

// Create handles POST /users. Admin-created accounts skip the approval
// queue.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "Invalid user data")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, `"image" is a required field`)
		return
	}

	imageName, err := utils.SaveImage(c, file, h.imageDir)
	if err != nil {
		apperrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.CreateUser(userInputFromForm(req, imageName), true)
	if err != nil {
		utils.DeleteImage(h.imageDir, imageName)
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Update handles PUT /users/:id. The image part is optional; omitting it
// keeps the current one.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "Invalid user data")
		return
	}

	imageName := ""
	if file, err := c.FormFile("image"); err == nil {
		imageName, err = utils.SaveImage(c, file, h.imageDir)
		if err != nil {
			apperrors.BadRequest(c, err.Error())
			return
		}
	}

	user, err := h.userService.UpdateUser(id, userInputFromForm(req, imageName))
	if err != nil {
		if imageName != "" {
			utils.DeleteImage(h.imageDir, imageName)
		}
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetApproval handles PUT /users/approve/:id
func (h *UserHandler) SetApproval(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	var req dto.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, `"approved" is a required field`)
		return
	}

	user, err := h.userService.SetApproval(id, *req.Approved)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword handles PUT /users/changePassword/:id. The current password
// check means holding a token for another user is not enough to rotate their
// credentials.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Current and new passwords are required")
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetByID handles GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List handles GET /users/pagedata
func (h *UserHandler) List(c *gin.Context) {
	var approved *bool
	switch c.Query("approved") {
	case "true":
		v := true
		approved = &v
	case "false":
		v := false
		approved = &v
	}

	filter := repository.UserPageFilter{
		Approved:      approved,
		DesignationID: queryUint64(c, "designation"),
		DepartmentID:  queryUint64(c, "department"),
		Opts:          utils.GetPageOptions(c, "userName"),
	}

	users, meta, err := h.userService.GetUsersPage(filter)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserPage{Users: users, Meta: meta})
}

// ListAll handles GET /users
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.userService.GetAllUsersWithRefs()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ListByDesignation handles GET /users/designation/:designation, returning
// the id, username, and image of users holding the named designation.
// Managers use it to pick assignees.
func (h *UserHandler) ListByDesignation(c *gin.Context) {
	designation := c.Param("designation")
	if designation == "" {
		apperrors.BadRequest(c, "Invalid designation")
		return
	}

	users, err := h.userService.GetUsersByDesignation(designation)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	refs := make([]dto.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, dto.UserRef{ID: u.ID, Username: u.Username, Image: u.Image})
	}
	c.JSON(http.StatusOK, gin.H{"users": refs})
}

// Summary handles GET /users/userSummary
func (h *UserHandler) Summary(c *gin.Context) {
	summary, err := h.userService.GetUserSummary()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// OverTime handles GET /users/usersOverTime
func (h *UserHandler) OverTime(c *gin.Context) {
	series, err := h.userService.GetUsersOverTime()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": series})
}
