package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/dto"
	"github.com/workhive/task-management-api/internal/services"
	"github.com/workhive/task-management-api/internal/utils"
)

// AuthHandler handles login and self-registration endpoints.
type AuthHandler struct {
	authService *services.AuthService
	imageDir    string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, imageDir string) *AuthHandler {
	return &AuthHandler{authService: authService, imageDir: imageDir}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:   result.Token,
		Expires: result.ExpiresAt,
		User:    result.User,
	})
}

// Register handles POST /auth/register. The profile image must be uploaded
// before the account row is written, so a failed registration cleans up the
// orphaned file.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "Invalid registration data")
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

	user, err := h.authService.Register(services.UserInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		Password:       req.Password,
		DesignationID:  req.DesignationID,
		DepartmentID:   req.DepartmentID,
		Image:          imageName,
	})
	if err != nil {
		utils.DeleteImage(h.imageDir, imageName)
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
