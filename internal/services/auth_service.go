package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/email"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles login and self-registration.
type AuthService struct {
	userRepo  repository.UserRepository
	users     *UserService
	mailer    email.Sender
	jwtSecret string
	appName   string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, users *UserService, mailer email.Sender, jwtSecret, appName string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		users:     users,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		appName:   appName,
	}
}

// LoginResult bundles the signed token with the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Login authenticates by email and password. Unapproved accounts are
// rejected before the password is checked.
func (s *AuthService) Login(userEmail, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(userEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAuth("No user with this email found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Approved {
		return nil, apperrors.NewAuth("Your account is not approved")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewAuth("Incorrect Password")
	}

	signed, expiresAt, err := token.Sign(s.jwtSecret, user.ID, user.Designation.Name, time.Now())
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

// Register creates an unapproved account and sends the welcome email. The
// account cannot log in until an admin approves it.
func (s *AuthService) Register(input UserInput) (*models.User, error) {
	user, err := s.users.CreateUser(input, false)
	if err != nil {
		return nil, err
	}

	s.mailer.Send(user.Email,
		fmt.Sprintf("Welcome To %s", s.appName),
		fmt.Sprintf("Hi %s, Welcome to the %q app. Your account will be reviewed by an administrator and you will be notified once it is approved.", user.Username, s.appName),
		fmt.Sprintf("<h1>Hi %s</h1><p>Welcome to the %q app. Your account will be reviewed by an administrator and you will be notified once it is approved.</p>", user.Username, s.appName))

	return user, nil
}
