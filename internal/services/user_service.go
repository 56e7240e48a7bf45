package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/constants"
	"github.com/workhive/task-management-api/internal/email"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TaskChecker reports whether a user is still referenced by tasks. TaskService
// implements it; the indirection keeps the two services from importing each
// other.
type TaskChecker interface {
	UserHasTasks(userID uint64) (bool, error)
}

// UserService handles user management business logic
type UserService struct {
	userRepo repository.UserRepository
	tasks    TaskChecker
	mailer   email.Sender
	imageDir string
	appName  string
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, mailer email.Sender, imageDir, appName string) *UserService {
	return &UserService{
		userRepo: userRepo,
		mailer:   mailer,
		imageDir: imageDir,
		appName:  appName,
	}
}

// SetTaskChecker wires the task reference check after both services exist.
func (s *UserService) SetTaskChecker(tasks TaskChecker) {
	s.tasks = tasks
}

// UserInput represents input for creating or updating a user
type UserInput struct {
	FirstName      string
	LastName       string
	Username       string
	Email          string
	EmployeeNumber string
	Password       string
	DesignationID  uint64
	DepartmentID   uint64
	Image          string
}

// UserOverTimePoint is one calendar day of the registration series.
type UserOverTimePoint struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
}

// UserSummary breaks the user base down by approval state, designation, and
// department.
type UserSummary struct {
	Total         int64                   `json:"total"`
	Approved      int64                   `json:"approved"`
	NotApproved   int64                   `json:"notApproved"`
	ByDesignation []repository.GroupCount `json:"byDesignation"`
	ByDepartment  []repository.GroupCount `json:"byDepartment"`
}

var employeeNumberPattern = regexp.MustCompile(`^EMP-\d{4}$`)

func validateUser(input UserInput, requirePassword bool) error {
	if strings.TrimSpace(input.FirstName) == "" {
		return apperrors.NewValidation(`"firstName" is a required field`)
	}
	if l := len(strings.TrimSpace(input.FirstName)); l < 3 || l > 30 {
		return apperrors.NewValidation(`"firstName" should have a length between 3 and 30`)
	}
	if strings.TrimSpace(input.LastName) == "" {
		return apperrors.NewValidation(`"lastName" is a required field`)
	}
	if l := len(strings.TrimSpace(input.LastName)); l < 3 || l > 30 {
		return apperrors.NewValidation(`"lastName" should have a length between 3 and 30`)
	}
	if strings.TrimSpace(input.Username) == "" {
		return apperrors.NewValidation(`"userName" is a required field`)
	}
	if l := len(strings.TrimSpace(input.Username)); l < 6 || l > 30 {
		return apperrors.NewValidation(`"userName" should have a length between 6 and 30`)
	}
	if strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@") {
		return apperrors.NewValidation(`"email" should be a valid email`)
	}
	if strings.TrimSpace(input.EmployeeNumber) == "" {
		return apperrors.NewValidation(`"employeeNumber" is a required field`)
	}
	if !employeeNumberPattern.MatchString(strings.TrimSpace(input.EmployeeNumber)) {
		return apperrors.NewValidation(`"employeeNumber" should match the pattern EMP-0000`)
	}
	if requirePassword && len(input.Password) < constants.MinPasswordLength {
		return apperrors.NewValidation(fmt.Sprintf(`"password" should have a minimum length of %d`, constants.MinPasswordLength))
	}
	if input.DesignationID == 0 {
		return apperrors.NewValidation(`"designation" is a required field`)
	}
	if input.DepartmentID == 0 {
		return apperrors.NewValidation(`"department" is a required field`)
	}
	return nil
}

// checkDuplicateFields verifies email, username, and employee number are
// unused, excluding excludeID on updates.
func (s *UserService) checkDuplicateFields(input UserInput, excludeID uint64) error {
	fields := []struct {
		column  string
		value   string
		message string
	}{
		{"email", input.Email, "User with this email already exists"},
		{"userName", input.Username, "User with this username already exists"},
		{"employeeNumber", input.EmployeeNumber, "User with this employee number already exists"},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		_, err := s.userRepo.FindByField(f.column, f.value, excludeID)
		if err == nil {
			return apperrors.NewDuplicate(f.message)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check %s: %w", f.column, err)
		}
	}
	return nil
}

// CreateUser creates a user. Self-registered users start unapproved; users
// created by an admin are approved immediately.
func (s *UserService) CreateUser(input UserInput, approved bool) (*models.User, error) {
	if err := validateUser(input, true); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateFields(input, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Username:       input.Username,
		Email:          input.Email,
		EmployeeNumber: input.EmployeeNumber,
		PasswordHash:   string(hash),
		DesignationID:  input.DesignationID,
		DepartmentID:   input.DepartmentID,
		Image:          input.Image,
		Approved:       approved,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUser updates a user's profile. Password is changed separately and an
// empty image keeps the existing one.
func (s *UserService) UpdateUser(id uint64, input UserInput) (*models.User, error) {
	if err := validateUser(input, false); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateFields(input, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	oldImage := user.Image

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Username = input.Username
	user.Email = input.Email
	user.EmployeeNumber = input.EmployeeNumber
	user.DesignationID = input.DesignationID
	user.DepartmentID = input.DepartmentID
	if input.Image != "" {
		user.Image = input.Image
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if input.Image != "" && oldImage != "" && oldImage != input.Image {
		utils.DeleteImage(s.imageDir, oldImage)
	}

	return user, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *UserService) ChangePassword(id uint64, currentPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return apperrors.NewValidation(fmt.Sprintf(`"password" should have a minimum length of %d`, constants.MinPasswordLength))
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.NewAuth("Incorrect Password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(id, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SetApproval approves or rejects a user's account and emails the outcome.
func (s *UserService) SetApproval(id uint64, approved bool) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.SetApproval(id, approved); err != nil {
		return nil, fmt.Errorf("failed to update approval: %w", err)
	}
	user.Approved = approved

	if approved {
		s.mailer.Send(user.Email,
			"Account Approved",
			fmt.Sprintf("Hi %s, Your account has been approved. You can now log in to the %q app.", user.Username, s.appName),
			fmt.Sprintf("<h1>Hi %s</h1><p>Your account has been approved. You can now log in to the %q app.</p>", user.Username, s.appName))
	} else {
		s.mailer.Send(user.Email,
			"Account Approval Rejected",
			fmt.Sprintf("Hi %s, Your account approval request has been rejected. Please contact the administrator for details.", user.Username),
			fmt.Sprintf("<h1>Hi %s</h1><p>Your account approval request has been rejected. Please contact the administrator for details.</p>", user.Username))
	}

	return user, nil
}

// DeleteUser hard deletes a user unless tasks still reference them. The
// profile image is removed alongside the row.
func (s *UserService) DeleteUser(id uint64) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if s.tasks != nil {
		referenced, err := s.tasks.UserHasTasks(id)
		if err != nil {
			return fmt.Errorf("failed to check task references: %w", err)
		}
		if referenced {
			return apperrors.NewValidation("Cannot delete user: User has created tasks or is assigned to tasks")
		}
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if user.Image != "" {
		utils.DeleteImage(s.imageDir, user.Image)
	}
	return nil
}

// GetUserByID returns a user with designation and department resolved.
func (s *UserService) GetUserByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Designation", "Department")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUsersPage returns users matching the filter, paginated.
func (s *UserService) GetUsersPage(filter repository.UserPageFilter) ([]models.User, utils.PageMeta, error) {
	users, itemCount, err := s.userRepo.ListPage(filter)
	if err != nil {
		return nil, utils.PageMeta{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, utils.NewPageMeta(filter.Opts, itemCount), nil
}

// GetAllUsers returns every user without relations.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.ListAll()
}

// GetAllUsersWithRefs returns every user with designation and department.
func (s *UserService) GetAllUsersWithRefs() ([]models.User, error) {
	return s.userRepo.ListAllWithRefs()
}

// GetUsersByDesignation returns users holding the named designation.
func (s *UserService) GetUsersByDesignation(designation string) ([]models.User, error) {
	return s.userRepo.ListByDesignationName(designation)
}

// GetUserSummary breaks the user base down by approval state, designation,
// and department.
func (s *UserService) GetUserSummary() (UserSummary, error) {
	approved, err := s.userRepo.CountByApproval(true)
	if err != nil {
		return UserSummary{}, fmt.Errorf("failed to count approved users: %w", err)
	}
	notApproved, err := s.userRepo.CountByApproval(false)
	if err != nil {
		return UserSummary{}, fmt.Errorf("failed to count unapproved users: %w", err)
	}
	byDesignation, err := s.userRepo.CountByDesignation()
	if err != nil {
		return UserSummary{}, fmt.Errorf("failed to count users by designation: %w", err)
	}
	byDepartment, err := s.userRepo.CountByDepartment()
	if err != nil {
		return UserSummary{}, fmt.Errorf("failed to count users by department: %w", err)
	}
	return UserSummary{
		Total:         approved + notApproved,
		Approved:      approved,
		NotApproved:   notApproved,
		ByDesignation: byDesignation,
		ByDepartment:  byDepartment,
	}, nil
}

// GetUsersOverTime returns the daily registration series from the first
// signup through today, with empty days filled in.
func (s *UserService) GetUsersOverTime() ([]UserOverTimePoint, error) {
	timestamps, err := s.userRepo.ListCreatedAt()
	if err != nil {
		return nil, fmt.Errorf("failed to load registration dates: %w", err)
	}
	if len(timestamps) == 0 {
		return []UserOverTimePoint{}, nil
	}

	counts := make(map[string]int)
	first := dayOf(timestamps[0])
	for _, ts := range timestamps {
		day := dayOf(ts)
		counts[day.Format(constants.DayKeyLayout)]++
		if day.Before(first) {
			first = day
		}
	}

	var series []UserOverTimePoint
	for d := first; !d.After(startOfToday()); d = d.AddDate(0, 0, 1) {
		key := d.Format(constants.DayKeyLayout)
		series = append(series, UserOverTimePoint{Date: key, Created: counts[key]})
	}
	return series, nil
}
