package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/workhive/task-management-api/internal/database"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// userSearchColumns whitelists the columns a listing may search by. Keys
// match the JSON field names the frontend sends.
var userSearchColumns = map[string]string{
	"firstName":      "first_name",
	"lastName":       "last_name",
	"userName":       "username",
	"email":          "email",
	"employeeNumber": "employee_number",
}

// uniqueUserColumns maps duplicate-check field names to columns.
var uniqueUserColumns = map[string]string{
	"email":          "email",
	"userName":       "username",
	"employeeNumber": "employee_number",
	"image":          "image",
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email with designation and department preloaded
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Designation").
		Preload("Department").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByField finds a user by a unique column value, excluding excludeID
// when non-zero
func (r *GormUserRepository) FindByField(field, value string, excludeID uint64) (*models.User, error) {
	col, ok := uniqueUserColumns[field]
	if !ok {
		return nil, fmt.Errorf("user repository: unknown unique field %q", field)
	}

	var user models.User
	query := r.db.Where(col+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPage retrieves users with filtering and pagination, ordered by username
func (r *GormUserRepository) ListPage(filter UserPageFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Opts.Search != "" {
		if col, ok := userSearchColumns[filter.Opts.SearchBy]; ok {
			query = query.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(filter.Opts.Search)+"%")
		}
	}
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	if filter.DesignationID != nil {
		query = query.Where("designation_id = ?", *filter.DesignationID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}

	var itemCount int64
	if err := query.Count(&itemCount).Error; err != nil {
		return nil, 0, err
	}

	order := "username ASC"
	if filter.Opts.Order == utils.SortDesc {
		order = "username DESC"
	}

	var users []models.User
	err := query.
		Order(order).
		Scopes(database.Paginate(filter.Opts)).
		Preload("Designation").
		Preload("Department").
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, itemCount, nil
}

// ListAll retrieves every user
func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListAllWithRefs retrieves every user with designation and department
// preloaded
func (r *GormUserRepository) ListAllWithRefs() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Preload("Designation").
		Preload("Department").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListByDesignationName retrieves the users holding a designation
func (r *GormUserRepository) ListByDesignationName(name string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN designations ON designations.id = users.designation_id").
		Where("designations.name = ?", name).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListCreatedAt retrieves every user's creation timestamp
func (r *GormUserRepository) ListCreatedAt() ([]time.Time, error) {
	var timestamps []time.Time
	err := r.db.Model(&models.User{}).
		Order("created_at ASC").
		Pluck("created_at", &timestamps).Error
	if err != nil {
		return nil, err
	}
	return timestamps, nil
}

// CountByDesignation counts users grouped by designation name
func (r *GormUserRepository) CountByDesignation() ([]GroupCount, error) {
	var counts []GroupCount
	err := r.db.Model(&models.User{}).
		Select("designations.name AS name, COUNT(users.id) AS count").
		Joins("JOIN designations ON designations.id = users.designation_id").
		Group("designations.name").
		Order("designations.name ASC").
		Scan(&counts).Error
	return counts, err
}

// CountByDepartment counts users grouped by department name
func (r *GormUserRepository) CountByDepartment() ([]GroupCount, error) {
	var counts []GroupCount
	err := r.db.Model(&models.User{}).
		Select("departments.name AS name, COUNT(users.id) AS count").
		Joins("JOIN departments ON departments.id = users.department_id").
		Group("departments.name").
		Order("departments.name ASC").
		Scan(&counts).Error
	return counts, err
}

// CountByApproval counts users by approval state
func (r *GormUserRepository) CountByApproval(approved bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("approved = ?", approved).Count(&count).Error
	return count, err
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdatePassword updates only the password hash
func (r *GormUserRepository) UpdatePassword(id uint64, passwordHash string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// SetApproval updates only the approval flag
func (r *GormUserRepository) SetApproval(id uint64, approved bool) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("approved", approved).Error
}

// Delete hard deletes a user
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.User{}, id).Error
}

// ExistsByDesignation reports whether any user holds the designation
func (r *GormUserRepository) ExistsByDesignation(designationID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("designation_id = ?", designationID).Count(&count).Error
	return count > 0, err
}

// ExistsByDepartment reports whether any user belongs to the department
func (r *GormUserRepository) ExistsByDepartment(departmentID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("department_id = ?", departmentID).Count(&count).Error
	return count > 0, err
}
