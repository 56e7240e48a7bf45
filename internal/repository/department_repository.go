package repository

import (
	"strings"

	"github.com/workhive/task-management-api/internal/database"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create creates a new department
func (r *GormDepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(id uint64) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// FindByName finds a department by name, case-insensitively
func (r *GormDepartmentRepository) FindByName(name string, excludeID uint64) (*models.Department, error) {
	var department models.Department
	query := r.db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// ListPage retrieves departments with pagination, ordered by name
func (r *GormDepartmentRepository) ListPage(opts utils.PageOptions) ([]models.Department, int64, error) {
	query := r.db.Model(&models.Department{})

	if opts.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(opts.Search)+"%")
	}

	var itemCount int64
	if err := query.Count(&itemCount).Error; err != nil {
		return nil, 0, err
	}

	order := "name ASC"
	if opts.Order == utils.SortDesc {
		order = "name DESC"
	}

	var departments []models.Department
	err := query.
		Order(order).
		Scopes(database.Paginate(opts)).
		Find(&departments).Error
	if err != nil {
		return nil, 0, err
	}

	return departments, itemCount, nil
}

// ListAll retrieves every department
func (r *GormDepartmentRepository) ListAll() ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// Update updates a department
func (r *GormDepartmentRepository) Update(department *models.Department) error {
	return r.db.Save(department).Error
}

// Delete hard deletes a department
func (r *GormDepartmentRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.Department{}, id).Error
}
