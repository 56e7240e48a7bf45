package repository

import (
	"strings"

	"github.com/workhive/task-management-api/internal/database"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormDesignationRepository is a GORM implementation of DesignationRepository
type GormDesignationRepository struct {
	db *gorm.DB
}

// NewDesignationRepository creates a new DesignationRepository
func NewDesignationRepository(db *gorm.DB) DesignationRepository {
	return &GormDesignationRepository{db: db}
}

// Create creates a new designation
func (r *GormDesignationRepository) Create(designation *models.Designation) error {
	return r.db.Create(designation).Error
}

// FindByID finds a designation by ID
func (r *GormDesignationRepository) FindByID(id uint64) (*models.Designation, error) {
	var designation models.Designation
	if err := r.db.First(&designation, id).Error; err != nil {
		return nil, err
	}
	return &designation, nil
}

// FindByName finds a designation by name, case-insensitively
func (r *GormDesignationRepository) FindByName(name string, excludeID uint64) (*models.Designation, error) {
	var designation models.Designation
	query := r.db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&designation).Error; err != nil {
		return nil, err
	}
	return &designation, nil
}

// ListPage retrieves designations with pagination, ordered by name
func (r *GormDesignationRepository) ListPage(opts utils.PageOptions) ([]models.Designation, int64, error) {
	query := r.db.Model(&models.Designation{})

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

	var designations []models.Designation
	err := query.
		Order(order).
		Scopes(database.Paginate(opts)).
		Find(&designations).Error
	if err != nil {
		return nil, 0, err
	}

	return designations, itemCount, nil
}

// ListAll retrieves every designation
func (r *GormDesignationRepository) ListAll() ([]models.Designation, error) {
	var designations []models.Designation
	if err := r.db.Find(&designations).Error; err != nil {
		return nil, err
	}
	return designations, nil
}

// Update updates a designation
func (r *GormDesignationRepository) Update(designation *models.Designation) error {
	return r.db.Save(designation).Error
}

// Delete hard deletes a designation
func (r *GormDesignationRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.Designation{}, id).Error
}
