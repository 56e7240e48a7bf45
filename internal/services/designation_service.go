package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

// DesignationService handles designation business logic
type DesignationService struct {
	designationRepo repository.DesignationRepository
	userRepo        repository.UserRepository
}

// NewDesignationService creates a new DesignationService
func NewDesignationService(designationRepo repository.DesignationRepository, userRepo repository.UserRepository) *DesignationService {
	return &DesignationService{designationRepo: designationRepo, userRepo: userRepo}
}

func validateRefName(field, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return apperrors.NewValidation(fmt.Sprintf("%q is a required field", field))
	}
	if len(trimmed) < 3 {
		return apperrors.NewValidation(fmt.Sprintf("%q should have a minimum length of 3", field))
	}
	if len(trimmed) > 30 {
		return apperrors.NewValidation(fmt.Sprintf("%q should have a maximum length of 30", field))
	}
	return nil
}

// checkDuplicateName matches case-insensitively so "HR" and "hr" collide.
func (s *DesignationService) checkDuplicateName(name string, excludeID uint64) error {
	_, err := s.designationRepo.FindByName(name, excludeID)
	if err == nil {
		return apperrors.NewDuplicate("Designation with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check designation name: %w", err)
	}
	return nil
}

// CreateDesignation creates a designation with a unique name.
func (s *DesignationService) CreateDesignation(name string) (*models.Designation, error) {
	if err := validateRefName("name", name); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(name, 0); err != nil {
		return nil, err
	}

	designation := &models.Designation{Name: strings.TrimSpace(name)}
	if err := s.designationRepo.Create(designation); err != nil {
		return nil, fmt.Errorf("failed to create designation: %w", err)
	}
	return designation, nil
}

// UpdateDesignation renames a designation.
func (s *DesignationService) UpdateDesignation(id uint64, name string) (*models.Designation, error) {
	if err := validateRefName("name", name); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(name, id); err != nil {
		return nil, err
	}

	designation, err := s.designationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Designation not found")
		}
		return nil, fmt.Errorf("failed to find designation: %w", err)
	}

	designation.Name = strings.TrimSpace(name)
	if err := s.designationRepo.Update(designation); err != nil {
		return nil, fmt.Errorf("failed to update designation: %w", err)
	}
	return designation, nil
}

// DeleteDesignation hard deletes a designation unless users still hold it.
func (s *DesignationService) DeleteDesignation(id uint64) error {
	if _, err := s.designationRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Designation not found")
		}
		return fmt.Errorf("failed to find designation: %w", err)
	}

	inUse, err := s.userRepo.ExistsByDesignation(id)
	if err != nil {
		return fmt.Errorf("failed to check designation references: %w", err)
	}
	if inUse {
		return apperrors.NewValidation("This designation is in use so it can't be deleted")
	}

	if err := s.designationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	return nil
}

// GetDesignationByID returns a designation by id.
func (s *DesignationService) GetDesignationByID(id uint64) (*models.Designation, error) {
	designation, err := s.designationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Designation not found")
		}
		return nil, fmt.Errorf("failed to find designation: %w", err)
	}
	return designation, nil
}

// GetDesignationsPage returns designations matching the filter, paginated.
func (s *DesignationService) GetDesignationsPage(opts utils.PageOptions) ([]models.Designation, utils.PageMeta, error) {
	designations, itemCount, err := s.designationRepo.ListPage(opts)
	if err != nil {
		return nil, utils.PageMeta{}, fmt.Errorf("failed to list designations: %w", err)
	}
	return designations, utils.NewPageMeta(opts, itemCount), nil
}

// GetAllDesignations returns every designation.
func (s *DesignationService) GetAllDesignations() ([]models.Designation, error) {
	return s.designationRepo.ListAll()
}
