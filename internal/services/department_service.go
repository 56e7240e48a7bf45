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

// DepartmentService handles department business logic
type DepartmentService struct {
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo repository.DepartmentRepository, userRepo repository.UserRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo, userRepo: userRepo}
}

func (s *DepartmentService) checkDuplicateName(name string, excludeID uint64) error {
	_, err := s.departmentRepo.FindByName(name, excludeID)
	if err == nil {
		return apperrors.NewDuplicate("Department with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check department name: %w", err)
	}
	return nil
}

// CreateDepartment creates a department with a unique name.
func (s *DepartmentService) CreateDepartment(name string) (*models.Department, error) {
	if err := validateRefName("name", name); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(name, 0); err != nil {
		return nil, err
	}

	department := &models.Department{Name: strings.TrimSpace(name)}
	if err := s.departmentRepo.Create(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return department, nil
}

// UpdateDepartment renames a department.
func (s *DepartmentService) UpdateDepartment(id uint64, name string) (*models.Department, error) {
	if err := validateRefName("name", name); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(name, id); err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Department not found")
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	department.Name = strings.TrimSpace(name)
	if err := s.departmentRepo.Update(department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return department, nil
}

// DeleteDepartment hard deletes a department unless users still belong to it.
func (s *DepartmentService) DeleteDepartment(id uint64) error {
	if _, err := s.departmentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Department not found")
		}
		return fmt.Errorf("failed to find department: %w", err)
	}

	inUse, err := s.userRepo.ExistsByDepartment(id)
	if err != nil {
		return fmt.Errorf("failed to check department references: %w", err)
	}
	if inUse {
		return apperrors.NewValidation("This department is in use so it can't be deleted")
	}

	if err := s.departmentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

// GetDepartmentByID returns a department by id.
func (s *DepartmentService) GetDepartmentByID(id uint64) (*models.Department, error) {
	department, err := s.departmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Department not found")
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return department, nil
}

// GetDepartmentsPage returns departments matching the filter, paginated.
func (s *DepartmentService) GetDepartmentsPage(opts utils.PageOptions) ([]models.Department, utils.PageMeta, error) {
	departments, itemCount, err := s.departmentRepo.ListPage(opts)
	if err != nil {
		return nil, utils.PageMeta{}, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, utils.NewPageMeta(opts, itemCount), nil
}

// GetAllDepartments returns every department.
func (s *DepartmentService) GetAllDepartments() ([]models.Department, error) {
	return s.departmentRepo.ListAll()
}
