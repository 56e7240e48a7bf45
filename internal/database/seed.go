package database

import (
	"log"

	"github.com/workhive/task-management-api/internal/constants"
	"github.com/workhive/task-management-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seed loads the fixed designation set, a couple of starter departments, and
// an approved admin account into an empty database. A non-empty database is
// left untouched.
func Seed() error {
	var userCount, designationCount, departmentCount int64
	DB.Model(&models.User{}).Count(&userCount)
	DB.Model(&models.Designation{}).Count(&designationCount)
	DB.Model(&models.Department{}).Count(&departmentCount)

	if userCount > 0 || designationCount > 0 || departmentCount > 0 {
		log.Println("Database already seeded, skipping")
		return nil
	}

	log.Println("Seeding database with initial data...")

	designations := []models.Designation{
		{Name: constants.DesignationAdmin},
		{Name: constants.DesignationManager},
		{Name: constants.DesignationMember},
	}
	if err := DB.Create(&designations).Error; err != nil {
		return err
	}

	departments := []models.Department{
		{Name: "Human Resources"},
		{Name: "Operations"},
		{Name: "Engineering"},
	}
	if err := DB.Create(&departments).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin@123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName:      "System",
		LastName:       "Admin",
		Username:       "sysadmin",
		Email:          "admin@example.com",
		EmployeeNumber: "EMP-0001",
		PasswordHash:   string(hash),
		DesignationID:  designations[0].ID,
		DepartmentID:   departments[1].ID,
		Image:          "profile-admin.jpg",
		Approved:       true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Database seeded successfully")
	return nil
}
