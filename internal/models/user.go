package models

import "time"

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	FirstName      string    `gorm:"type:varchar(30);not null" json:"firstName"`
	LastName       string    `gorm:"type:varchar(30);not null" json:"lastName"`
	Username       string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"userName"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	EmployeeNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"employeeNumber"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	DesignationID  uint64    `gorm:"not null" json:"designationId"`
	DepartmentID   uint64    `gorm:"not null" json:"departmentId"`
	Image          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"image"`
	Approved       bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Designation Designation `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
	Department  Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}
