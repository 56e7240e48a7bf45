package models

import "time"

// Designation is a user's role (Admin, Manager, Member). Stored as data, not
// an enum, so new designations can be added without a migration.
type Designation struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
