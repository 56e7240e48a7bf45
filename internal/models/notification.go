package models

import "time"

// Notification is immutable except for the read flag. "For" is the recipient.
type Notification struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	For       uint64    `gorm:"column:for_user;not null;index" json:"for"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Recipient User `gorm:"foreignKey:For" json:"recipient,omitempty"`
}
