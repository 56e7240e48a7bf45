package database

import (
	"gorm.io/gorm"

	"github.com/workhive/task-management-api/internal/utils"
)

// Paginate applies offset/limit pagination to a GORM query
func Paginate(opts utils.PageOptions) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(opts.Skip()).Limit(opts.Take)
	}
}
