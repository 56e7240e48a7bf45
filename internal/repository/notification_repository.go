package repository

import (
	"strings"

	"github.com/workhive/task-management-api/internal/database"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

var notificationSearchColumns = map[string]string{
	"title": "title",
	"text":  "text",
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListPage retrieves a recipient's notifications, newest first
func (r *GormNotificationRepository) ListPage(recipientID uint64, opts utils.PageOptions) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("for_user = ?", recipientID)

	if opts.Search != "" {
		if col, ok := notificationSearchColumns[opts.SearchBy]; ok {
			query = query.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(opts.Search)+"%")
		}
	}

	var itemCount int64
	if err := query.Count(&itemCount).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(opts)).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, itemCount, nil
}

// CountUnread counts a recipient's unread notifications. The map condition
// lets gorm quote "read", which is reserved in MySQL.
func (r *GormNotificationRepository) CountUnread(recipientID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where(map[string]interface{}{"for_user": recipientID, "read": false}).
		Count(&count).Error
	return count, err
}

// Update updates a notification
func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}
