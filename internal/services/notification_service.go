package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/realtime"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

// NotificationService owns the recipient-scoped message log and its realtime
// signalling.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        realtime.Publisher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, publisher realtime.Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// CreateNotificationInput represents input for creating a notification
type CreateNotificationInput struct {
	Title string
	Text  string
	For   uint64
}

// CreateNotification validates and persists a notification, then pushes a
// newNotification event carrying the recipient id.
func (s *NotificationService) CreateNotification(input CreateNotificationInput) (*models.Notification, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidation(`"notification title" cannot be an empty field`)
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.NewValidation(`"notification text" cannot be an empty field`)
	}
	if input.For == 0 {
		return nil, apperrors.NewValidation(`"notification for" is a required field`)
	}

	notification := &models.Notification{
		Title: input.Title,
		Text:  input.Text,
		For:   input.For,
		Read:  false,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publisher.Publish(realtime.EventNewNotification, input.For)

	return notification, nil
}

// MarkRead updates the read flag of a notification.
func (s *NotificationService) MarkRead(id uint64, read bool) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Notification not found")
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	notification.Read = read
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	return notification, nil
}

// GetUnreadCount returns the number of unread notifications for a recipient.
func (s *NotificationService) GetUnreadCount(recipientID uint64) (int64, error) {
	count, err := s.notificationRepo.CountUnread(recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// GetNotificationsPage returns a recipient's notifications, newest first.
func (s *NotificationService) GetNotificationsPage(recipientID uint64, opts utils.PageOptions) ([]models.Notification, utils.PageMeta, error) {
	notifications, itemCount, err := s.notificationRepo.ListPage(recipientID, opts)
	if err != nil {
		return nil, utils.PageMeta{}, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, utils.NewPageMeta(opts, itemCount), nil
}
