package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/realtime"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/utils"
	"gorm.io/gorm"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	service   *NotificationService
	publisher *recordingPublisher
	member    *models.User
}

func (s *NotificationServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	designations, departmentID := seedRefs(s.T(), s.db)
	s.member = seedUser(s.T(), s.db, designations["Member"], departmentID, "notifymember")

	s.publisher = &recordingPublisher{}
	s.service = NewNotificationService(repository.NewNotificationRepository(s.db), s.publisher)
}

func (s *NotificationServiceTestSuite) TestCreateNotification() {
	notification, err := s.service.CreateNotification(CreateNotificationInput{
		Title: "New Task",
		Text:  "A new task has been assigned to you",
		For:   s.member.ID,
	})
	s.Require().NoError(err)
	s.False(notification.Read)
	s.Equal(s.member.ID, notification.For)

	events := s.publisher.published()
	s.Require().Len(events, 1)
	s.Equal(publishedEvent{Event: realtime.EventNewNotification, UserID: s.member.ID}, events[0])
}

func (s *NotificationServiceTestSuite) TestCreateNotificationValidation() {
	_, err := s.service.CreateNotification(CreateNotificationInput{Text: "body", For: s.member.ID})
	s.Error(err)
	s.Empty(s.publisher.published())
}

func (s *NotificationServiceTestSuite) TestMarkRead() {
	notification, err := s.service.CreateNotification(CreateNotificationInput{
		Title: "Task Updated",
		Text:  "A task has been updated",
		For:   s.member.ID,
	})
	s.Require().NoError(err)

	read, err := s.service.MarkRead(notification.ID, true)
	s.Require().NoError(err)
	s.True(read.Read)

	unread, err := s.service.MarkRead(notification.ID, false)
	s.Require().NoError(err)
	s.False(unread.Read)

	_, err = s.service.MarkRead(9999, true)
	s.EqualError(err, "Notification not found")
}

func (s *NotificationServiceTestSuite) TestUnreadCountAndPaging() {
	for i := 0; i < 12; i++ {
		_, err := s.service.CreateNotification(CreateNotificationInput{
			Title: fmt.Sprintf("Notification %d", i),
			Text:  "Body text for the unread pile",
			For:   s.member.ID,
		})
		s.Require().NoError(err)
	}

	count, err := s.service.GetUnreadCount(s.member.ID)
	s.NoError(err)
	s.Equal(int64(12), count)

	notifications, meta, err := s.service.GetNotificationsPage(s.member.ID, utils.PageOptions{
		Page: 1, Take: 10, Order: utils.SortDesc,
	})
	s.NoError(err)
	s.Len(notifications, 10)
	s.Equal(int64(12), meta.ItemCount)
	s.Equal(2, meta.PageCount)
	s.True(meta.HasNextPage)

	// Other users never see these.
	count, err = s.service.GetUnreadCount(s.member.ID + 1)
	s.NoError(err)
	s.Zero(count)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
