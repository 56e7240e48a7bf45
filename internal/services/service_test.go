package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/workhive/task-management-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a fresh in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Designation{},
		&models.Department{},
		&models.User{},
		&models.Task{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

type sentEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// fakeMailer records sends instead of delivering them.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (m *fakeMailer) Send(to, subject, text, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Text: text, HTML: html})
}

func (m *fakeMailer) sentEmails() []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEmail(nil), m.sent...)
}

type publishedEvent struct {
	Event  string
	UserID uint64
}

// recordingPublisher records realtime publishes.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(event string, userID uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Event: event, UserID: userID})
}

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

var testDesignations = []string{"Admin", "Manager", "Member"}

// seedRefs inserts the three designations and one department, returning the
// designation ids keyed by name and the department id.
func seedRefs(t *testing.T, db *gorm.DB) (map[string]uint64, uint64) {
	t.Helper()

	designations := make(map[string]uint64, len(testDesignations))
	for _, name := range testDesignations {
		d := models.Designation{Name: name}
		if err := db.Create(&d).Error; err != nil {
			t.Fatalf("failed to seed designation %s: %v", name, err)
		}
		designations[name] = d.ID
	}

	dept := models.Department{Name: "Engineering"}
	if err := db.Create(&dept).Error; err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}

	return designations, dept.ID
}

var userSeq int

// seedUser inserts an approved user with the given designation.
func seedUser(t *testing.T, db *gorm.DB, designationID, departmentID uint64, username string) *models.User {
	t.Helper()

	userSeq++
	hash, err := bcrypt.GenerateFromPassword([]byte("secret@123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		FirstName:      "Test",
		LastName:       "User",
		Username:       username,
		Email:          fmt.Sprintf("%s@example.com", username),
		EmployeeNumber: fmt.Sprintf("EMP-%04d", userSeq),
		PasswordHash:   string(hash),
		DesignationID:  designationID,
		DepartmentID:   departmentID,
		Image:          fmt.Sprintf("%d-%s.png", time.Now().UnixNano(), username),
		Approved:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return &user
}
