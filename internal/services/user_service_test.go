package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/workhive/task-management-api/internal/models"
	"github.com/workhive/task-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserServiceTestSuite struct {
	suite.Suite
	db           *gorm.DB
	service      *UserService
	taskService  *TaskService
	mailer       *fakeMailer
	designations map[string]uint64
	departmentID uint64
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.designations, s.departmentID = seedRefs(s.T(), s.db)

	s.mailer = &fakeMailer{}
	publisher := &recordingPublisher{}
	userRepo := repository.NewUserRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)
	notifications := NewNotificationService(repository.NewNotificationRepository(s.db), publisher)

	s.service = NewUserService(userRepo, s.mailer, s.T().TempDir(), "Task Management System")
	s.taskService = NewTaskService(taskRepo, userRepo, notifications, s.mailer, publisher, "Task Management System")
	s.service.SetTaskChecker(s.taskService)
}

var userInputSeq int

func (s *UserServiceTestSuite) userInput(username string) UserInput {
	userInputSeq++
	return UserInput{
		FirstName:      "Jane",
		LastName:       "Doe",
		Username:       username,
		Email:          username + "@example.com",
		EmployeeNumber: fmt.Sprintf("EMP-%04d", 1000+userInputSeq),
		Password:       "secret@123",
		DesignationID:  s.designations["Member"],
		DepartmentID:   s.departmentID,
		Image:          username + ".png",
	}
}

func (s *UserServiceTestSuite) TestCreateUser() {
	user, err := s.service.CreateUser(s.userInput("janedoe"), true)
	s.Require().NoError(err)
	s.True(user.Approved)
	s.NotEqual("secret@123", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret@123")))
}

func (s *UserServiceTestSuite) TestCreateUserDuplicates() {
	first := s.userInput("original")
	_, err := s.service.CreateUser(first, true)
	s.Require().NoError(err)

	dupEmail := s.userInput("otheruser")
	dupEmail.Email = "original@example.com"
	_, err = s.service.CreateUser(dupEmail, true)
	s.EqualError(err, "User with this email already exists")

	dupUsername := s.userInput("thirduser")
	dupUsername.Username = "original"
	_, err = s.service.CreateUser(dupUsername, true)
	s.EqualError(err, "User with this username already exists")

	dupEmployee := s.userInput("fourthuser")
	dupEmployee.EmployeeNumber = first.EmployeeNumber
	_, err = s.service.CreateUser(dupEmployee, true)
	s.EqualError(err, "User with this employee number already exists")
}

func (s *UserServiceTestSuite) TestCreateUserValidation() {
	cases := []struct {
		name    string
		mutate  func(*UserInput)
		message string
	}{
		{
			name:    "short first name",
			mutate:  func(in *UserInput) { in.FirstName = "Jo" },
			message: `"firstName" should have a length between 3 and 30`,
		},
		{
			name:    "short last name",
			mutate:  func(in *UserInput) { in.LastName = "Li" },
			message: `"lastName" should have a length between 3 and 30`,
		},
		{
			name:    "short username",
			mutate:  func(in *UserInput) { in.Username = "jane" },
			message: `"userName" should have a length between 6 and 30`,
		},
		{
			name:    "bad employee number",
			mutate:  func(in *UserInput) { in.EmployeeNumber = "x" },
			message: `"employeeNumber" should match the pattern EMP-0000`,
		},
		{
			name:    "employee number missing digits",
			mutate:  func(in *UserInput) { in.EmployeeNumber = "EMP-12" },
			message: `"employeeNumber" should match the pattern EMP-0000`,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			in := s.userInput("validuser")
			tc.mutate(&in)
			_, err := s.service.CreateUser(in, true)
			s.EqualError(err, tc.message)
		})
	}
}

func (s *UserServiceTestSuite) TestCreateUserShortPassword() {
	in := s.userInput("shortpass")
	in.Password = "abc"
	_, err := s.service.CreateUser(in, true)
	s.EqualError(err, `"password" should have a minimum length of 6`)
}

func (s *UserServiceTestSuite) TestUpdateUserKeepsOtherUsersUnique() {
	first, err := s.service.CreateUser(s.userInput("firstuser"), true)
	s.Require().NoError(err)
	_, err = s.service.CreateUser(s.userInput("seconduser"), true)
	s.Require().NoError(err)

	// Updating a user to its own email is not a duplicate.
	in := s.userInput("firstuser")
	in.Password = ""
	in.Image = ""
	updated, err := s.service.UpdateUser(first.ID, in)
	s.NoError(err)
	s.Equal("firstuser@example.com", updated.Email)

	// Taking the other user's email is.
	in.Email = "seconduser@example.com"
	_, err = s.service.UpdateUser(first.ID, in)
	s.EqualError(err, "User with this email already exists")
}

func (s *UserServiceTestSuite) TestChangePassword() {
	user, err := s.service.CreateUser(s.userInput("rotating"), true)
	s.Require().NoError(err)

	err = s.service.ChangePassword(user.ID, "wrong-password", "newsecret@123")
	s.EqualError(err, "Incorrect Password")

	err = s.service.ChangePassword(user.ID, "secret@123", "abc")
	s.EqualError(err, `"password" should have a minimum length of 6`)

	s.NoError(s.service.ChangePassword(user.ID, "secret@123", "newsecret@123"))

	var reloaded models.User
	s.Require().NoError(s.db.First(&reloaded, user.ID).Error)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("newsecret@123")))
}

func (s *UserServiceTestSuite) TestSetApproval() {
	user, err := s.service.CreateUser(s.userInput("approvals"), false)
	s.Require().NoError(err)
	s.False(user.Approved)

	approved, err := s.service.SetApproval(user.ID, true)
	s.Require().NoError(err)
	s.True(approved.Approved)

	rejected, err := s.service.SetApproval(user.ID, false)
	s.Require().NoError(err)
	s.False(rejected.Approved)

	sent := s.mailer.sentEmails()
	s.Require().Len(sent, 2)
	s.Equal("Account Approved", sent[0].Subject)
	s.Equal("Account Approval Rejected", sent[1].Subject)
	s.Equal(user.Email, sent[0].To)
}

func (s *UserServiceTestSuite) TestDeleteUserBlockedByTasks() {
	manager := seedUser(s.T(), s.db, s.designations["Manager"], s.departmentID, "delmanager")
	member := seedUser(s.T(), s.db, s.designations["Member"], s.departmentID, "delmember")

	task := models.Task{
		Title:       "Blocks user deletion",
		Description: "Task referencing both users under test",
		Priority:    models.TaskPriorityHigh,
		Status:      models.TaskStatusPending,
		Deadline:    time.Now().AddDate(0, 0, 3),
		AssignedTo:  member.ID,
		CreatedBy:   manager.ID,
	}
	s.Require().NoError(s.db.Create(&task).Error)

	err := s.service.DeleteUser(member.ID)
	s.EqualError(err, "Cannot delete user: User has created tasks or is assigned to tasks")
	err = s.service.DeleteUser(manager.ID)
	s.EqualError(err, "Cannot delete user: User has created tasks or is assigned to tasks")

	s.Require().NoError(s.db.Delete(&task).Error)

	s.NoError(s.service.DeleteUser(member.ID))
	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", member.ID).Count(&count).Error)
	s.Zero(count)
}

func (s *UserServiceTestSuite) TestUserSummary() {
	_, err := s.service.CreateUser(s.userInput("summaryone"), true)
	s.Require().NoError(err)
	_, err = s.service.CreateUser(s.userInput("summarytwo"), false)
	s.Require().NoError(err)

	summary, err := s.service.GetUserSummary()
	s.NoError(err)
	s.Equal(int64(1), summary.Approved)
	s.Equal(int64(1), summary.NotApproved)
	s.Equal(int64(2), summary.Total)

	s.Require().NotEmpty(summary.ByDesignation)
	s.Equal("Member", summary.ByDesignation[0].Name)
	s.Equal(int64(2), summary.ByDesignation[0].Count)

	s.Require().NotEmpty(summary.ByDepartment)
	s.Equal(int64(2), summary.ByDepartment[0].Count)
}

func (s *UserServiceTestSuite) TestUsersOverTimeFillsGaps() {
	one, err := s.service.CreateUser(s.userInput("timelineone"), true)
	s.Require().NoError(err)
	two, err := s.service.CreateUser(s.userInput("timelinetwo"), true)
	s.Require().NoError(err)

	base := time.Now().AddDate(0, 0, -2)
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", one.ID).Update("created_at", base).Error)
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", two.ID).Update("created_at", base.AddDate(0, 0, 2)).Error)

	series, err := s.service.GetUsersOverTime()
	s.NoError(err)
	s.Require().Len(series, 3)
	s.Equal(base.Format("02-01-2006"), series[0].Date)
	s.Equal(1, series[0].Created)
	s.Equal(base.AddDate(0, 0, 1).Format("02-01-2006"), series[1].Date)
	s.Equal(0, series[1].Created)
	s.Equal(time.Now().Format("02-01-2006"), series[2].Date)
	s.Equal(1, series[2].Created)
}

func (s *UserServiceTestSuite) TestGetUsersByDesignation() {
	seedUser(s.T(), s.db, s.designations["Member"], s.departmentID, "memberpick")
	seedUser(s.T(), s.db, s.designations["Manager"], s.departmentID, "managerpick")

	members, err := s.service.GetUsersByDesignation("Member")
	s.NoError(err)
	s.Require().Len(members, 1)
	s.Equal("memberpick", members[0].Username)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
