package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openMockDB wires a sqlmock connection behind the MySQL dialector so the
// generated SQL can be asserted.
func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepositoryCountByApproval(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE approved = \\?").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByApproval(true)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySetApproval(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `approved`=\\?,`updated_at`=\\? WHERE id = \\?").
		WithArgs(true, sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.SetApproval(42, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByFieldRejectsUnknownColumn(t *testing.T) {
	db, _ := openMockDB(t)
	repo := NewUserRepository(db)

	// Unknown fields never reach the database.
	_, err := repo.FindByField("passwordHash", "x", 0)
	assert.Error(t, err)
}

func TestNotificationRepositoryCountUnread(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewNotificationRepository(db)

	// "read" is reserved in MySQL, so the column must come out backquoted.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `notifications` WHERE `for_user` = \\? AND `read` = \\?").
		WithArgs(uint64(5), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUnread(5)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryExistsForUser(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE created_by = \\? OR assigned_to = \\?").
		WithArgs(uint64(9), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsForUser(9)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
