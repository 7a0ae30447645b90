package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestMarkAsReadScopesToUser(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	mock.ExpectBegin()
	// The WHERE clause must scope by user_id so foreign IDs match zero rows
	mock.ExpectExec(`UPDATE "notifications" SET (.+) WHERE user_id = \$\d+ AND id IN`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	updated, err := MarkAsRead(db, userID, ids)
	require.NoError(t, err)

	// Two of three matched; the caller reports the real count, not len(ids)
	assert.Equal(t, int64(2), updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllAsRead(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET (.+) WHERE user_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectCommit()

	updated, err := MarkAllAsRead(db, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated)
}

func TestCountUnread(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := CountUnread(db, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
