package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/compliance"
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

func deadlineRow(id, userID uuid.UUID, dueDate time.Time, status compliance.DeadlineStatus, originalDueDate *time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "regulation", "due_date", "status", "original_due_date"}).
		AddRow(id, userID, "Spectrum licence renewal", compliance.FrameworkEUSpaceAct, dueDate, status, originalDueDate)
}

func expectAuditInsert(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()
}

func TestDeriveExtensionStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		newDueDate time.Time
		want       compliance.DeadlineStatus
	}{
		{"more than seven days out", now.Add(8 * 24 * time.Hour), compliance.DeadlineStatusUpcoming},
		{"inside the due-soon window", now.Add(3 * 24 * time.Hour), compliance.DeadlineStatusDueSoon},
		{"exactly at the window boundary", now.Add(dueSoonWindow), compliance.DeadlineStatusDueSoon},
		{"in the past", now.Add(-24 * time.Hour), compliance.DeadlineStatusExtended},
		{"exactly now", now, compliance.DeadlineStatusExtended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveExtensionStatus(now, tt.newDueDate))
		})
	}
}

func TestExtendDeadlineRequiresReason(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := ExtendDeadline(db, uuid.New(), uuid.New(), time.Now().Add(48*time.Hour), "   ", "")
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestExtendDeadlineNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "deadlines"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := ExtendDeadline(db, uuid.New(), uuid.New(), time.Now().Add(48*time.Hour), "launch slipped", "")
	assert.ErrorIs(t, err, ErrDeadlineNotFound)
}

func TestExtendDeadlineCompletedIsImmutable(t *testing.T) {
	db, mock := newMockDB(t)
	deadlineID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "deadlines"`).
		WillReturnRows(deadlineRow(deadlineID, userID, time.Now().Add(-time.Hour), compliance.DeadlineStatusCompleted, nil))

	_, err := ExtendDeadline(db, deadlineID, userID, time.Now().Add(48*time.Hour), "launch slipped", "")
	assert.ErrorIs(t, err, ErrDeadlineCompleted)
}

func TestExtendDeadlineRejectsNonForwardDate(t *testing.T) {
	db, mock := newMockDB(t)
	deadlineID, userID := uuid.New(), uuid.New()
	dueDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM "deadlines"`).
		WillReturnRows(deadlineRow(deadlineID, userID, dueDate, compliance.DeadlineStatusUpcoming, nil))

	// Same date is not an extension either
	_, err := ExtendDeadline(db, deadlineID, userID, dueDate, "no movement", "")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestExtendDeadlinePreservesOriginalDueDate(t *testing.T) {
	db, mock := newMockDB(t)
	deadlineID, userID := uuid.New(), uuid.New()
	dueDate := time.Now().UTC().Add(2 * 24 * time.Hour).Truncate(time.Second)
	newDueDate := dueDate.Add(30 * 24 * time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM "deadlines"`).
		WillReturnRows(deadlineRow(deadlineID, userID, dueDate, compliance.DeadlineStatusDueSoon, nil))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "deadlines"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAuditInsert(mock)

	deadline, err := ExtendDeadline(db, deadlineID, userID, newDueDate, "NCA granted extension", "user@example.com")
	require.NoError(t, err)

	require.NotNil(t, deadline.OriginalDueDate)
	assert.True(t, deadline.OriginalDueDate.Equal(dueDate), "first extension must snapshot the pre-extension due date")
	assert.True(t, deadline.DueDate.Equal(newDueDate))
	assert.Equal(t, compliance.DeadlineStatusUpcoming, deadline.Status)
	assert.Equal(t, "NCA granted extension", deadline.ExtensionReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtendDeadlineDoesNotOverwriteOriginalDueDate(t *testing.T) {
	db, mock := newMockDB(t)
	deadlineID, userID := uuid.New(), uuid.New()
	firstDueDate := time.Now().UTC().Add(-10 * 24 * time.Hour).Truncate(time.Second)
	currentDueDate := time.Now().UTC().Add(5 * 24 * time.Hour).Truncate(time.Second)
	newDueDate := currentDueDate.Add(14 * 24 * time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM "deadlines"`).
		WillReturnRows(deadlineRow(deadlineID, userID, currentDueDate, compliance.DeadlineStatusDueSoon, &firstDueDate))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "deadlines"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAuditInsert(mock)

	deadline, err := ExtendDeadline(db, deadlineID, userID, newDueDate, "second slippage", "")
	require.NoError(t, err)

	require.NotNil(t, deadline.OriginalDueDate)
	assert.True(t, deadline.OriginalDueDate.Equal(firstDueDate), "later extensions must not overwrite the original due date")
}

func TestCompleteDeadlineIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	deadlineID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "deadlines"`).
		WillReturnRows(deadlineRow(deadlineID, userID, time.Now().Add(-time.Hour), compliance.DeadlineStatusCompleted, nil))

	deadline, err := CompleteDeadline(db, deadlineID, userID)
	require.NoError(t, err)

	// No UPDATE was expected: completing twice is a no-op
	assert.Equal(t, compliance.DeadlineStatusCompleted, deadline.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteDeadlineSetsCompletedAt(t *testing.T) {
	db, mock := newMockDB(t)
	deadlineID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "deadlines"`).
		WillReturnRows(deadlineRow(deadlineID, userID, time.Now().Add(24*time.Hour), compliance.DeadlineStatusUpcoming, nil))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "deadlines"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAuditInsert(mock)

	deadline, err := CompleteDeadline(db, deadlineID, userID)
	require.NoError(t, err)

	assert.Equal(t, compliance.DeadlineStatusCompleted, deadline.Status)
	require.NotNil(t, deadline.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *deadline.CompletedAt, time.Minute)
}
