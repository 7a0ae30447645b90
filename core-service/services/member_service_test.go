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

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models"
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

func memberRow(orgID, userID uuid.UUID, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "organization_id", "user_id", "role"}).
		AddRow(uuid.New(), orgID, userID, role)
}

func TestUpdateMemberRoleRejectsUnknownRole(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := UpdateMemberRole(db, uuid.New(), uuid.New(), "SUPERUSER", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateMemberRoleActorMustBeMember(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := UpdateMemberRole(db, uuid.New(), uuid.New(), models.RoleAdmin, uuid.New())
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestUpdateMemberRoleNeedsRolePermission(t *testing.T) {
	for _, actorRole := range []string{models.RoleManager, models.RoleMember, models.RoleViewer} {
		t.Run(actorRole, func(t *testing.T) {
			db, mock := newMockDB(t)
			orgID, actorID := uuid.New(), uuid.New()

			mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
				WillReturnRows(memberRow(orgID, actorID, actorRole))

			_, err := UpdateMemberRole(db, orgID, uuid.New(), models.RoleMember, actorID)
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestUpdateMemberRoleOnlyOwnerGrantsOwner(t *testing.T) {
	db, mock := newMockDB(t)
	orgID, actorID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, actorID, models.RoleAdmin))

	_, err := UpdateMemberRole(db, orgID, uuid.New(), models.RoleOwner, actorID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateMemberRoleBlocksOwnerSelfDemotion(t *testing.T) {
	db, mock := newMockDB(t)
	orgID, ownerID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, ownerID, models.RoleOwner))

	// Blocked unconditionally, even if other owners exist
	_, err := UpdateMemberRole(db, orgID, ownerID, models.RoleAdmin, ownerID)
	assert.ErrorIs(t, err, ErrOwnerSelfDemote)
}

func TestUpdateMemberRoleTargetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	orgID, actorID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, actorID, models.RoleOwner))
	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := UpdateMemberRole(db, orgID, uuid.New(), models.RoleAdmin, actorID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestUpdateMemberRoleSucceeds(t *testing.T) {
	db, mock := newMockDB(t)
	orgID, actorID, targetID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, actorID, models.RoleAdmin))
	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, targetID, models.RoleViewer))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "organization_members"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	record, err := UpdateMemberRole(db, orgID, targetID, models.RoleManager, actorID)
	require.NoError(t, err)

	assert.Equal(t, targetID, record.UserID)
	assert.Equal(t, models.RoleManager, record.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMemberSelfRemovalSkipsPermissionCheck(t *testing.T) {
	db, mock := newMockDB(t)
	orgID, userID := uuid.New(), uuid.New()

	// Only the target lookup runs; no actor permission query
	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, userID, models.RoleViewer))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "organization_members"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := RemoveMember(db, orgID, userID, userID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMemberOtherNeedsRemovePermission(t *testing.T) {
	db, mock := newMockDB(t)
	orgID, actorID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, actorID, models.RoleMember))

	err := RemoveMember(db, orgID, uuid.New(), actorID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveMemberByAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	orgID, actorID, targetID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, actorID, models.RoleAdmin))
	mock.ExpectQuery(`SELECT (.+) FROM "organization_members"`).
		WillReturnRows(memberRow(orgID, targetID, models.RoleMember))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "organization_members"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := RemoveMember(db, orgID, targetID, actorID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
