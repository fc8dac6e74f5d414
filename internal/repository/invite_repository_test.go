package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockInviteRepo(t *testing.T) (InviteRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewInviteRepository(db), mock
}

func TestInviteRepository_ResolveRollsBackOnMembershipFailure(t *testing.T) {
	repo, mock := setupMockInviteRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invites"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "group_members"`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	groupID := uint64(3)
	invite := &models.Invite{
		ID:             5,
		Type:           models.InviteTypeGroup,
		RecipientEmail: "invitee@x.com",
		GroupID:        &groupID,
	}
	member := &models.GroupMember{GroupID: groupID, UserID: 9, JoinedAt: time.Now()}

	err := repo.Resolve(invite, true, member, nil)
	require.ErrorIs(t, err, ErrCreateMembership)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteRepository_ResolveDecline(t *testing.T) {
	repo, mock := setupMockInviteRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invites"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	invite := &models.Invite{
		ID:             5,
		Type:           models.InviteTypeFriendRequest,
		RecipientEmail: "invitee@x.com",
	}

	err := repo.Resolve(invite, false, nil, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
