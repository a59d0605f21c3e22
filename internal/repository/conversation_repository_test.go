package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhive/internal/apperr"
	"taskhive/internal/repository"
)

func TestConversationRepository_FindOrCreateDirect_ReturnsExisting(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	convRepo := repository.NewConversationRepository(gormDB)

	// The membership subquery requires the pair to be the whole membership;
	// an existing match means no insert happens.
	mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE \(workspace_id = .* AND type = .*\) AND id IN \(SELECT conversation_id FROM "conversation_users" GROUP BY conversation_id HAVING COUNT\(DISTINCT user_id\) = 2 AND .*FILTER \(WHERE user_id IN .*\) = 2\).*ORDER BY updated_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "type", "created_by"}).
			AddRow(7, 1, "direct", 42))

	mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "type", "created_by"}).
			AddRow(7, 1, "direct", 42))
	mock.ExpectQuery(`SELECT .* FROM "conversation_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"conversation_id", "user_id", "role"}).
			AddRow(7, 42, "owner").
			AddRow(7, 43, "member"))

	// Act
	conv, err := convRepo.FindOrCreateDirect(context.Background(), 1, 42, 43)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, uint(7), conv.ID)
	assert.Len(t, conv.Members, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_FindOrCreateDirect_SelfRejected(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	convRepo := repository.NewConversationRepository(gormDB)

	// Act: both sides of the pair are the same user, no query is issued
	conv, err := convRepo.FindOrCreateDirect(context.Background(), 1, 42, 42)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, conv)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "user_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_AddUsers_DirectConversationRefused(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	convRepo := repository.NewConversationRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "type", "created_by"}).
			AddRow(7, 1, "direct", 42))
	mock.ExpectRollback()

	// Act
	err := convRepo.AddUsers(context.Background(), 7, []uint{44})

	// Assert
	assert.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeDomain, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_AddUsers_GroupConversation(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	convRepo := repository.NewConversationRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "type", "created_by"}).
			AddRow(8, 1, "group", 42))
	mock.ExpectExec(`INSERT INTO conversation_users`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := convRepo.AddUsers(context.Background(), 8, []uint{44})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_RemoveUsers_KeepsLastOwner(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	convRepo := repository.NewConversationRepository(gormDB)

	// Removing the only owner would leave zero owners behind.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "conversation_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	// Act
	err := convRepo.RemoveUsers(context.Background(), 7, []uint{42})

	// Assert
	assert.Error(t, err)
	appErr, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.CodeDomain, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_RemoveUsers_MemberLeaves(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	convRepo := repository.NewConversationRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "conversation_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "conversation_users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := convRepo.RemoveUsers(context.Background(), 7, []uint{43})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
