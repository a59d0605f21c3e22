package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"taskhive/internal/repository"
)

func TestSettingRepository_Get_ScopedRowWins(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	settingRepo := repository.NewSettingRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "settings" WHERE key = .* AND workspace_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "workspace_id"}).
			AddRow(1, "locale", "de", 4))

	// Act
	setting, err := settingRepo.Get(context.Background(), "locale", 4)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "de", setting.Value)
	assert.NotNil(t, setting.WorkspaceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepository_Get_FallsBackToGlobal(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	settingRepo := repository.NewSettingRepository(gormDB)

	// No workspace row, so the global row answers.
	mock.ExpectQuery(`SELECT .* FROM "settings" WHERE key = .* AND workspace_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectQuery(`SELECT .* FROM "settings" WHERE key = .* AND workspace_id IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "workspace_id"}).
			AddRow(2, "locale", "en", nil))

	// Act
	setting, err := settingRepo.Get(context.Background(), "locale", 4)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "en", setting.Value)
	assert.Nil(t, setting.WorkspaceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepository_Get_MissingEverywhere(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	settingRepo := repository.NewSettingRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "settings" WHERE key = .* AND workspace_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectQuery(`SELECT .* FROM "settings" WHERE key = .* AND workspace_id IS NULL`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	setting, err := settingRepo.Get(context.Background(), "locale", 4)

	// Assert
	assert.ErrorIs(t, err, repository.ErrSettingNotFound)
	assert.Nil(t, setting)
	assert.NoError(t, mock.ExpectationsWereMet())
}
