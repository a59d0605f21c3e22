package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"taskhive/internal/apperr"
	"taskhive/internal/model"
	"taskhive/internal/repository"
)

func TestCustomFieldRepository_Create_DuplicateKeyInScope(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	fieldRepo := repository.NewCustomFieldRepository(gormDB)

	// A field with the same key already exists for (workspace, applies_to).
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "custom_fields" WHERE workspace_id = .* AND applies_to = .* AND key = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	field := &model.CustomField{
		WorkspaceID: 1,
		Key:         "severity",
		AppliesTo:   "tasks",
		Label:       "Severity",
		Type:        model.FieldSelect,
		Options:     model.StringSlice{"Low", "High"},
	}

	// Act
	err := fieldRepo.Create(context.Background(), field)

	// Assert
	assert.Error(t, err)
	appErr, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, []string{"The key has already been taken."}, appErr.Fields["key"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomFieldRepository_Create_SameKeyOtherScope(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	fieldRepo := repository.NewCustomFieldRepository(gormDB)

	// The key exists for another entity kind, so this scope is free.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "custom_fields"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "custom_fields"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	field := &model.CustomField{
		WorkspaceID: 1,
		Key:         "severity",
		AppliesTo:   "projects",
		Label:       "Severity",
		Type:        model.FieldText,
	}

	// Act
	err := fieldRepo.Create(context.Background(), field)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uint(4), field.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomFieldRepository_Update_ExcludesSelfFromKeyCheck(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	fieldRepo := repository.NewCustomFieldRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "custom_fields" WHERE \(workspace_id = .* AND applies_to = .* AND key = .*\) AND id <> .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "custom_fields"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	field := &model.CustomField{
		ID:          4,
		WorkspaceID: 1,
		Key:         "severity",
		AppliesTo:   "projects",
		Label:       "Severity (renamed)",
		Type:        model.FieldText,
	}

	// Act
	err := fieldRepo.Update(context.Background(), field)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
