package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"taskhive/internal/repository"
)

func TestRecurringTaskRepository_GetDue(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	recurringRepo := repository.NewRecurringTaskRepository(gormDB)

	due := time.Now().Add(-time.Hour)
	mock.ExpectQuery(`SELECT .* FROM "recurring_tasks" WHERE is_active = .* AND next_due_date <= .* ORDER BY next_due_date ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "frequency", "next_due_date", "is_active"}).
			AddRow(1, 10, "daily", due, true))

	// Act
	schedules, err := recurringRepo.GetDue(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, schedules, 1)
	assert.Equal(t, uint(10), schedules[0].TaskID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringTaskRepository_GetByTaskID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	recurringRepo := repository.NewRecurringTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "recurring_tasks" WHERE task_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	rt, err := recurringRepo.GetByTaskID(context.Background(), 10)

	// Assert: no schedule yet is a soft miss so callers can branch on it
	assert.NoError(t, err)
	assert.Nil(t, rt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
