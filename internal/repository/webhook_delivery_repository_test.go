package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"taskhive/internal/model"
	"taskhive/internal/repository"
)

func TestNextAttemptDelay(t *testing.T) {
	cases := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 1 * time.Minute},
		{1, 2 * time.Minute},
		{2, 4 * time.Minute},
		{3, 8 * time.Minute},
		{4, 16 * time.Minute},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, repository.NextAttemptDelay(c.attempts), "attempts=%d", c.attempts)
	}
}

func TestWebhookDeliveryRepository_GetFailedReadyForRetry(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	deliveryRepo := repository.NewWebhookDeliveryRepository(gormDB)

	past := time.Now().Add(-5 * time.Minute)
	mock.ExpectQuery(`SELECT .* FROM "webhook_deliveries" WHERE \(status = .* AND attempts < .*\) AND \(next_attempt_at IS NULL OR next_attempt_at <= .*\) ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "webhook_id", "status", "attempts", "next_attempt_at"}).
			AddRow(1, 10, "failed", 2, past).
			AddRow(2, 11, "failed", 0, nil))

	// Act
	deliveries, err := deliveryRepo.GetFailedReadyForRetry(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, deliveries, 2)
	assert.Equal(t, 2, deliveries[0].Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookDeliveryRepository_MarkAsFailed_SchedulesBackoff(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	deliveryRepo := repository.NewWebhookDeliveryRepository(gormDB)

	delivery := &model.WebhookDelivery{
		ID:        5,
		WebhookID: 10,
		Event:     "task.created",
		Status:    model.DeliveryFailed,
		Attempts:  2,
	}
	before := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "webhook_deliveries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	code := 502

	// Act
	err := deliveryRepo.MarkAsFailed(context.Background(), delivery, &code, "bad gateway")

	// Assert: attempts incremented, next attempt 2^2 = 4 minutes out
	assert.NoError(t, err)
	assert.Equal(t, 3, delivery.Attempts)
	assert.NotNil(t, delivery.NextAttemptAt)
	expected := before.Add(4 * time.Minute)
	assert.WithinDuration(t, expected, *delivery.NextAttemptAt, 5*time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}
