//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/infra/repository"
	repositorymock "homestay-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotificationRepository_CreateJob(t *testing.T) {
	ctx := context.Background()
	runAt := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	payload := []byte(`{"booking_id":"x"}`)

	t.Run("success: job queued with fresh id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewNotificationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().InsertNotificationJob(ctx, mockDB, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ query.DBTX, arg query.InsertNotificationJobParams) error {
				assert.NotEqual(t, uuid.Nil, arg.ID)
				assert.Equal(t, "booking.confirmed", arg.Kind)
				assert.Equal(t, payload, arg.Payload)
				return nil
			})

		assert.NoError(t, repo.CreateJob(ctx, "booking.confirmed", "guest", payload, runAt))
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewNotificationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().InsertNotificationJob(ctx, mockDB, gomock.Any()).Return(errors.New("database connection error"))

		err := repo.CreateJob(ctx, "booking.confirmed", "guest", payload, runAt)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
