//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/infra/repository"
	repositorymock "homestay-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCouponUsageRepository_Apply(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	usage := coupon.NewUsage(uuid.New(), uuid.New(), uuid.New(), decimal.RequireFromString("150000"), now)
	one := 1

	testCases := []struct {
		name         string
		perUserLimit *int
		setupMock    func(*repositorymock.MockCouponUsageWriteQueries, query.DBTX)
		expectErr    error
		expectKind   infra.RepositoryErrorKind
	}{
		{
			name:         "success: usage recorded under both limits",
			perUserLimit: &one,
			setupMock: func(mock *repositorymock.MockCouponUsageWriteQueries, tx query.DBTX) {
				gomock.InOrder(
					mock.EXPECT().IncrementCouponUsage(ctx, tx, usage.CouponID()).Return(int64(1), nil),
					mock.EXPECT().CountActiveCouponUsages(ctx, tx, query.CouponUserParams{CouponID: usage.CouponID(), UserID: usage.UserID()}).Return(int64(0), nil),
					mock.EXPECT().InsertCouponUsage(ctx, tx, gomock.Any()).DoAndReturn(
						func(_ context.Context, _ query.DBTX, arg query.InsertCouponUsageParams) error {
							assert.Equal(t, usage.ID(), arg.ID)
							assert.Equal(t, usage.BookingID(), arg.BookingID)
							return nil
						}),
				)
			},
		},
		{
			name: "success: no per-user limit skips the count",
			setupMock: func(mock *repositorymock.MockCouponUsageWriteQueries, tx query.DBTX) {
				mock.EXPECT().IncrementCouponUsage(ctx, tx, usage.CouponID()).Return(int64(1), nil)
				mock.EXPECT().InsertCouponUsage(ctx, tx, gomock.Any()).Return(nil)
			},
		},
		{
			name: "error: total limit exhausted",
			setupMock: func(mock *repositorymock.MockCouponUsageWriteQueries, tx query.DBTX) {
				mock.EXPECT().IncrementCouponUsage(ctx, tx, usage.CouponID()).Return(int64(0), nil)
			},
			expectErr: coupon.ErrUsageLimitReached,
		},
		{
			name:         "error: user already used the coupon",
			perUserLimit: &one,
			setupMock: func(mock *repositorymock.MockCouponUsageWriteQueries, tx query.DBTX) {
				mock.EXPECT().IncrementCouponUsage(ctx, tx, usage.CouponID()).Return(int64(1), nil)
				mock.EXPECT().CountActiveCouponUsages(ctx, tx, gomock.Any()).Return(int64(1), nil)
			},
			expectErr: coupon.ErrPerUserLimitReached,
		},
		{
			name: "error: usage already exists for booking",
			setupMock: func(mock *repositorymock.MockCouponUsageWriteQueries, tx query.DBTX) {
				mock.EXPECT().IncrementCouponUsage(ctx, tx, usage.CouponID()).Return(int64(1), nil)
				mock.EXPECT().InsertCouponUsage(ctx, tx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
			},
			expectErr: coupon.ErrAlreadyApplied,
		},
		{
			name: "error: increment fails",
			setupMock: func(mock *repositorymock.MockCouponUsageWriteQueries, tx query.DBTX) {
				mock.EXPECT().IncrementCouponUsage(ctx, tx, usage.CouponID()).Return(int64(0), &pgconn.PgError{Code: "40P01"})
			},
			expectKind: infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockCouponUsageWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewCouponUsageRepository(mockQueries, mockDB)
			tc.setupMock(mockQueries, mockDB)

			err := repo.Apply(ctx, usage, tc.perUserLimit)

			switch {
			case tc.expectErr != nil:
				assert.ErrorIs(t, err, tc.expectErr)
			case tc.expectKind != "":
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestCouponUsageRepository_Reverse(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	bookingID := uuid.New()
	couponID := uuid.New()

	t.Run("success: counter given back per reversed usage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockCouponUsageWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewCouponUsageRepository(mockQueries, mockDB)

		mockQueries.EXPECT().ReverseCouponUsages(ctx, mockDB, bookingID, now).Return([]uuid.UUID{couponID}, nil)
		mockQueries.EXPECT().DecrementCouponUsage(ctx, mockDB, couponID).Return(nil)

		assert.NoError(t, repo.Reverse(ctx, bookingID, now))
	})

	t.Run("success: nothing to reverse", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockCouponUsageWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewCouponUsageRepository(mockQueries, mockDB)

		mockQueries.EXPECT().ReverseCouponUsages(ctx, mockDB, bookingID, now).Return(nil, nil)

		assert.NoError(t, repo.Reverse(ctx, bookingID, now))
	})

	t.Run("error: decrement fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockCouponUsageWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewCouponUsageRepository(mockQueries, mockDB)

		mockQueries.EXPECT().ReverseCouponUsages(ctx, mockDB, bookingID, now).Return([]uuid.UUID{couponID}, nil)
		mockQueries.EXPECT().DecrementCouponUsage(ctx, mockDB, couponID).Return(errors.New("database connection error"))

		err := repo.Reverse(ctx, bookingID, now)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
