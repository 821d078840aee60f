package repository

import (
	"context"
	"time"

	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=coupon_usage.go -destination=../../../tests/mock/repository/coupon_usage_mock.go -package=repositorymock

type CouponUsageWriteQueries interface {
	CountActiveCouponUsages(ctx context.Context, db query.DBTX, arg query.CouponUserParams) (int64, error)
	IncrementCouponUsage(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
	InsertCouponUsage(ctx context.Context, db query.DBTX, arg query.InsertCouponUsageParams) error
	ReverseCouponUsages(ctx context.Context, db query.DBTX, bookingID uuid.UUID, at time.Time) ([]uuid.UUID, error)
	DecrementCouponUsage(ctx context.Context, db query.DBTX, id uuid.UUID) error
}

type CouponUsageRepository struct {
	queries CouponUsageWriteQueries
	db      query.DBTX
}

func NewCouponUsageRepository(queries CouponUsageWriteQueries, db query.DBTX) *CouponUsageRepository {
	return &CouponUsageRepository{
		queries: queries,
		db:      db,
	}
}

// Apply takes the total limit first. The increment holds the coupon row lock until commit, so the
// per-user count that follows cannot race another usage of the same coupon.
func (r *CouponUsageRepository) Apply(ctx context.Context, usage *coupon.Usage, perUserLimit *int) error {
	key := query.CouponUserParams{CouponID: usage.CouponID(), UserID: usage.UserID()}

	affected, err := r.queries.IncrementCouponUsage(ctx, r.db, usage.CouponID())
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	if affected == 0 {
		return coupon.ErrUsageLimitReached
	}

	if perUserLimit != nil {
		used, err := r.queries.CountActiveCouponUsages(ctx, r.db, key)
		if err != nil {
			return infra.WrapRepoErr("failed to count coupon usages", err)
		}
		if used >= int64(*perUserLimit) {
			return coupon.ErrPerUserLimitReached
		}
	}

	err = r.queries.InsertCouponUsage(ctx, r.db, query.InsertCouponUsageParams{
		ID:             usage.ID(),
		CouponID:       usage.CouponID(),
		UserID:         usage.UserID(),
		BookingID:      usage.BookingID(),
		DiscountAmount: pgconv.DecimalToNumeric(usage.DiscountAmount()),
		UsedAt:         pgconv.TimeToPgtype(usage.UsedAt()),
	})
	if err != nil {
		if infra.Classify(err) == infra.KindDuplicateKey {
			return coupon.ErrAlreadyApplied
		}
		return infra.WrapRepoErr("failed to record coupon usage", err)
	}
	return nil
}

func (r *CouponUsageRepository) Reverse(ctx context.Context, bookingID uuid.UUID, now time.Time) error {
	couponIDs, err := r.queries.ReverseCouponUsages(ctx, r.db, bookingID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to reverse coupon usage", err)
	}
	for _, id := range couponIDs {
		if err := r.queries.DecrementCouponUsage(ctx, r.db, id); err != nil {
			return infra.WrapRepoErr("failed to give back coupon usage", err)
		}
	}
	return nil
}
