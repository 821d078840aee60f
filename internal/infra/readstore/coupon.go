package readstore

import (
	"context"

	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CouponReadQueries interface {
	GetCouponByCode(ctx context.Context, db query.DBTX, code string) (query.Coupons, error)
	GetCouponByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Coupons, error)
	CountActiveCouponUsages(ctx context.Context, db query.DBTX, arg query.CouponUserParams) (int64, error)
}

type CouponReadStore struct {
	queries CouponReadQueries
	db      query.DBTX
}

func NewCouponReadStore(queries CouponReadQueries, db query.DBTX) *CouponReadStore {
	return &CouponReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	row, err := r.queries.GetCouponByCode(ctx, r.db, code)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return toCoupon(row)
}

func (r *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	row, err := r.queries.GetCouponByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return toCoupon(row)
}

func (r *CouponReadStore) UsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	n, err := r.queries.CountActiveCouponUsages(ctx, r.db, query.CouponUserParams{CouponID: couponID, UserID: userID})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon usages", err)
	}
	return int(n), nil
}

func toCoupon(row query.Coupons) (*coupon.Coupon, error) {
	c, err := converter.CouponFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon row", err)
	}
	return c, nil
}
