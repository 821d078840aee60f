package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `
SELECT c.id, c.code, c.discount_type, c.discount_value, c.max_discount_amount, c.start_date, c.end_date,
       c.total_usage_limit, c.usage_per_user, c.used_count, c.minimum_booking_amount, c.minimum_nights,
       c.scope, c.is_active, c.is_public, c.is_first_booking_only, c.is_new_user_only, c.priority,
       COALESCE(
           (SELECT array_agg(cp.property_id ORDER BY cp.property_id)
            FROM coupon_properties cp WHERE cp.coupon_id = c.id),
           '{}'::uuid[]
       ) AS property_ids
FROM coupons c
`

const getCouponByCode = couponColumns + `WHERE c.code = $1 AND c.deleted_at IS NULL`

func (q *Queries) GetCouponByCode(ctx context.Context, db DBTX, code string) (Coupons, error) {
	return scanCoupon(db.QueryRow(ctx, getCouponByCode, code))
}

const getCouponByID = couponColumns + `WHERE c.id = $1 AND c.deleted_at IS NULL`

func (q *Queries) GetCouponByID(ctx context.Context, db DBTX, id uuid.UUID) (Coupons, error) {
	return scanCoupon(db.QueryRow(ctx, getCouponByID, id))
}

func scanCoupon(row interface{ Scan(...any) error }) (Coupons, error) {
	var i Coupons
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.DiscountType,
		&i.DiscountValue,
		&i.MaxDiscountAmount,
		&i.StartDate,
		&i.EndDate,
		&i.TotalUsageLimit,
		&i.UsagePerUser,
		&i.UsedCount,
		&i.MinimumBookingAmount,
		&i.MinimumNights,
		&i.Scope,
		&i.IsActive,
		&i.IsPublic,
		&i.IsFirstBookingOnly,
		&i.IsNewUserOnly,
		&i.Priority,
		&i.PropertyIDs,
	)
	return i, err
}

// Takes one unit of the total limit; zero rows affected means the limit is spent.
const incrementCouponUsage = `
UPDATE coupons
SET used_count = used_count + 1
WHERE id = $1 AND deleted_at IS NULL
  AND (total_usage_limit IS NULL OR used_count < total_usage_limit)
`

func (q *Queries) IncrementCouponUsage(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, incrementCouponUsage, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const decrementCouponUsage = `
UPDATE coupons SET used_count = GREATEST(used_count - 1, 0) WHERE id = $1
`

func (q *Queries) DecrementCouponUsage(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, decrementCouponUsage, id)
	return err
}

type CouponUserParams struct {
	CouponID uuid.UUID
	UserID   uuid.UUID
}

const countActiveCouponUsages = `
SELECT count(*) FROM coupon_usages
WHERE coupon_id = $1 AND user_id = $2 AND reversed_at IS NULL
`

func (q *Queries) CountActiveCouponUsages(ctx context.Context, db DBTX, arg CouponUserParams) (int64, error) {
	row := db.QueryRow(ctx, countActiveCouponUsages, arg.CouponID, arg.UserID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

type InsertCouponUsageParams struct {
	ID             uuid.UUID
	CouponID       uuid.UUID
	UserID         uuid.UUID
	BookingID      uuid.UUID
	DiscountAmount pgtype.Numeric
	UsedAt         pgtype.Timestamptz
}

const insertCouponUsage = `
INSERT INTO coupon_usages (id, coupon_id, user_id, booking_id, discount_amount, used_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (q *Queries) InsertCouponUsage(ctx context.Context, db DBTX, arg InsertCouponUsageParams) error {
	_, err := db.Exec(ctx, insertCouponUsage,
		arg.ID,
		arg.CouponID,
		arg.UserID,
		arg.BookingID,
		arg.DiscountAmount,
		arg.UsedAt,
	)
	return err
}

const reverseCouponUsages = `
UPDATE coupon_usages SET reversed_at = $2
WHERE booking_id = $1 AND reversed_at IS NULL
RETURNING coupon_id
`

// ReverseCouponUsages returns the coupon of every usage it reversed.
func (q *Queries) ReverseCouponUsages(ctx context.Context, db DBTX, bookingID uuid.UUID, at time.Time) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, reverseCouponUsages, bookingID, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
