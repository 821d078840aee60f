package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DateRangeParams struct {
	PropertyID uuid.UUID
	// FromDate is inclusive, ToDate exclusive.
	FromDate pgtype.Date
	ToDate   pgtype.Date
}

const listAvailabilityDays = `
SELECT property_id, stay_date, is_available, is_blocked, block_reason, custom_price,
       minimum_nights, updated_at
FROM availability_days
WHERE property_id = $1 AND stay_date >= $2 AND stay_date < $3 AND deleted_at IS NULL
ORDER BY stay_date
`

func (q *Queries) ListAvailabilityDays(ctx context.Context, db DBTX, arg DateRangeParams) ([]AvailabilityDays, error) {
	rows, err := db.Query(ctx, listAvailabilityDays, arg.PropertyID, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AvailabilityDays
	for rows.Next() {
		var i AvailabilityDays
		if err := rows.Scan(
			&i.PropertyID,
			&i.StayDate,
			&i.IsAvailable,
			&i.IsBlocked,
			&i.BlockReason,
			&i.CustomPrice,
			&i.MinimumNights,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listAvailabilityHolds = `
SELECT property_id, stay_date, booking_id, booking_code
FROM availability_holds
WHERE property_id = $1 AND stay_date >= $2 AND stay_date < $3
ORDER BY stay_date
`

func (q *Queries) ListAvailabilityHolds(ctx context.Context, db DBTX, arg DateRangeParams) ([]AvailabilityHolds, error) {
	rows, err := db.Query(ctx, listAvailabilityHolds, arg.PropertyID, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AvailabilityHolds
	for rows.Next() {
		var i AvailabilityHolds
		if err := rows.Scan(&i.PropertyID, &i.StayDate, &i.BookingID, &i.BookingCode); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

type UpsertAvailabilityDayParams struct {
	PropertyID    uuid.UUID
	StayDate      pgtype.Date
	IsAvailable   bool
	IsBlocked     bool
	BlockReason   pgtype.Text
	CustomPrice   pgtype.Numeric
	MinimumNights pgtype.Int4
	UpdatedAt     pgtype.Timestamptz
}

// A soft-deleted row for the same date is revived by the upsert.
const upsertAvailabilityDay = `
INSERT INTO availability_days (
    property_id, stay_date, is_available, is_blocked, block_reason, custom_price, minimum_nights, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (property_id, stay_date) DO UPDATE SET
    is_available = EXCLUDED.is_available,
    is_blocked = EXCLUDED.is_blocked,
    block_reason = EXCLUDED.block_reason,
    custom_price = EXCLUDED.custom_price,
    minimum_nights = EXCLUDED.minimum_nights,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL
`

func (q *Queries) UpsertAvailabilityDay(ctx context.Context, db DBTX, arg UpsertAvailabilityDayParams) error {
	_, err := db.Exec(ctx, upsertAvailabilityDay,
		arg.PropertyID,
		arg.StayDate,
		arg.IsAvailable,
		arg.IsBlocked,
		arg.BlockReason,
		arg.CustomPrice,
		arg.MinimumNights,
		arg.UpdatedAt,
	)
	return err
}

type InsertAvailabilityHoldsParams struct {
	PropertyID  uuid.UUID
	Dates       []pgtype.Date
	BookingID   uuid.UUID
	BookingCode string
}

// Dates already held are skipped; the caller compares the inserted count with len(Dates).
const insertAvailabilityHolds = `
INSERT INTO availability_holds (property_id, stay_date, booking_id, booking_code)
SELECT $1, d, $3, $4 FROM unnest($2::date[]) AS d
ON CONFLICT (property_id, stay_date) DO NOTHING
`

func (q *Queries) InsertAvailabilityHolds(ctx context.Context, db DBTX, arg InsertAvailabilityHoldsParams) (int64, error) {
	tag, err := db.Exec(ctx, insertAvailabilityHolds, arg.PropertyID, arg.Dates, arg.BookingID, arg.BookingCode)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type DeleteAvailabilityHoldsParams struct {
	PropertyID uuid.UUID
	FromDate   pgtype.Date
	ToDate     pgtype.Date
	BookingID  uuid.UUID
}

const deleteAvailabilityHolds = `
DELETE FROM availability_holds
WHERE property_id = $1 AND stay_date >= $2 AND stay_date < $3 AND booking_id = $4
`

func (q *Queries) DeleteAvailabilityHolds(ctx context.Context, db DBTX, arg DeleteAvailabilityHoldsParams) (int64, error) {
	tag, err := db.Exec(ctx, deleteAvailabilityHolds, arg.PropertyID, arg.FromDate, arg.ToDate, arg.BookingID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
