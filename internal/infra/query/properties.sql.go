package query

import (
	"context"

	"github.com/google/uuid"
)

const getProperty = `
SELECT id, host_id, name, base_nightly_price, weekend_price, weekly_discount_percent,
       monthly_discount_percent, cleaning_fee, min_nights, max_nights, max_guests, max_infants,
       free_cancellation_hours, requires_prepayment, is_active, created_at, updated_at
FROM properties
WHERE id = $1 AND deleted_at IS NULL
`

func (q *Queries) GetProperty(ctx context.Context, db DBTX, id uuid.UUID) (Properties, error) {
	row := db.QueryRow(ctx, getProperty, id)
	var i Properties
	err := row.Scan(
		&i.ID,
		&i.HostID,
		&i.Name,
		&i.BaseNightlyPrice,
		&i.WeekendPrice,
		&i.WeeklyDiscountPercent,
		&i.MonthlyDiscountPercent,
		&i.CleaningFee,
		&i.MinNights,
		&i.MaxNights,
		&i.MaxGuests,
		&i.MaxInfants,
		&i.FreeCancellationHours,
		&i.RequiresPrepayment,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// Row lock on the property serializes calendar writers of one property.
const lockProperty = `
SELECT id FROM properties
WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`

func (q *Queries) LockProperty(ctx context.Context, db DBTX, id uuid.UUID) (uuid.UUID, error) {
	row := db.QueryRow(ctx, lockProperty, id)
	var locked uuid.UUID
	err := row.Scan(&locked)
	return locked, err
}
