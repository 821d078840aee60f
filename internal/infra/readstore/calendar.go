package readstore

import (
	"context"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CalendarReadQueries interface {
	ListAvailabilityDays(ctx context.Context, db query.DBTX, arg query.DateRangeParams) ([]query.AvailabilityDays, error)
	ListAvailabilityHolds(ctx context.Context, db query.DBTX, arg query.DateRangeParams) ([]query.AvailabilityHolds, error)
}

type CalendarReadStore struct {
	queries CalendarReadQueries
	db      query.DBTX
}

func NewCalendarReadStore(queries CalendarReadQueries, db query.DBTX) *CalendarReadStore {
	return &CalendarReadStore{
		queries: queries,
		db:      db,
	}
}

// Days returns the stored days of rng; dates without a row are open and absent from the result.
func (r *CalendarReadStore) Days(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]*availability.Day, error) {
	rows, err := r.queries.ListAvailabilityDays(ctx, r.db, dateRange(propertyID, rng))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability days", err)
	}

	days := make([]*availability.Day, 0, len(rows))
	for _, row := range rows {
		d, err := converter.DayFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert availability day", err)
		}
		days = append(days, d)
	}
	return days, nil
}

func (r *CalendarReadStore) Holds(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]availability.Hold, error) {
	rows, err := r.queries.ListAvailabilityHolds(ctx, r.db, dateRange(propertyID, rng))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability holds", err)
	}

	holds := make([]availability.Hold, len(rows))
	for i, row := range rows {
		holds[i] = converter.HoldFromRow(row)
	}
	return holds, nil
}

func dateRange(propertyID uuid.UUID, rng stay.Range) query.DateRangeParams {
	return query.DateRangeParams{
		PropertyID: propertyID,
		FromDate:   pgconv.DateToPgtype(rng.CheckIn()),
		ToDate:     pgconv.DateToPgtype(rng.CheckOut()),
	}
}
