package repository

import (
	"context"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

//go:generate mockgen -source=calendar.go -destination=../../../tests/mock/repository/calendar_mock.go -package=repositorymock

type CalendarWriteQueries interface {
	LockProperty(ctx context.Context, db query.DBTX, id uuid.UUID) (uuid.UUID, error)
	GetBooking(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Bookings, error)
	ListAvailabilityHolds(ctx context.Context, db query.DBTX, arg query.DateRangeParams) ([]query.AvailabilityHolds, error)
	InsertAvailabilityHolds(ctx context.Context, db query.DBTX, arg query.InsertAvailabilityHoldsParams) (int64, error)
	DeleteAvailabilityHolds(ctx context.Context, db query.DBTX, arg query.DeleteAvailabilityHoldsParams) (int64, error)
	UpsertAvailabilityDay(ctx context.Context, db query.DBTX, arg query.UpsertAvailabilityDayParams) error
}

type CalendarRepository struct {
	queries CalendarWriteQueries
	db      query.DBTX
}

func NewCalendarRepository(queries CalendarWriteQueries, db query.DBTX) *CalendarRepository {
	return &CalendarRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CalendarRepository) LockProperty(ctx context.Context, propertyID uuid.UUID) error {
	if _, err := r.queries.LockProperty(ctx, r.db, propertyID); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock property", err)
	}
	return nil
}

// ReserveRange relies on the (property_id, stay_date) key of availability_holds. When any night is
// taken the nights this call inserted are removed again and the first foreign hold is reported.
func (r *CalendarRepository) ReserveRange(ctx context.Context, propertyID uuid.UUID, rng stay.Range, bookingID uuid.UUID) error {
	row, err := r.queries.GetBooking(ctx, r.db, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to load booking for hold", err)
	}

	dates := rng.Dates()
	pgDates := make([]pgtype.Date, len(dates))
	for i, d := range dates {
		pgDates[i] = pgconv.DateToPgtype(d)
	}

	inserted, err := r.queries.InsertAvailabilityHolds(ctx, r.db, query.InsertAvailabilityHoldsParams{
		PropertyID:  propertyID,
		Dates:       pgDates,
		BookingID:   bookingID,
		BookingCode: row.Code,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to insert availability holds", err)
	}
	if inserted == int64(len(dates)) {
		return nil
	}

	holds, err := r.queries.ListAvailabilityHolds(ctx, r.db, rangeParams(propertyID, rng))
	if err != nil {
		return infra.WrapRepoErr("failed to list conflicting holds", err)
	}
	if inserted > 0 {
		if err := r.ReleaseRange(ctx, propertyID, rng, bookingID); err != nil {
			return err
		}
	}
	for _, h := range holds {
		if h.BookingID != bookingID {
			return &availability.ConflictError{Date: pgconv.DateFromPgtype(h.StayDate), Status: availability.StatusBooked}
		}
	}
	// Rows existed for this booking already; nothing foreign blocks the range.
	return nil
}

func (r *CalendarRepository) ReleaseRange(ctx context.Context, propertyID uuid.UUID, rng stay.Range, bookingID uuid.UUID) error {
	_, err := r.queries.DeleteAvailabilityHolds(ctx, r.db, query.DeleteAvailabilityHoldsParams{
		PropertyID: propertyID,
		FromDate:   pgconv.DateToPgtype(rng.CheckIn()),
		ToDate:     pgconv.DateToPgtype(rng.CheckOut()),
		BookingID:  bookingID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to release availability holds", err)
	}
	return nil
}

func (r *CalendarRepository) UpsertDays(ctx context.Context, days []*availability.Day) error {
	for _, d := range days {
		if err := r.queries.UpsertAvailabilityDay(ctx, r.db, converter.DayToParams(d)); err != nil {
			return infra.WrapRepoErr("failed to upsert availability day", err)
		}
	}
	return nil
}

func rangeParams(propertyID uuid.UUID, rng stay.Range) query.DateRangeParams {
	return query.DateRangeParams{
		PropertyID: propertyID,
		FromDate:   pgconv.DateToPgtype(rng.CheckIn()),
		ToDate:     pgconv.DateToPgtype(rng.CheckOut()),
	}
}
