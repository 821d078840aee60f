package repository

import (
	"context"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/repository/booking_mock.go -package=repositorymock

type BookingWriteQueries interface {
	InsertBooking(ctx context.Context, db query.DBTX, arg query.Bookings) error
	UpdateBooking(ctx context.Context, db query.DBTX, arg query.UpdateBookingParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      query.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db query.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.queries.InsertBooking(ctx, r.db, converter.BookingToRow(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// Save writes b if the stored version still equals b.Version(), then advances b to the new version.
func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	params := query.UpdateBookingParams{
		Bookings:        converter.BookingToRow(b),
		ExpectedVersion: int32(b.Version()), // #nosec G115
	}
	affected, err := r.queries.UpdateBooking(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("booking version mismatch", booking.ErrStaleState, infra.KindConflict)
	}
	b.Persisted(b.Version() + 1)
	return nil
}
