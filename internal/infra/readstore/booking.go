package readstore

import (
	"context"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"
	"homestay-booking/internal/usecase/queries"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingReadQueries interface {
	GetBooking(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Bookings, error)
	GetBookingByCode(ctx context.Context, db query.DBTX, code string) (query.Bookings, error)
	GetBookingView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.BookingViewRow, error)
	GetBookingViewByCode(ctx context.Context, db query.DBTX, code string) (query.BookingViewRow, error)
	ListGuestBookingsFirstPage(ctx context.Context, db query.DBTX, arg query.ListGuestBookingsFirstPageParams) ([]query.GuestBookingListRow, error)
	ListGuestBookingsKeyset(ctx context.Context, db query.DBTX, arg query.ListGuestBookingsKeysetParams) ([]query.GuestBookingListRow, error)
	CountGuestBookings(ctx context.Context, db query.DBTX, arg query.CountGuestBookingsParams) (query.CountGuestBookingsRow, error)
	ListExpiredPendingBookings(ctx context.Context, db query.DBTX, arg query.ListExpiredPendingBookingsParams) ([]uuid.UUID, error)
}

// BookingReadStore loads booking aggregates for commands and serves the booking read model.
type BookingReadStore struct {
	queries BookingReadQueries
	db      query.DBTX
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

func NewBookingReadStore(queries BookingReadQueries, db query.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) LoadByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBooking(ctx, r.db, id)
	if err != nil {
		return nil, bookingLookupErr(err, "failed to find booking by ID")
	}
	return toBooking(row)
}

func (r *BookingReadStore) LoadByCode(ctx context.Context, code string) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByCode(ctx, r.db, code)
	if err != nil {
		return nil, bookingLookupErr(err, "failed to find booking by code")
	}
	return toBooking(row)
}

func (r *BookingReadStore) History(ctx context.Context, guestID uuid.UUID, excludeBookingID *uuid.UUID) (shared.BookingHistory, error) {
	row, err := r.queries.CountGuestBookings(ctx, r.db, query.CountGuestBookingsParams{
		GuestID:   guestID,
		ExcludeID: pgconv.UUIDPtrToPgtype(excludeBookingID),
	})
	if err != nil {
		return shared.BookingHistory{}, infra.WrapRepoErr("failed to count guest bookings", err)
	}
	return shared.BookingHistory{Total: int(row.Total), Active: int(row.Active)}, nil
}

func (r *BookingReadStore) ExpiredPending(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListExpiredPendingBookings(ctx, r.db, query.ListExpiredPendingBookingsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: int32(limit), // #nosec G115 -- batch size from config
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired pending bookings", err)
	}
	return ids, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingView(ctx, r.db, id)
	if err != nil {
		return nil, bookingLookupErr(err, "failed to find booking view by ID")
	}
	return toBookingView(row)
}

func (r *BookingReadStore) FindByCode(ctx context.Context, code string) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByCode(ctx, r.db, code)
	if err != nil {
		return nil, bookingLookupErr(err, "failed to find booking view by code")
	}
	return toBookingView(row)
}

func (r *BookingReadStore) FindByGuestFirstPage(ctx context.Context, guestID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.queries.ListGuestBookingsFirstPage(ctx, r.db, query.ListGuestBookingsFirstPageParams{
		GuestID: guestID,
		Limit:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list guest bookings", err)
	}
	return toBookingListItems(rows)
}

func (r *BookingReadStore) FindByGuestKeyset(
	ctx context.Context,
	guestID uuid.UUID,
	lastCreatedAt time.Time,
	lastID uuid.UUID,
	limit int32,
) ([]*queries.BookingListItem, error) {
	rows, err := r.queries.ListGuestBookingsKeyset(ctx, r.db, query.ListGuestBookingsKeysetParams{
		GuestID:       guestID,
		LastCreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		LastID:        lastID,
		Limit:         limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list guest bookings with keyset", err)
	}
	return toBookingListItems(rows)
}

func bookingLookupErr(err error, msg string) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, err)
}

func toBooking(row query.Bookings) (*booking.Booking, error) {
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking row", err)
	}
	return b, nil
}

func toBookingView(row query.BookingViewRow) (*queries.BookingView, error) {
	b, err := toBooking(row.Bookings)
	if err != nil {
		return nil, err
	}
	v := queries.BookingViewOf(b)
	v.PropertyName = row.PropertyName
	v.HostID = row.HostID
	v.CouponCode = pgconv.StringPtrFromPgtype(row.CouponCode)
	return v, nil
}

func toBookingListItems(rows []query.GuestBookingListRow) ([]*queries.BookingListItem, error) {
	items := make([]*queries.BookingListItem, 0, len(rows))
	for _, row := range rows {
		total, err := pgconv.DecimalFromNumeric(row.TotalAmount)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert total amount", err)
		}
		items = append(items, &queries.BookingListItem{
			ID:            row.ID,
			Code:          row.Code,
			PropertyID:    row.PropertyID,
			PropertyName:  row.PropertyName,
			CheckIn:       pgconv.DateFromPgtype(row.CheckIn),
			CheckOut:      pgconv.DateFromPgtype(row.CheckOut),
			Status:        row.Status,
			PaymentStatus: row.PaymentStatus,
			TotalAmount:   total,
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return items, nil
}
