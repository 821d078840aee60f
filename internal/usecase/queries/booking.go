package queries

import (
	"context"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking_mock.go -package=queriesmock

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
	ErrInvalidCursor   = errs.New("invalid cursor")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByCode(ctx context.Context, code string) (*BookingView, error)
	FindByGuestFirstPage(ctx context.Context, guestID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByGuestKeyset(ctx context.Context, guestID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor booking.Actor, id uuid.UUID) (*BookingView, error)
	GetByCode(ctx context.Context, actor booking.Actor, code string) (*BookingView, error)
	ListByGuest(ctx context.Context, actor booking.Actor, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor booking.Actor, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, bookingLookupErr(err)
	}
	if !canView(actor, v) {
		return nil, ErrBookingAccess
	}
	return v, nil
}

func (q *bookingQueriesImpl) GetByCode(ctx context.Context, actor booking.Actor, code string) (*BookingView, error) {
	v, err := q.store.FindByCode(ctx, code)
	if err != nil {
		return nil, bookingLookupErr(err)
	}
	if !canView(actor, v) {
		return nil, ErrBookingAccess
	}
	return v, nil
}

func (q *bookingQueriesImpl) ListByGuest(ctx context.Context, actor booking.Actor, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var (
		rows []*BookingListItem
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByGuestFirstPage(ctx, actor.ID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, ErrInvalidCursor)
		}
		rows, err = q.store.FindByGuestKeyset(ctx, actor.ID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

// canView lets guests see their own bookings, hosts the bookings of their properties and admins everything.
func canView(actor booking.Actor, v *BookingView) bool {
	switch actor.Role {
	case booking.ActorAdmin:
		return true
	case booking.ActorGuest:
		return v.GuestID == actor.ID
	case booking.ActorHost:
		return v.HostID == actor.ID || v.GuestID == actor.ID
	default:
		return false
	}
}

func bookingLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrBookingNotFound)
	}
	return err
}
