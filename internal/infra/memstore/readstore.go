package memstore

import (
	"context"
	"sort"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingReadStore serves the booking read model from the same state the commands write.
type BookingReadStore struct {
	store *Store
}

func NewBookingReadStore(s *Store) *BookingReadStore {
	return &BookingReadStore{store: s}
}

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.state.bookings[id]
	if !ok || b.DeletedAt() != nil {
		return nil, infra.NotFound("booking not found")
	}
	return r.view(b), nil
}

func (r *BookingReadStore) FindByCode(_ context.Context, code string) (*queries.BookingView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, b := range r.store.state.bookings {
		if b.Code() == code && b.DeletedAt() == nil {
			return r.view(b), nil
		}
	}
	return nil, infra.NotFound("booking not found")
}

func (r *BookingReadStore) FindByGuestFirstPage(_ context.Context, guestID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return r.page(guestID, nil, uuid.Nil, limit), nil
}

func (r *BookingReadStore) FindByGuestKeyset(
	_ context.Context,
	guestID uuid.UUID,
	lastCreatedAt time.Time,
	lastID uuid.UUID,
	limit int32,
) ([]*queries.BookingListItem, error) {
	return r.page(guestID, &lastCreatedAt, lastID, limit), nil
}

// page orders by (created_at, id) descending, matching the Postgres keyset query.
func (r *BookingReadStore) page(guestID uuid.UUID, afterCreatedAt *time.Time, afterID uuid.UUID, limit int32) []*queries.BookingListItem {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*booking.Booking
	for _, b := range r.store.state.bookings {
		if b.GuestID() != guestID || b.DeletedAt() != nil {
			continue
		}
		if afterCreatedAt != nil && !before(b, *afterCreatedAt, afterID) {
			continue
		}
		rows = append(rows, b)
	}
	sort.Slice(rows, func(i, j int) bool {
		return before(rows[j], rows[i].CreatedAt().Truncate(time.Microsecond), rows[i].ID())
	})
	if int(limit) < len(rows) {
		rows = rows[:limit]
	}

	items := make([]*queries.BookingListItem, len(rows))
	for i, b := range rows {
		items[i] = &queries.BookingListItem{
			ID:            b.ID(),
			Code:          b.Code(),
			PropertyID:    b.PropertyID(),
			PropertyName:  r.propertyName(b.PropertyID()),
			CheckIn:       b.Stay().CheckIn(),
			CheckOut:      b.Stay().CheckOut(),
			Status:        b.Status().String(),
			PaymentStatus: b.PaymentStatus().String(),
			TotalAmount:   b.Price().TotalAmount,
			CreatedAt:     b.CreatedAt(),
		}
	}
	return items
}

// before reports whether b sorts strictly after the (createdAt, id) key in descending order.
func before(b *booking.Booking, createdAt time.Time, id uuid.UUID) bool {
	ts := b.CreatedAt().Truncate(time.Microsecond)
	if !ts.Equal(createdAt) {
		return ts.Before(createdAt)
	}
	return b.ID().String() < id.String()
}

func (r *BookingReadStore) view(b *booking.Booking) *queries.BookingView {
	v := queries.BookingViewOf(b)
	if p, ok := r.store.state.properties[b.PropertyID()]; ok {
		v.PropertyName = p.Name()
		v.HostID = p.HostID()
	}
	if b.CouponID() != nil {
		if c, ok := r.store.state.coupons[*b.CouponID()]; ok {
			code := c.Code
			v.CouponCode = &code
		}
	}
	return v
}

func (r *BookingReadStore) propertyName(id uuid.UUID) string {
	if p, ok := r.store.state.properties[id]; ok {
		return p.Name()
	}
	return ""
}
