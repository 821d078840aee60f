package memstore

import (
	"context"
	"sort"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type reads struct {
	st *state
}

func (r *reads) PropertyByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	p, ok := r.st.properties[id]
	if !ok {
		return nil, infra.NotFound("property not found")
	}
	return p, nil
}

func (r *reads) GuestProfile(_ context.Context, userID uuid.UUID) (*user.Profile, error) {
	p, ok := r.st.profiles[userID]
	if !ok {
		return nil, infra.NotFound("user profile not found")
	}
	return p, nil
}

func (r *reads) CouponByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	for _, p := range r.st.coupons {
		if p.Code == code {
			return coupon.NewCoupon(p)
		}
	}
	return nil, infra.NotFound("coupon not found")
}

func (r *reads) CouponByID(_ context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	p, ok := r.st.coupons[id]
	if !ok {
		return nil, infra.NotFound("coupon not found")
	}
	return coupon.NewCoupon(p)
}

func (r *reads) CouponUsageCount(_ context.Context, couponID, userID uuid.UUID) (int, error) {
	return r.st.activeUsages(couponID, userID), nil
}

func (r *reads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.st.bookings[id]
	if !ok || b.DeletedAt() != nil {
		return nil, infra.NotFound("booking not found")
	}
	return b.Clone(), nil
}

func (r *reads) BookingByCode(_ context.Context, code string) (*booking.Booking, error) {
	for _, b := range r.st.bookings {
		if b.Code() == code && b.DeletedAt() == nil {
			return b.Clone(), nil
		}
	}
	return nil, infra.NotFound("booking not found")
}

func (r *reads) GuestBookingHistory(_ context.Context, userID uuid.UUID, excludeBookingID *uuid.UUID) (shared.BookingHistory, error) {
	var h shared.BookingHistory
	for _, b := range r.st.bookings {
		if b.GuestID() != userID || b.DeletedAt() != nil {
			continue
		}
		if excludeBookingID != nil && b.ID() == *excludeBookingID {
			continue
		}
		h.Total++
		if !b.Status().Released() {
			h.Active++
		}
	}
	return h, nil
}

func (r *reads) ExpiredPendingBookings(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var overdue []*booking.Booking
	for _, b := range r.st.bookings {
		if b.DeletedAt() == nil && b.PaymentOverdue(now) {
			overdue = append(overdue, b)
		}
	}
	sort.Slice(overdue, func(i, j int) bool {
		return overdue[i].PaymentExpiresAt().Before(*overdue[j].PaymentExpiresAt())
	})
	if limit > 0 && len(overdue) > limit {
		overdue = overdue[:limit]
	}
	ids := make([]uuid.UUID, len(overdue))
	for i, b := range overdue {
		ids[i] = b.ID()
	}
	return ids, nil
}

func (r *reads) CalendarDays(_ context.Context, propertyID uuid.UUID, rng stay.Range) ([]*availability.Day, error) {
	var days []*availability.Day
	for _, d := range rng.Dates() {
		if day, ok := r.st.days[dayKey{propertyID, d}]; ok {
			days = append(days, copyDay(day))
		}
	}
	return days, nil
}

func (r *reads) CalendarHolds(_ context.Context, propertyID uuid.UUID, rng stay.Range) ([]availability.Hold, error) {
	var holds []availability.Hold
	for _, d := range rng.Dates() {
		if h, ok := r.st.holds[dayKey{propertyID, d}]; ok {
			holds = append(holds, h)
		}
	}
	return holds, nil
}

func (r *reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[idempotencyKey{key, userID}]
	if !ok {
		return nil, infra.NotFound("idempotency key not found")
	}
	return &rec, nil
}

func (s *state) activeUsages(couponID, userID uuid.UUID) int {
	n := 0
	for _, u := range s.usages {
		if u.CouponID() == couponID && u.UserID() == userID && !u.IsReversed() {
			n++
		}
	}
	return n
}

// lockedReads serves CommandReads outside a transaction.
type lockedReads struct {
	store *Store
}

func (l *lockedReads) with() (*reads, func()) {
	l.store.mu.RLock()
	return &reads{st: l.store.state}, l.store.mu.RUnlock
}

func (l *lockedReads) PropertyByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	r, done := l.with()
	defer done()
	return r.PropertyByID(ctx, id)
}

func (l *lockedReads) GuestProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	r, done := l.with()
	defer done()
	return r.GuestProfile(ctx, userID)
}

func (l *lockedReads) CouponByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	r, done := l.with()
	defer done()
	return r.CouponByCode(ctx, code)
}

func (l *lockedReads) CouponByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	r, done := l.with()
	defer done()
	return r.CouponByID(ctx, id)
}

func (l *lockedReads) CouponUsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	r, done := l.with()
	defer done()
	return r.CouponUsageCount(ctx, couponID, userID)
}

func (l *lockedReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	r, done := l.with()
	defer done()
	return r.BookingByID(ctx, id)
}

func (l *lockedReads) BookingByCode(ctx context.Context, code string) (*booking.Booking, error) {
	r, done := l.with()
	defer done()
	return r.BookingByCode(ctx, code)
}

func (l *lockedReads) GuestBookingHistory(ctx context.Context, userID uuid.UUID, excludeBookingID *uuid.UUID) (shared.BookingHistory, error) {
	r, done := l.with()
	defer done()
	return r.GuestBookingHistory(ctx, userID, excludeBookingID)
}

func (l *lockedReads) ExpiredPendingBookings(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	r, done := l.with()
	defer done()
	return r.ExpiredPendingBookings(ctx, now, limit)
}

func (l *lockedReads) CalendarDays(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]*availability.Day, error) {
	r, done := l.with()
	defer done()
	return r.CalendarDays(ctx, propertyID, rng)
}

func (l *lockedReads) CalendarHolds(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]availability.Hold, error) {
	r, done := l.with()
	defer done()
	return r.CalendarHolds(ctx, propertyID, rng)
}

func (l *lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r, done := l.with()
	defer done()
	return r.IdempotencyByKey(ctx, key, userID)
}
