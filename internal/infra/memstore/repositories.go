package memstore

import (
	"context"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type bookingRepo struct {
	st *state
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.st.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	for _, other := range r.st.bookings {
		if other.Code() == b.Code() {
			return infra.WrapRepoErr("booking code already exists", nil, infra.KindDuplicateKey)
		}
	}
	r.st.bookings[b.ID()] = b.Clone()
	return nil
}

func (r *bookingRepo) Save(_ context.Context, b *booking.Booking) error {
	stored, ok := r.st.bookings[b.ID()]
	if !ok || stored.DeletedAt() != nil {
		return infra.NotFound("booking not found")
	}
	if stored.Version() != b.Version() {
		return infra.WrapRepoErr("booking version mismatch", booking.ErrStaleState, infra.KindConflict)
	}
	b.Persisted(b.Version() + 1)
	r.st.bookings[b.ID()] = b.Clone()
	return nil
}

type calendarRepo struct {
	st *state
}

// LockProperty is a no-op; transactions are already serialized.
func (r *calendarRepo) LockProperty(_ context.Context, propertyID uuid.UUID) error {
	if _, ok := r.st.properties[propertyID]; !ok {
		return infra.NotFound("property not found")
	}
	return nil
}

func (r *calendarRepo) ReserveRange(_ context.Context, propertyID uuid.UUID, rng stay.Range, bookingID uuid.UUID) error {
	dates := rng.Dates()
	for _, d := range dates {
		if h, ok := r.st.holds[dayKey{propertyID, d}]; ok && h.BookingID != bookingID {
			return &availability.ConflictError{Date: d, Status: availability.StatusBooked}
		}
	}
	var code string
	if b, ok := r.st.bookings[bookingID]; ok {
		code = b.Code()
	}
	for _, d := range dates {
		r.st.holds[dayKey{propertyID, d}] = availability.Hold{
			PropertyID:  propertyID,
			Date:        d,
			BookingID:   bookingID,
			BookingCode: code,
		}
	}
	return nil
}

func (r *calendarRepo) ReleaseRange(_ context.Context, propertyID uuid.UUID, rng stay.Range, bookingID uuid.UUID) error {
	for _, d := range rng.Dates() {
		key := dayKey{propertyID, d}
		if h, ok := r.st.holds[key]; ok && h.BookingID == bookingID {
			delete(r.st.holds, key)
		}
	}
	return nil
}

func (r *calendarRepo) UpsertDays(_ context.Context, days []*availability.Day) error {
	for _, d := range days {
		r.st.days[dayKey{d.PropertyID(), d.Date()}] = copyDay(d)
	}
	return nil
}

type couponUsageRepo struct {
	st *state
}

func (r *couponUsageRepo) Apply(_ context.Context, usage *coupon.Usage, perUserLimit *int) error {
	params, ok := r.st.coupons[usage.CouponID()]
	if !ok {
		return infra.NotFound("coupon not found")
	}
	if params.TotalUsageLimit != nil && params.UsedCount >= *params.TotalUsageLimit {
		return coupon.ErrUsageLimitReached
	}
	if perUserLimit != nil && r.st.activeUsages(usage.CouponID(), usage.UserID()) >= *perUserLimit {
		return coupon.ErrPerUserLimitReached
	}
	for _, u := range r.st.usages {
		if u.CouponID() == usage.CouponID() && u.BookingID() == usage.BookingID() && !u.IsReversed() {
			return coupon.ErrAlreadyApplied
		}
	}

	params.UsedCount++
	r.st.coupons[usage.CouponID()] = params
	r.st.usages[usage.ID()] = usage
	return nil
}

func (r *couponUsageRepo) Reverse(_ context.Context, bookingID uuid.UUID, now time.Time) error {
	for id, u := range r.st.usages {
		if u.BookingID() != bookingID || u.IsReversed() {
			continue
		}
		reversedAt := now
		r.st.usages[id] = coupon.ReconstructUsage(
			u.ID(), u.CouponID(), u.UserID(), u.BookingID(), u.DiscountAmount(), u.UsedAt(), &reversedAt,
		)
		if params, ok := r.st.coupons[u.CouponID()]; ok && params.UsedCount > 0 {
			params.UsedCount--
			r.st.coupons[u.CouponID()] = params
		}
	}
	return nil
}

type idempotencyRepo struct {
	st *state
}

func (r *idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	k := idempotencyKey{key, userID}
	if _, ok := r.st.idempotency[k]; ok {
		return false, nil
	}
	r.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idempotencyRepo) ClaimExpired(_ context.Context, key, userID uuid.UUID, requestHash string, now, expiresAt time.Time) (bool, error) {
	k := idempotencyKey{key, userID}
	rec, ok := r.st.idempotency[k]
	if !ok || !now.After(rec.ExpiresAt) {
		return false, nil
	}
	r.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idempotencyRepo) Complete(_ context.Context, key, userID, bookingID uuid.UUID) error {
	k := idempotencyKey{key, userID}
	rec, ok := r.st.idempotency[k]
	if !ok {
		return infra.NotFound("idempotency key not found")
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultBookingID = &bookingID
	r.st.idempotency[k] = rec
	return nil
}

type notificationRepo struct {
	st *state
}

func (r *notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.st.jobs = append(r.st.jobs, NotificationJob{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: append([]byte(nil), payload...),
		RunAt:   runAt,
	})
	return nil
}
