package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

// BookingHistory feeds first-booking and new-user coupon rules.
type BookingHistory struct {
	Total int
	// Active excludes rejected and cancelled bookings.
	Active int
}

// Metrics receives booking engine events; infra/metrics exports them to Prometheus.
type Metrics interface {
	BookingCreated()
	BookingRejected(reason string)
	BookingTransitioned(to string)
	CouponRejected(reason string)
	PaymentRecorded(outcome string)
	SweepFinished(expired int, duration time.Duration, err error)
}

// Locker grants a lease to at most one holder per key across instances.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}
