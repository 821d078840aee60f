package shared

import (
	"context"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx exposes repositories bound to one transaction.
type Tx interface {
	Bookings() BookingRepository
	Calendar() CalendarRepository
	CouponUsages() CouponUsageRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

// CommandReads never returns soft-deleted rows. Missing rows are reported as infra.KindNotFound.
type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	GuestProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error)
	CouponByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	CouponByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error)
	// CouponUsageCount counts non-reversed usages of a coupon by one user.
	CouponUsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	BookingByCode(ctx context.Context, code string) (*booking.Booking, error)
	GuestBookingHistory(ctx context.Context, userID uuid.UUID, excludeBookingID *uuid.UUID) (BookingHistory, error)
	// ExpiredPendingBookings lists unpaid Pending bookings whose payment deadline is before now, oldest first.
	ExpiredPendingBookings(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	CalendarDays(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]*availability.Day, error)
	CalendarHolds(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]availability.Hold, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Save is a compare-and-set on the booking version. A lost race returns booking.ErrStaleState.
	Save(ctx context.Context, b *booking.Booking) error
}

type CalendarRepository interface {
	// LockProperty serializes calendar writers of one property until the transaction ends.
	LockProperty(ctx context.Context, propertyID uuid.UUID) error
	// ReserveRange inserts one hold per night or fails with availability.ErrDatesUnavailable; never partially.
	ReserveRange(ctx context.Context, propertyID uuid.UUID, rng stay.Range, bookingID uuid.UUID) error
	// ReleaseRange deletes holds in rng owned by bookingID and nothing else.
	ReleaseRange(ctx context.Context, propertyID uuid.UUID, rng stay.Range, bookingID uuid.UUID) error
	UpsertDays(ctx context.Context, days []*availability.Day) error
}

type CouponUsageRepository interface {
	// Apply takes one unit of the coupon's total limit and records the usage.
	// It fails with coupon.ErrUsageLimitReached or coupon.ErrPerUserLimitReached.
	Apply(ctx context.Context, usage *coupon.Usage, perUserLimit *int) error
	// Reverse gives back the usage recorded for bookingID, if any.
	Reverse(ctx context.Context, bookingID uuid.UUID, now time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists for the user.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, now, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, key, userID, bookingID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
