package coupon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Usage records one application of a coupon to a booking. Reversal keeps the row.
type Usage struct {
	id             uuid.UUID
	couponID       uuid.UUID
	userID         uuid.UUID
	bookingID      uuid.UUID
	discountAmount decimal.Decimal
	usedAt         time.Time
	reversedAt     *time.Time
}

func NewUsage(couponID, userID, bookingID uuid.UUID, discountAmount decimal.Decimal, now time.Time) *Usage {
	return &Usage{
		id:             uuid.New(),
		couponID:       couponID,
		userID:         userID,
		bookingID:      bookingID,
		discountAmount: discountAmount,
		usedAt:         now,
	}
}

func ReconstructUsage(id, couponID, userID, bookingID uuid.UUID, discountAmount decimal.Decimal, usedAt time.Time, reversedAt *time.Time) *Usage {
	return &Usage{
		id:             id,
		couponID:       couponID,
		userID:         userID,
		bookingID:      bookingID,
		discountAmount: discountAmount,
		usedAt:         usedAt,
		reversedAt:     reversedAt,
	}
}

func (u *Usage) ID() uuid.UUID                   { return u.id }
func (u *Usage) CouponID() uuid.UUID             { return u.couponID }
func (u *Usage) UserID() uuid.UUID               { return u.userID }
func (u *Usage) BookingID() uuid.UUID            { return u.bookingID }
func (u *Usage) DiscountAmount() decimal.Decimal { return u.discountAmount }
func (u *Usage) UsedAt() time.Time               { return u.usedAt }
func (u *Usage) ReversedAt() *time.Time          { return u.reversedAt }
func (u *Usage) IsReversed() bool                { return u.reversedAt != nil }
