package coupon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Reason string

const (
	ReasonNone                Reason = ""
	ReasonNotFound            Reason = "not_found"
	ReasonInactive            Reason = "inactive"
	ReasonNotStarted          Reason = "not_started"
	ReasonExpired             Reason = "expired"
	ReasonOutOfScope          Reason = "out_of_scope"
	ReasonBelowMinimumAmount  Reason = "below_minimum_amount"
	ReasonBelowMinimumNights  Reason = "below_minimum_nights"
	ReasonUsageLimitReached   Reason = "usage_limit_reached"
	ReasonPerUserLimitReached Reason = "per_user_limit_reached"
	ReasonFirstBookingOnly    Reason = "first_booking_only"
	ReasonNewUserOnly         Reason = "new_user_only"
)

// EvaluationContext carries the booking and history facts a coupon is checked against.
type EvaluationContext struct {
	UserID        uuid.UUID
	PropertyID    uuid.UUID
	BookingAmount decimal.Decimal
	Nights        int
	Now           time.Time
	// Active usages of this coupon by UserID.
	UserUsageCount int
	// Bookings by UserID that were not rejected or cancelled.
	CompletedOrActiveBookings int
	// All bookings by UserID regardless of status.
	TotalBookings int
}

type ValidationResult struct {
	Applicable     bool
	DiscountAmount decimal.Decimal
	Reason         Reason
}

func reject(r Reason) ValidationResult {
	return ValidationResult{Applicable: false, DiscountAmount: decimal.Zero, Reason: r}
}

// Evaluate runs the checks in a fixed order; the first failure decides the reason.
// A nil coupon is reported as not found.
func Evaluate(c *Coupon, ec EvaluationContext) ValidationResult {
	if c == nil {
		return reject(ReasonNotFound)
	}
	if !c.isActive {
		return reject(ReasonInactive)
	}
	if ec.Now.Before(c.startDate) {
		return reject(ReasonNotStarted)
	}
	if ec.Now.After(c.endDate) {
		return reject(ReasonExpired)
	}
	if !c.Covers(ec.PropertyID) {
		return reject(ReasonOutOfScope)
	}
	if c.minimumBookingAmount != nil && ec.BookingAmount.LessThan(*c.minimumBookingAmount) {
		return reject(ReasonBelowMinimumAmount)
	}
	if c.minimumNights != nil && ec.Nights < *c.minimumNights {
		return reject(ReasonBelowMinimumNights)
	}
	if c.totalUsageLimit != nil && c.usedCount >= *c.totalUsageLimit {
		return reject(ReasonUsageLimitReached)
	}
	if c.usagePerUser != nil && ec.UserUsageCount >= *c.usagePerUser {
		return reject(ReasonPerUserLimitReached)
	}
	if c.isFirstBookingOnly && ec.CompletedOrActiveBookings > 0 {
		return reject(ReasonFirstBookingOnly)
	}
	if c.isNewUserOnly && ec.TotalBookings > 0 {
		return reject(ReasonNewUserOnly)
	}
	return ValidationResult{
		Applicable:     true,
		DiscountAmount: c.discount.AmountFor(ec.BookingAmount),
	}
}
