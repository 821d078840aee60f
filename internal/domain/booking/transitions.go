package booking

import (
	"strings"
	"time"

	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const reasonAmountMismatch = "amount mismatch"

func (b *Booking) touch(now time.Time) {
	b.updatedAt = now
}

// Confirm is the host accepting a Pending booking.
func (b *Booking) Confirm(requiresPrepayment bool, now time.Time) error {
	if b.status != StatusPending {
		return invalid(b.status, "confirm")
	}
	if requiresPrepayment && !b.IsPaid() {
		return ErrPaymentRequired
	}
	b.status = StatusConfirmed
	b.paymentExpiresAt = nil
	b.touch(now)
	return nil
}

func (b *Booking) Reject(actor Actor, reason string, now time.Time) error {
	if b.status != StatusPending {
		return invalid(b.status, "reject")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	b.release(StatusRejected, actor, reason, b.IsPaid(), now)
	return nil
}

// Cancel is allowed from Pending or Confirmed. A guest holding a paid booking
// may only cancel until freeCancellationHours before midnight of the check-in date in loc.
func (b *Booking) Cancel(actor Actor, reason string, freeCancellationHours int, loc *time.Location, now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return invalid(b.status, "cancel")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if actor.Role == ActorGuest && b.IsPaid() && now.After(b.FreeCancellationDeadline(freeCancellationHours, loc)) {
		return ErrCancellationWindowClosed
	}
	b.release(StatusCancelled, actor, reason, b.IsPaid(), now)
	return nil
}

func (b *Booking) FreeCancellationDeadline(freeCancellationHours int, loc *time.Location) time.Time {
	return b.stay.CheckIn().At(loc).Add(-time.Duration(freeCancellationHours) * time.Hour)
}

// Expire cancels an overdue unpaid Pending booking on behalf of the system.
func (b *Booking) Expire(now time.Time) error {
	if b.status != StatusPending {
		return invalid(b.status, "expire")
	}
	if !b.PaymentOverdue(now) {
		return ErrNotExpired
	}
	b.release(StatusCancelled, SystemActor, ReasonPaymentExpired, false, now)
	return nil
}

func (b *Booking) release(to Status, actor Actor, reason string, refundEligible bool, now time.Time) {
	b.status = to
	b.cancellation = &Cancellation{
		Reason:         reason,
		Actor:          actor,
		At:             now,
		RefundEligible: refundEligible,
	}
	if refundEligible {
		b.paymentStatus = PaymentRefundPending
	}
	b.paymentExpiresAt = nil
	b.touch(now)
}

func (b *Booking) CheckIn(today stay.Date, now time.Time) error {
	if b.status != StatusConfirmed {
		return invalid(b.status, "check in")
	}
	if today.Before(b.stay.CheckIn()) {
		return ErrTooEarly
	}
	if !today.Before(b.stay.CheckOut()) {
		return ErrStayEnded
	}
	b.status = StatusCheckedIn
	b.touch(now)
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if b.status != StatusCheckedIn {
		return invalid(b.status, "check out")
	}
	b.status = StatusCheckedOut
	b.touch(now)
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusCheckedOut {
		return invalid(b.status, "complete")
	}
	b.status = StatusCompleted
	b.touch(now)
	return nil
}

func (b *Booking) MarkNoShow(today stay.Date, now time.Time) error {
	switch b.status {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut:
	default:
		return invalid(b.status, "mark as no-show")
	}
	if today.Before(b.stay.CheckIn()) {
		return ErrTooEarly
	}
	b.status = StatusNoShow
	b.touch(now)
	return nil
}

// RecordPayment applies a successful gateway charge. An underpayment is kept as a failed payment.
func (b *Booking) RecordPayment(amount decimal.Decimal, now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return invalid(b.status, "pay")
	}
	if b.IsPaid() {
		return ErrAlreadyPaid
	}
	if amount.LessThan(b.price.TotalAmount) {
		reason := reasonAmountMismatch
		b.paymentStatus = PaymentFailed
		b.paymentFailureReason = &reason
		b.touch(now)
		return nil
	}
	paid := amount
	b.paymentStatus = PaymentPaid
	b.paidAt = &now
	b.paidAmount = &paid
	b.paymentFailureReason = nil
	b.paymentExpiresAt = nil
	b.touch(now)
	return nil
}

func (b *Booking) RecordPaymentFailure(reason string, now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return invalid(b.status, "record payment failure for")
	}
	if b.IsPaid() {
		return ErrAlreadyPaid
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unspecified"
	}
	b.paymentStatus = PaymentFailed
	b.paymentFailureReason = &reason
	b.touch(now)
	return nil
}

func (b *Booking) ensureEditable(action string) error {
	if b.status != StatusPending {
		return invalid(b.status, action)
	}
	if b.IsPaid() {
		return ErrPaymentLocked
	}
	return nil
}

// Reschedule moves a Pending booking to new dates with a fresh price.
func (b *Booking) Reschedule(rng stay.Range, price pricing.Totals, now time.Time) error {
	if err := b.ensureEditable("reschedule"); err != nil {
		return err
	}
	b.stay = rng
	b.price = price
	b.touch(now)
	return nil
}

func (b *Booking) UpdateGuestInfo(guests stay.Guests, snapshot GuestSnapshot, specialRequests string, now time.Time) error {
	if b.status != StatusPending {
		return invalid(b.status, "update")
	}
	if err := guests.Validate(); err != nil {
		return err
	}
	requests, err := NormalizeSpecialRequests(specialRequests)
	if err != nil {
		return err
	}
	b.guests = guests
	b.guestSnapshot = snapshot
	b.specialRequests = requests
	b.touch(now)
	return nil
}

func (b *Booking) Reprice(price pricing.Totals, now time.Time) error {
	if err := b.ensureEditable("reprice"); err != nil {
		return err
	}
	b.price = price
	b.touch(now)
	return nil
}

func (b *Booking) ApplyCoupon(couponID uuid.UUID, price pricing.Totals, now time.Time) error {
	if err := b.ensureEditable("apply a coupon to"); err != nil {
		return err
	}
	if b.couponID != nil {
		return ErrCouponAlreadyApplied
	}
	b.couponID = &couponID
	b.price = price
	b.touch(now)
	return nil
}

func (b *Booking) RemoveCoupon(price pricing.Totals, now time.Time) error {
	if err := b.ensureEditable("remove a coupon from"); err != nil {
		return err
	}
	if b.couponID == nil {
		return ErrNoCouponApplied
	}
	b.couponID = nil
	b.price = price
	b.touch(now)
	return nil
}
