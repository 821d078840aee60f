package commands

import (
	"errors"
	"fmt"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/pkg/errs"
)

var (
	ErrValidation            = errs.New("validation failed")
	ErrPropertyNotFound      = errs.New("property not found")
	ErrPropertyInactive      = errs.New("property is not accepting bookings")
	ErrGuestNotFound         = errs.New("guest profile not found")
	ErrBookingNotFound       = errs.New("booking not found")
	ErrForbidden             = errs.New("actor is not allowed to act on this resource")
	ErrDatesUnavailable      = errs.New("dates unavailable")
	ErrStayLengthInvalid     = errs.New("stay length invalid")
	ErrGuestCountInvalid     = errs.New("guest count invalid")
	ErrCouponInvalid         = errs.New("coupon invalid")
	ErrInvalidState          = errs.New("booking state does not allow this action")
	ErrStaleState            = errs.New("booking was modified concurrently")
	ErrPaymentTooLate        = errs.New("payment arrived after the booking was released")
	ErrStoreUnavailable      = errs.New("store temporarily unavailable")
	ErrIdempotencyInProgress = errs.New("idempotency in progress")
	ErrIdempotencyKeyReused  = errs.New("idempotency key reused with a different request")
)

// CouponInvalidError carries the evaluator's reason to the caller.
type CouponInvalidError struct {
	Reason coupon.Reason
}

func (e *CouponInvalidError) Error() string {
	return fmt.Sprintf("coupon invalid: %s", e.Reason)
}

func (e *CouponInvalidError) Is(target error) bool {
	return target == ErrCouponInvalid
}

func couponInvalid(r coupon.Reason) error {
	return &CouponInvalidError{Reason: r}
}

// translate marks domain and store errors with this package's sentinels.
// The original error stays in the chain so errors.As still reaches it.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, availability.ErrDatesUnavailable):
		return errs.Mark(err, ErrDatesUnavailable)
	case errors.Is(err, pricing.ErrStayLengthInvalid):
		return errs.Mark(err, ErrStayLengthInvalid)
	case errors.Is(err, pricing.ErrGuestCountInvalid), errors.Is(err, stay.ErrInvalidGuestCount):
		return errs.Mark(err, ErrGuestCountInvalid)
	case errors.Is(err, coupon.ErrUsageLimitReached):
		return couponInvalid(coupon.ReasonUsageLimitReached)
	case errors.Is(err, coupon.ErrPerUserLimitReached):
		return couponInvalid(coupon.ReasonPerUserLimitReached)
	case errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrPaymentRequired),
		errors.Is(err, booking.ErrCancellationWindowClosed),
		errors.Is(err, booking.ErrTooEarly),
		errors.Is(err, booking.ErrStayEnded),
		errors.Is(err, booking.ErrAlreadyPaid),
		errors.Is(err, booking.ErrPaymentLocked),
		errors.Is(err, booking.ErrCouponAlreadyApplied),
		errors.Is(err, booking.ErrNoCouponApplied),
		errors.Is(err, coupon.ErrAlreadyApplied):
		return errs.Mark(err, ErrInvalidState)
	case errors.Is(err, booking.ErrStaleState):
		return errs.Mark(err, ErrStaleState)
	case errors.Is(err, stay.ErrInvalidDate),
		errors.Is(err, stay.ErrInvertedStay),
		errors.Is(err, booking.ErrReasonRequired),
		errors.Is(err, booking.ErrSpecialRequestsTooLong),
		errors.Is(err, availability.ErrInvalidCustomPrice),
		errors.Is(err, availability.ErrInvalidMinNights),
		errors.Is(err, availability.ErrReasonTooLong):
		return errs.Mark(err, ErrValidation)
	case infra.IsTransient(err):
		return errs.Mark(err, ErrStoreUnavailable)
	default:
		return err
	}
}

// notFound replaces a store miss with sentinel and passes everything else through translate.
func notFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return translate(err)
}
