package api

import (
	"errors"
	"net/http"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/handler/httperr"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	codeDatesUnavailable   = "DATES_UNAVAILABLE"
	codeInvalidState       = "INVALID_STATE"
	codeStaleState         = "STALE_STATE"
	codeCouponInvalid      = "COUPON_INVALID"
	codeStayLengthInvalid  = "STAY_LENGTH_INVALID"
	codeGuestCountInvalid  = "GUEST_COUNT_INVALID"
	codePaymentTooLate     = "PAYMENT_TOO_LATE"
	codeIdempotencyBusy    = "IDEMPOTENCY_IN_PROGRESS"
	codeIdempotencyReused  = "IDEMPOTENCY_KEY_REUSED"
	codePropertyInactive   = "PROPERTY_INACTIVE"
	codeStoreUnavailable   = "STORE_UNAVAILABLE"
	msgInternalServerError = "Internal server error"
)

// respondError maps usecase errors onto the HTTP error contract.
func respondError(c *gin.Context, err error) {
	var (
		conflict   *availability.ConflictError
		transition *booking.TransitionError
		couponErr  *commands.CouponInvalidError
	)

	switch {
	case errors.Is(err, commands.ErrDatesUnavailable):
		var detail any
		if errors.As(err, &conflict) {
			detail = gin.H{"date": conflict.Date.String(), "status": string(conflict.Status)}
		}
		httperr.AbortWithCode(c, http.StatusConflict, err, codeDatesUnavailable, "Selected dates are not available", detail)

	case errors.Is(err, commands.ErrInvalidState):
		var detail any
		if errors.As(err, &transition) {
			detail = gin.H{"currentStatus": transition.From.String(), "action": transition.Action}
		}
		httperr.AbortWithCode(c, http.StatusConflict, err, codeInvalidState, stateMessage(err), detail)

	case errors.Is(err, commands.ErrStaleState):
		httperr.AbortWithCode(c, http.StatusConflict, err, codeStaleState, "Booking was modified concurrently, please retry", nil)

	case errors.Is(err, commands.ErrPaymentTooLate):
		httperr.AbortWithCode(c, http.StatusConflict, err, codePaymentTooLate, "Booking was released before the payment arrived", nil)

	case errors.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithCode(c, http.StatusConflict, err, codeIdempotencyBusy, "Request with this idempotency key is being processed", nil)

	case errors.Is(err, commands.ErrIdempotencyKeyReused):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, codeIdempotencyReused, "Idempotency key was used with a different request", nil)

	case errors.As(err, &couponErr):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, codeCouponInvalid, "Coupon cannot be applied",
			gin.H{"reason": string(couponErr.Reason)})

	case errors.Is(err, commands.ErrStayLengthInvalid), errors.Is(err, pricing.ErrStayLengthInvalid):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, codeStayLengthInvalid, "Stay length is outside the property's limits", nil)

	case errors.Is(err, commands.ErrGuestCountInvalid),
		errors.Is(err, pricing.ErrGuestCountInvalid),
		errors.Is(err, stay.ErrInvalidGuestCount):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, codeGuestCountInvalid, "Guest count is not allowed for this property", nil)

	case errors.Is(err, commands.ErrPropertyInactive):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, codePropertyInactive, "Property is not accepting bookings", nil)

	case errors.Is(err, commands.ErrValidation),
		errors.Is(err, queries.ErrInvalidMonth),
		errors.Is(err, queries.ErrInvalidCursor),
		errors.Is(err, stay.ErrInvalidDate),
		errors.Is(err, stay.ErrInvertedStay):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", gin.H{"reason": err.Error()})

	case errors.Is(err, commands.ErrForbidden), errors.Is(err, queries.ErrBookingAccess):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to access this resource", nil)

	case errors.Is(err, commands.ErrBookingNotFound), errors.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)

	case errors.Is(err, commands.ErrPropertyNotFound), errors.Is(err, queries.ErrPropertyNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Property not found", nil)

	case errors.Is(err, commands.ErrGuestNotFound), errors.Is(err, queries.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)

	case errors.Is(err, queries.ErrUserInactive):
		httperr.AbortWithError(c, http.StatusForbidden, err, "User is inactive", nil)

	case errors.Is(err, commands.ErrStoreUnavailable), infra.IsTransient(err):
		c.Header("Retry-After", "1")
		httperr.AbortWithCode(c, http.StatusServiceUnavailable, err, codeStoreUnavailable, "Service temporarily unavailable, please retry", nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msgInternalServerError, nil)
	}
}

func stateMessage(err error) string {
	switch {
	case errors.Is(err, booking.ErrPaymentRequired):
		return "Booking must be paid before it can be confirmed"
	case errors.Is(err, booking.ErrCancellationWindowClosed):
		return "Free cancellation window has closed"
	case errors.Is(err, booking.ErrTooEarly):
		return "Action is not allowed before the check-in date"
	case errors.Is(err, booking.ErrStayEnded):
		return "Stay has already ended"
	case errors.Is(err, booking.ErrPaymentLocked):
		return "Booking can no longer be changed after payment"
	case errors.Is(err, booking.ErrCouponAlreadyApplied):
		return "A coupon is already applied"
	case errors.Is(err, booking.ErrNoCouponApplied):
		return "No coupon is applied"
	default:
		return "Booking state does not allow this action"
	}
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, gin.H{"reason": err.Error()})
}

func unauthenticated(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Access token required", nil)
}
