package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition        = errors.New("invalid booking state transition")
	ErrStaleState               = errors.New("booking state changed concurrently")
	ErrPaymentRequired          = errors.New("payment required before confirmation")
	ErrCancellationWindowClosed = errors.New("free cancellation window has closed")
	ErrTooEarly                 = errors.New("action not allowed before check-in date")
	ErrStayEnded                = errors.New("stay has already ended")
	ErrAlreadyPaid              = errors.New("booking already paid")
	ErrNotExpired               = errors.New("payment deadline has not passed")
	ErrPaymentLocked            = errors.New("booking can no longer be changed after payment")
	ErrCouponAlreadyApplied     = errors.New("a coupon is already applied")
	ErrNoCouponApplied          = errors.New("no coupon applied")
	ErrReasonRequired           = errors.New("reason is required")
)

// TransitionError reports the state a rejected transition was attempted from.
type TransitionError struct {
	From   Status
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s booking", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func invalid(from Status, action string) error {
	return &TransitionError{From: from, Action: action}
}
