package booking

import (
	"errors"
	"strings"
	"time"

	"homestay-booking/internal/domain/user"
)

var ErrSpecialRequestsTooLong = errors.New("special requests too long (max 1000 characters)")

const (
	MaxSpecialRequestsLength = 1000
	ReasonPaymentExpired     = "payment expired"
)

// GuestSnapshot freezes the contact details used for this booking.
type GuestSnapshot struct {
	FullName string
	Email    string
	Phone    string
}

func NewGuestSnapshot(fullName string, email user.Email, phone user.Phone) (GuestSnapshot, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return GuestSnapshot{}, user.ErrEmptyFullName
	}
	if len(name) > user.MaxFullNameLength {
		return GuestSnapshot{}, user.ErrFullNameTooLong
	}
	return GuestSnapshot{FullName: name, Email: email.Value(), Phone: phone.Value()}, nil
}

type Cancellation struct {
	Reason         string
	Actor          Actor
	At             time.Time
	RefundEligible bool
}

func NormalizeSpecialRequests(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > MaxSpecialRequestsLength {
		return "", ErrSpecialRequestsTooLong
	}
	return s, nil
}
