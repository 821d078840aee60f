package booking

import (
	"homestay-booking/internal/domain/user"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCompleted  Status = "completed"
	StatusNoShow     Status = "no_show"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled,
		StatusCheckedIn, StatusCheckedOut, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// HoldsCalendar reports whether a booking in this status must keep its dates reserved.
func (s Status) HoldsCalendar() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut:
		return true
	default:
		return false
	}
}

// Released reports whether the booking gave its dates back.
func (s Status) Released() bool {
	return s == StatusRejected || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentFailed        PaymentStatus = "failed"
	PaymentRefundPending PaymentStatus = "refund_pending"
)

func (p PaymentStatus) String() string { return string(p) }

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentFailed, PaymentRefundPending:
		return true
	default:
		return false
	}
}

// Actor is whoever drives a transition. SystemActor has the zero ID.
type Actor struct {
	ID   uuid.UUID
	Role ActorRole
}

type ActorRole string

const (
	ActorGuest  ActorRole = "guest"
	ActorHost   ActorRole = "host"
	ActorAdmin  ActorRole = "admin"
	ActorSystem ActorRole = "system"
)

var SystemActor = Actor{Role: ActorSystem}

func ActorFromRole(id uuid.UUID, role user.Role) Actor {
	switch role {
	case user.RoleHost:
		return Actor{ID: id, Role: ActorHost}
	case user.RoleAdmin:
		return Actor{ID: id, Role: ActorAdmin}
	default:
		return Actor{ID: id, Role: ActorGuest}
	}
}
