package commands

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Policy holds the booking rules that come from configuration.
type Policy struct {
	PaymentTimeout time.Duration
	IdempotencyTTL time.Duration
	// Location decides which calendar date "today" is for check-in and no-show rules.
	Location *time.Location
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) today(now time.Time) stay.Date {
	return stay.DateOf(now.In(p.location()))
}

// authorizeBooking checks that actor may act on b. Guests must own the booking,
// hosts must own the property and admins may act on anything.
func authorizeBooking(actor booking.Actor, b *booking.Booking, prop *property.Property, allowed ...booking.ActorRole) error {
	if !slices.Contains(allowed, actor.Role) {
		return ErrForbidden
	}
	switch actor.Role {
	case booking.ActorGuest:
		if b.GuestID() != actor.ID {
			return ErrForbidden
		}
	case booking.ActorHost:
		if prop.HostID() != actor.ID {
			return ErrForbidden
		}
	}
	return nil
}

func authorizeHost(actor booking.Actor, prop *property.Property) error {
	switch actor.Role {
	case booking.ActorAdmin:
		return nil
	case booking.ActorHost:
		if prop.HostID() == actor.ID {
			return nil
		}
	}
	return ErrForbidden
}

// Outbox topics.
const (
	TopicBookingCreated     = "booking.created"
	TopicBookingUpdated     = "booking.updated"
	TopicBookingConfirmed   = "booking.confirmed"
	TopicBookingRejected    = "booking.rejected"
	TopicBookingCancelled   = "booking.cancelled"
	TopicBookingExpired     = "booking.expired"
	TopicBookingCheckedIn   = "booking.checked_in"
	TopicBookingCheckedOut  = "booking.checked_out"
	TopicBookingCompleted   = "booking.completed"
	TopicBookingNoShow      = "booking.no_show"
	TopicPaymentReceived    = "payment.received"
	TopicPaymentFailed      = "payment.failed"
	TopicCouponChanged      = "booking.coupon_changed"
	notificationKindEmail   = "email"
	notificationKindWebhook = "webhook"
)

type bookingEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingCode   string    `json:"booking_code"`
	PropertyID    uuid.UUID `json:"property_id"`
	GuestID       uuid.UUID `json:"guest_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	TotalAmount   string    `json:"total_amount"`
	Reason        string    `json:"reason,omitempty"`
}

func notify(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, now time.Time) error {
	event := bookingEvent{
		BookingID:     b.ID(),
		BookingCode:   b.Code(),
		PropertyID:    b.PropertyID(),
		GuestID:       b.GuestID(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		CheckIn:       b.Stay().CheckIn().String(),
		CheckOut:      b.Stay().CheckOut().String(),
		TotalAmount:   b.Price().TotalAmount.StringFixed(2),
	}
	if c := b.Cancellation(); c != nil {
		event.Reason = c.Reason
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	kind := notificationKindEmail
	if topic == TopicPaymentReceived || topic == TopicPaymentFailed {
		kind = notificationKindWebhook
	}
	return tx.Notifications().CreateJob(ctx, kind, topic, payload, now)
}

// releaseBooking gives back the calendar and coupon of a booking that just left the active states.
func releaseBooking(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
	if err := tx.Calendar().ReleaseRange(ctx, b.PropertyID(), b.Stay(), b.ID()); err != nil {
		return err
	}
	if b.CouponID() != nil {
		if err := tx.CouponUsages().Reverse(ctx, b.ID(), now); err != nil {
			return err
		}
	}
	return nil
}
