package queries

import (
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/stay"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingView is the read model of one booking with its property joined in.
type BookingView struct {
	ID           uuid.UUID
	Code         string
	GuestID      uuid.UUID
	PropertyID   uuid.UUID
	PropertyName string
	HostID       uuid.UUID
	CheckIn      stay.Date
	CheckOut     stay.Date
	Adults       int
	Children     int
	Infants      int

	BaseAmount     decimal.Decimal
	DiscountAmount decimal.Decimal
	CouponDiscount decimal.Decimal
	CleaningFee    decimal.Decimal
	ServiceFee     decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	CouponID       *uuid.UUID
	CouponCode     *string

	Status               string
	PaymentStatus        string
	PaymentExpiresAt     *time.Time
	PaidAt               *time.Time
	PaidAmount           *decimal.Decimal
	PaymentFailureReason *string

	CancellationReason *string
	CancelledBy        *string
	CancelledAt        *time.Time
	RefundEligible     bool

	GuestName       string
	GuestEmail      string
	GuestPhone      string
	SpecialRequests string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (v *BookingView) Nights() int {
	return v.CheckIn.DaysUntil(v.CheckOut)
}

type BookingListItem struct {
	ID            uuid.UUID
	Code          string
	PropertyID    uuid.UUID
	PropertyName  string
	CheckIn       stay.Date
	CheckOut      stay.Date
	Status        string
	PaymentStatus string
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
}

// BookingViewOf builds a view from a booking aggregate. Property fields are left empty
// because commands do not load them for the response.
func BookingViewOf(b *booking.Booking) *BookingView {
	price := b.Price()
	guests := b.Guests()
	snapshot := b.GuestSnapshot()
	v := &BookingView{
		ID:                   b.ID(),
		Code:                 b.Code(),
		GuestID:              b.GuestID(),
		PropertyID:           b.PropertyID(),
		CheckIn:              b.Stay().CheckIn(),
		CheckOut:             b.Stay().CheckOut(),
		Adults:               guests.Adults,
		Children:             guests.Children,
		Infants:              guests.Infants,
		BaseAmount:           price.BaseAmount,
		DiscountAmount:       price.DiscountAmount,
		CouponDiscount:       price.CouponDiscount,
		CleaningFee:          price.CleaningFee,
		ServiceFee:           price.ServiceFee,
		TaxAmount:            price.TaxAmount,
		TotalAmount:          price.TotalAmount,
		CouponID:             b.CouponID(),
		Status:               b.Status().String(),
		PaymentStatus:        b.PaymentStatus().String(),
		PaymentExpiresAt:     b.PaymentExpiresAt(),
		PaidAt:               b.PaidAt(),
		PaidAmount:           b.PaidAmount(),
		PaymentFailureReason: b.PaymentFailureReason(),
		GuestName:            snapshot.FullName,
		GuestEmail:           snapshot.Email,
		GuestPhone:           snapshot.Phone,
		SpecialRequests:      b.SpecialRequests(),
		Version:              b.Version(),
		CreatedAt:            b.CreatedAt(),
		UpdatedAt:            b.UpdatedAt(),
	}
	if c := b.Cancellation(); c != nil {
		reason, by, at := c.Reason, string(c.Actor.Role), c.At
		v.CancellationReason = &reason
		v.CancelledBy = &by
		v.CancelledAt = &at
		v.RefundEligible = c.RefundEligible
	}
	return v
}

// RangeAvailability answers isRangeAvailable. Conflict is set when Available is false.
type RangeAvailability struct {
	Available bool
	Conflict  *availability.ConflictError
}

type DayView struct {
	Date          stay.Date
	Status        availability.DayStatus
	Price         decimal.Decimal
	PriceSource   string
	MinimumNights int
	BlockReason   *string
}

type MonthView struct {
	PropertyID uuid.UUID
	Year       int
	Month      time.Month
	Days       []DayView
}

type ProfileView struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	Phone     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}
