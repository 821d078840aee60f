//go:build unit || e2e

package builder

import (
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	reqdto "homestay-booking/internal/handler/dto/request"
	"homestay-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ID               uuid.UUID
	Code             string
	GuestID          uuid.UUID
	PropertyID       uuid.UUID
	CheckIn          stay.Date
	CheckOut         stay.Date
	Guests           stay.Guests
	Total            decimal.Decimal
	CouponID         *uuid.UUID
	Status           booking.Status
	PaymentStatus    booking.PaymentStatus
	PaymentExpiresAt *time.Time
	Version          int
	CreatedAt        time.Time
}

// NewBookingBuilder describes a Pending, unpaid Fri-Mon stay in March 2025.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:            uuid.New(),
		Code:          "BK-250301-7KQ2M9",
		GuestID:       uuid.New(),
		PropertyID:    uuid.New(),
		CheckIn:       stay.NewDate(2025, time.March, 7),
		CheckOut:      stay.NewDate(2025, time.March, 10),
		Guests:        stay.Guests{Adults: 2},
		Total:         decimal.RequireFromString("3400000"),
		Status:        booking.StatusPending,
		PaymentStatus: booking.PaymentUnpaid,
		Version:       1,
		CreatedAt:     time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	rng, err := stay.NewRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := b.Guests.Validate(); err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(booking.ReconstructParams{
		ID:         b.ID,
		Code:       b.Code,
		GuestID:    b.GuestID,
		PropertyID: b.PropertyID,
		Stay:       rng,
		Guests:     b.Guests,
		Price: pricing.Totals{
			BaseAmount:     b.Total,
			DiscountAmount: decimal.Zero,
			CouponDiscount: decimal.Zero,
			CleaningFee:    decimal.Zero,
			ServiceFee:     decimal.Zero,
			TaxAmount:      decimal.Zero,
			TotalAmount:    b.Total,
		},
		CouponID:         b.CouponID,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		PaymentExpiresAt: b.PaymentExpiresAt,
		GuestSnapshot: booking.GuestSnapshot{
			FullName: "Tran Thi B",
			Email:    "guest@example.com",
		},
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}), nil
}

func (b *BookingBuilder) MustBuild() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) AsPaid() *BookingBuilder {
	b.PaymentStatus = booking.PaymentPaid
	return b
}

func (b *BookingBuilder) ExpiringAt(t time.Time) *BookingBuilder {
	b.PaymentExpiresAt = &t
	return b
}

// BuildCreateRequestDTO is the HTTP body that would create this booking.
func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		CheckIn:    b.CheckIn.String(),
		CheckOut:   b.CheckOut.String(),
		Guests: reqdto.GuestsRequest{
			Adults:   b.Guests.Adults,
			Children: b.Guests.Children,
			Infants:  b.Guests.Infants,
		},
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.BookingViewOf(b.MustBuild())
}
