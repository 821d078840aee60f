package booking

import (
	"errors"
	"time"

	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidCode = errors.New("booking code cannot be empty")

type Booking struct {
	id                   uuid.UUID
	code                 string
	guestID              uuid.UUID
	propertyID           uuid.UUID
	stay                 stay.Range
	guests               stay.Guests
	price                pricing.Totals
	couponID             *uuid.UUID
	status               Status
	paymentStatus        PaymentStatus
	paymentExpiresAt     *time.Time
	paidAt               *time.Time
	paidAmount           *decimal.Decimal
	paymentFailureReason *string
	cancellation         *Cancellation
	guestSnapshot        GuestSnapshot
	specialRequests      string
	version              int
	createdAt            time.Time
	updatedAt            time.Time
	deletedAt            *time.Time
}

type NewParams struct {
	Code            string
	GuestID         uuid.UUID
	PropertyID      uuid.UUID
	Stay            stay.Range
	Guests          stay.Guests
	Price           pricing.Totals
	CouponID        *uuid.UUID
	GuestSnapshot   GuestSnapshot
	SpecialRequests string
	// Nil leaves the booking without a payment deadline.
	PaymentExpiresAt *time.Time
}

// NewBooking creates a Pending, unpaid booking.
func NewBooking(p NewParams, now time.Time) (*Booking, error) {
	if p.Code == "" {
		return nil, ErrInvalidCode
	}
	if err := p.Guests.Validate(); err != nil {
		return nil, err
	}
	requests, err := NormalizeSpecialRequests(p.SpecialRequests)
	if err != nil {
		return nil, err
	}
	return &Booking{
		id:               uuid.New(),
		code:             p.Code,
		guestID:          p.GuestID,
		propertyID:       p.PropertyID,
		stay:             p.Stay,
		guests:           p.Guests,
		price:            p.Price,
		couponID:         p.CouponID,
		status:           StatusPending,
		paymentStatus:    PaymentUnpaid,
		paymentExpiresAt: p.PaymentExpiresAt,
		guestSnapshot:    p.GuestSnapshot,
		specialRequests:  requests,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

type ReconstructParams struct {
	ID                   uuid.UUID
	Code                 string
	GuestID              uuid.UUID
	PropertyID           uuid.UUID
	Stay                 stay.Range
	Guests               stay.Guests
	Price                pricing.Totals
	CouponID             *uuid.UUID
	Status               Status
	PaymentStatus        PaymentStatus
	PaymentExpiresAt     *time.Time
	PaidAt               *time.Time
	PaidAmount           *decimal.Decimal
	PaymentFailureReason *string
	Cancellation         *Cancellation
	GuestSnapshot        GuestSnapshot
	SpecialRequests      string
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

func ReconstructBooking(p ReconstructParams) *Booking {
	return &Booking{
		id:                   p.ID,
		code:                 p.Code,
		guestID:              p.GuestID,
		propertyID:           p.PropertyID,
		stay:                 p.Stay,
		guests:               p.Guests,
		price:                p.Price,
		couponID:             p.CouponID,
		status:               p.Status,
		paymentStatus:        p.PaymentStatus,
		paymentExpiresAt:     p.PaymentExpiresAt,
		paidAt:               p.PaidAt,
		paidAmount:           p.PaidAmount,
		paymentFailureReason: p.PaymentFailureReason,
		cancellation:         p.Cancellation,
		guestSnapshot:        p.GuestSnapshot,
		specialRequests:      p.SpecialRequests,
		version:              p.Version,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
		deletedAt:            p.DeletedAt,
	}
}

// Clone returns an independent copy; used by stores that hand out entities.
func (b *Booking) Clone() *Booking {
	c := *b
	if b.cancellation != nil {
		cancel := *b.cancellation
		c.cancellation = &cancel
	}
	return &c
}

func (b *Booking) IsPaid() bool {
	return b.paymentStatus == PaymentPaid
}

// PaymentOverdue is true for a Pending unpaid booking whose deadline has passed.
func (b *Booking) PaymentOverdue(now time.Time) bool {
	return b.status == StatusPending &&
		b.paymentStatus != PaymentPaid &&
		b.paymentExpiresAt != nil &&
		now.After(*b.paymentExpiresAt)
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) Code() string                  { return b.code }
func (b *Booking) GuestID() uuid.UUID            { return b.guestID }
func (b *Booking) PropertyID() uuid.UUID         { return b.propertyID }
func (b *Booking) Stay() stay.Range              { return b.stay }
func (b *Booking) Guests() stay.Guests           { return b.guests }
func (b *Booking) Price() pricing.Totals         { return b.price }
func (b *Booking) CouponID() *uuid.UUID          { return b.couponID }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus  { return b.paymentStatus }
func (b *Booking) PaymentExpiresAt() *time.Time  { return b.paymentExpiresAt }
func (b *Booking) PaidAt() *time.Time            { return b.paidAt }
func (b *Booking) PaidAmount() *decimal.Decimal  { return b.paidAmount }
func (b *Booking) PaymentFailureReason() *string { return b.paymentFailureReason }
func (b *Booking) Cancellation() *Cancellation   { return b.cancellation }
func (b *Booking) GuestSnapshot() GuestSnapshot  { return b.guestSnapshot }
func (b *Booking) SpecialRequests() string       { return b.specialRequests }
func (b *Booking) Version() int                  { return b.version }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
func (b *Booking) DeletedAt() *time.Time         { return b.deletedAt }

// Persisted records the version a store assigned after a successful save.
func (b *Booking) Persisted(version int) {
	b.version = version
}
