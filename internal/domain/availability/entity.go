package availability

import (
	"errors"
	"strings"
	"time"

	"homestay-booking/internal/domain/stay"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDatesUnavailable   = errors.New("dates unavailable")
	ErrInvalidCustomPrice = errors.New("custom price must be positive")
	ErrInvalidMinNights   = errors.New("minimum nights override must be at least 1")
	ErrReasonTooLong      = errors.New("block reason is too long (max 500 characters)")
)

const MaxBlockReasonLength = 500

// Day is the host-controlled state of one calendar date. Dates with no stored Day are open.
type Day struct {
	propertyID    uuid.UUID
	date          stay.Date
	isAvailable   bool
	isBlocked     bool
	blockReason   *string
	customPrice   *decimal.Decimal
	minimumNights *int
	updatedAt     time.Time
}

func NewDay(propertyID uuid.UUID, date stay.Date) *Day {
	return &Day{
		propertyID:  propertyID,
		date:        date,
		isAvailable: true,
	}
}

func ReconstructDay(
	propertyID uuid.UUID,
	date stay.Date,
	isAvailable, isBlocked bool,
	blockReason *string,
	customPrice *decimal.Decimal,
	minimumNights *int,
	updatedAt time.Time,
) *Day {
	return &Day{
		propertyID:    propertyID,
		date:          date,
		isAvailable:   isAvailable,
		isBlocked:     isBlocked,
		blockReason:   blockReason,
		customPrice:   customPrice,
		minimumNights: minimumNights,
		updatedAt:     updatedAt,
	}
}

func (d *Day) SetAvailable(v bool) { d.isAvailable = v }

func (d *Day) SetCustomPrice(p *decimal.Decimal) error {
	if p != nil && !p.IsPositive() {
		return ErrInvalidCustomPrice
	}
	d.customPrice = p
	return nil
}

func (d *Day) SetMinimumNights(n *int) error {
	if n != nil && *n < 1 {
		return ErrInvalidMinNights
	}
	d.minimumNights = n
	return nil
}

func (d *Day) Block(reason *string) error {
	if reason != nil {
		r := strings.TrimSpace(*reason)
		if len(r) > MaxBlockReasonLength {
			return ErrReasonTooLong
		}
		reason = &r
	}
	d.isBlocked = true
	d.blockReason = reason
	return nil
}

func (d *Day) Unblock() {
	d.isBlocked = false
	d.blockReason = nil
}

// Open reports the host-side half of bookability; holds are checked separately.
func (d *Day) Open() bool {
	return d.isAvailable && !d.isBlocked
}

func (d *Day) Touch(now time.Time) { d.updatedAt = now }

func (d *Day) PropertyID() uuid.UUID         { return d.propertyID }
func (d *Day) Date() stay.Date               { return d.date }
func (d *Day) IsAvailable() bool             { return d.isAvailable }
func (d *Day) IsBlocked() bool               { return d.isBlocked }
func (d *Day) BlockReason() *string          { return d.blockReason }
func (d *Day) CustomPrice() *decimal.Decimal { return d.customPrice }
func (d *Day) MinimumNights() *int           { return d.minimumNights }
func (d *Day) UpdatedAt() time.Time          { return d.updatedAt }
