package property

import (
	"errors"
	"strings"
	"time"

	"homestay-booking/internal/domain/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName          = errors.New("property name cannot be empty")
	ErrInvalidBasePrice   = errors.New("base nightly price must be positive")
	ErrInvalidNightBounds = errors.New("minimum nights must be at least 1 and not exceed maximum nights")
	ErrInvalidCapacity    = errors.New("maximum guests must be at least 1")
	ErrInvalidDiscount    = errors.New("discount percentage must be between 0 and 100")
	ErrNegativeFee        = errors.New("fees cannot be negative")
	ErrNegativeWindow     = errors.New("free cancellation window cannot be negative")
)

// Property holds the pricing rules and capacity limits a booking is checked against.
type Property struct {
	id                     uuid.UUID
	hostID                 uuid.UUID
	name                   string
	baseNightlyPrice       decimal.Decimal
	weekendPrice           *decimal.Decimal
	weeklyDiscountPercent  *decimal.Decimal
	monthlyDiscountPercent *decimal.Decimal
	cleaningFee            decimal.Decimal
	minNights              int
	maxNights              *int
	maxGuests              int
	maxInfants             *int
	freeCancellationHours  int
	requiresPrepayment     bool
	isActive               bool
	createdAt              time.Time
	updatedAt              time.Time
}

type Params struct {
	ID                     uuid.UUID
	HostID                 uuid.UUID
	Name                   string
	BaseNightlyPrice       decimal.Decimal
	WeekendPrice           *decimal.Decimal
	WeeklyDiscountPercent  *decimal.Decimal
	MonthlyDiscountPercent *decimal.Decimal
	CleaningFee            decimal.Decimal
	MinNights              int
	MaxNights              *int
	MaxGuests              int
	MaxInfants             *int
	FreeCancellationHours  int
	RequiresPrepayment     bool
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func New(p Params) (*Property, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrEmptyName
	}
	if !p.BaseNightlyPrice.IsPositive() {
		return nil, ErrInvalidBasePrice
	}
	if p.WeekendPrice != nil && !p.WeekendPrice.IsPositive() {
		return nil, ErrInvalidBasePrice
	}
	for _, d := range []*decimal.Decimal{p.WeeklyDiscountPercent, p.MonthlyDiscountPercent} {
		if d != nil && money.ValidatePercent(*d) != nil {
			return nil, ErrInvalidDiscount
		}
	}
	if p.CleaningFee.IsNegative() {
		return nil, ErrNegativeFee
	}
	if p.MinNights < 1 || (p.MaxNights != nil && *p.MaxNights < p.MinNights) {
		return nil, ErrInvalidNightBounds
	}
	if p.MaxGuests < 1 || (p.MaxInfants != nil && *p.MaxInfants < 0) {
		return nil, ErrInvalidCapacity
	}
	if p.FreeCancellationHours < 0 {
		return nil, ErrNegativeWindow
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Property{
		id:                     id,
		hostID:                 p.HostID,
		name:                   strings.TrimSpace(p.Name),
		baseNightlyPrice:       p.BaseNightlyPrice,
		weekendPrice:           p.WeekendPrice,
		weeklyDiscountPercent:  p.WeeklyDiscountPercent,
		monthlyDiscountPercent: p.MonthlyDiscountPercent,
		cleaningFee:            p.CleaningFee,
		minNights:              p.MinNights,
		maxNights:              p.MaxNights,
		maxGuests:              p.MaxGuests,
		maxInfants:             p.MaxInfants,
		freeCancellationHours:  p.FreeCancellationHours,
		requiresPrepayment:     p.RequiresPrepayment,
		isActive:               p.IsActive,
		createdAt:              p.CreatedAt,
		updatedAt:              p.UpdatedAt,
	}, nil
}

// Accepts returns whether the guest counts fit the property's capacity.
func (p *Property) Accepts(adults, children, infants int) bool {
	if adults+children > p.maxGuests {
		return false
	}
	if p.maxInfants != nil && infants > *p.maxInfants {
		return false
	}
	return true
}

func (p *Property) ID() uuid.UUID                            { return p.id }
func (p *Property) HostID() uuid.UUID                        { return p.hostID }
func (p *Property) Name() string                             { return p.name }
func (p *Property) BaseNightlyPrice() decimal.Decimal        { return p.baseNightlyPrice }
func (p *Property) WeekendPrice() *decimal.Decimal           { return p.weekendPrice }
func (p *Property) WeeklyDiscountPercent() *decimal.Decimal  { return p.weeklyDiscountPercent }
func (p *Property) MonthlyDiscountPercent() *decimal.Decimal { return p.monthlyDiscountPercent }
func (p *Property) CleaningFee() decimal.Decimal             { return p.cleaningFee }
func (p *Property) MinNights() int                           { return p.minNights }
func (p *Property) MaxNights() *int                          { return p.maxNights }
func (p *Property) MaxGuests() int                           { return p.maxGuests }
func (p *Property) MaxInfants() *int                         { return p.maxInfants }
func (p *Property) FreeCancellationHours() int               { return p.freeCancellationHours }
func (p *Property) RequiresPrepayment() bool                 { return p.requiresPrepayment }
func (p *Property) IsActive() bool                           { return p.isActive }
func (p *Property) CreatedAt() time.Time                     { return p.createdAt }
func (p *Property) UpdatedAt() time.Time                     { return p.updatedAt }
