//go:build unit || e2e

package builder

import (
	"time"

	"homestay-booking/internal/domain/property"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PropertyBuilder struct {
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
}

func NewPropertyBuilder() *PropertyBuilder {
	weekend := decimal.RequireFromString("1200000")
	return &PropertyBuilder{
		ID:                    uuid.New(),
		HostID:                uuid.New(),
		Name:                  "Hoi An Riverside Homestay",
		BaseNightlyPrice:      decimal.RequireFromString("1000000"),
		WeekendPrice:          &weekend,
		CleaningFee:           decimal.Zero,
		MinNights:             1,
		MaxGuests:             4,
		FreeCancellationHours: 48,
		IsActive:              true,
	}
}

func (p *PropertyBuilder) With(mutate func(*PropertyBuilder)) *PropertyBuilder {
	mutate(p)
	return p
}

func (p *PropertyBuilder) BuildDomain() (*property.Property, error) {
	now := time.Now()
	return property.New(property.Params{
		ID:                     p.ID,
		HostID:                 p.HostID,
		Name:                   p.Name,
		BaseNightlyPrice:       p.BaseNightlyPrice,
		WeekendPrice:           p.WeekendPrice,
		WeeklyDiscountPercent:  p.WeeklyDiscountPercent,
		MonthlyDiscountPercent: p.MonthlyDiscountPercent,
		CleaningFee:            p.CleaningFee,
		MinNights:              p.MinNights,
		MaxNights:              p.MaxNights,
		MaxGuests:              p.MaxGuests,
		MaxInfants:             p.MaxInfants,
		FreeCancellationHours:  p.FreeCancellationHours,
		RequiresPrepayment:     p.RequiresPrepayment,
		IsActive:               p.IsActive,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
}

// MustBuild panics on invalid builder state; for fixtures only.
func (p *PropertyBuilder) MustBuild() *property.Property {
	prop, err := p.BuildDomain()
	if err != nil {
		panic(err)
	}
	return prop
}

func (p *PropertyBuilder) WithHostID(id uuid.UUID) *PropertyBuilder {
	p.HostID = id
	return p
}

func (p *PropertyBuilder) WithCleaningFee(amount string) *PropertyBuilder {
	p.CleaningFee = decimal.RequireFromString(amount)
	return p
}

func (p *PropertyBuilder) WithStayDiscounts(weekly, monthly string) *PropertyBuilder {
	if weekly != "" {
		w := decimal.RequireFromString(weekly)
		p.WeeklyDiscountPercent = &w
	}
	if monthly != "" {
		m := decimal.RequireFromString(monthly)
		p.MonthlyDiscountPercent = &m
	}
	return p
}

func (p *PropertyBuilder) WithNightBounds(minNights int, maxNights *int) *PropertyBuilder {
	p.MinNights = minNights
	p.MaxNights = maxNights
	return p
}

func (p *PropertyBuilder) AsPrepaid() *PropertyBuilder {
	p.RequiresPrepayment = true
	return p
}
