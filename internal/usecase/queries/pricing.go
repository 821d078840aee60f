package queries

import (
	"context"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=pricing.go -destination=../../../tests/mock/queries/pricing_mock.go -package=queriesmock

type PricingQueries interface {
	// CalculatePrice prices a stay without a coupon. It does not check availability.
	CalculatePrice(ctx context.Context, propertyID uuid.UUID, rng stay.Range, guests stay.Guests) (*pricing.Breakdown, error)
}

type pricingQueriesImpl struct {
	uow  shared.UnitOfWork
	calc *pricing.Calculator
}

func NewPricingQueries(uow shared.UnitOfWork, calc *pricing.Calculator) PricingQueries {
	return &pricingQueriesImpl{uow: uow, calc: calc}
}

func (q *pricingQueriesImpl) CalculatePrice(
	ctx context.Context,
	propertyID uuid.UUID,
	rng stay.Range,
	guests stay.Guests,
) (*pricing.Breakdown, error) {
	var breakdown *pricing.Breakdown
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		prop, err := reads.PropertyByID(ctx, propertyID)
		if err != nil {
			return propertyLookupErr(err)
		}
		days, err := reads.CalendarDays(ctx, propertyID, rng)
		if err != nil {
			return err
		}
		breakdown, err = q.calc.Calculate(pricing.Input{
			Property: prop,
			Range:    rng,
			Guests:   guests,
			Days:     availability.IndexDays(days),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return breakdown, nil
}
