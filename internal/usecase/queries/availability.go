package queries

import (
	"context"
	"errors"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

var (
	ErrPropertyNotFound = errs.New("property not found")
	ErrInvalidMonth     = errs.New("invalid month")
)

type AvailabilityQueries interface {
	// IsRangeAvailable reports whether every night of rng is bookable. Holds of the booking named by
	// excludeBookingCode are ignored so a booking can be checked against its own dates.
	IsRangeAvailable(ctx context.Context, propertyID uuid.UUID, rng stay.Range, excludeBookingCode *string) (*RangeAvailability, error)
	GetMonth(ctx context.Context, propertyID uuid.UUID, year int, month time.Month) (*MonthView, error)
}

type availabilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityQueries(uow shared.UnitOfWork) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow}
}

func (q *availabilityQueriesImpl) IsRangeAvailable(
	ctx context.Context,
	propertyID uuid.UUID,
	rng stay.Range,
	excludeBookingCode *string,
) (*RangeAvailability, error) {
	var result *RangeAvailability
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		if _, err := reads.PropertyByID(ctx, propertyID); err != nil {
			return propertyLookupErr(err)
		}

		var exclude *uuid.UUID
		if excludeBookingCode != nil && *excludeBookingCode != "" {
			b, err := reads.BookingByCode(ctx, *excludeBookingCode)
			switch {
			case err == nil:
				if b.PropertyID() == propertyID {
					id := b.ID()
					exclude = &id
				}
			case !infra.IsKind(err, infra.KindNotFound):
				return err
			}
		}

		days, err := reads.CalendarDays(ctx, propertyID, rng)
		if err != nil {
			return err
		}
		holds, err := reads.CalendarHolds(ctx, propertyID, rng)
		if err != nil {
			return err
		}

		result = &RangeAvailability{Available: true}
		err = availability.CheckRange(rng, availability.IndexDays(days), availability.IndexHolds(holds), exclude)
		var conflict *availability.ConflictError
		switch {
		case err == nil:
		case errors.As(err, &conflict):
			result = &RangeAvailability{Available: false, Conflict: conflict}
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (q *availabilityQueriesImpl) GetMonth(ctx context.Context, propertyID uuid.UUID, year int, month time.Month) (*MonthView, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, ErrInvalidMonth
	}
	rng := stay.MonthRange(year, month)

	var view *MonthView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		prop, err := reads.PropertyByID(ctx, propertyID)
		if err != nil {
			return propertyLookupErr(err)
		}
		days, err := reads.CalendarDays(ctx, propertyID, rng)
		if err != nil {
			return err
		}
		holds, err := reads.CalendarHolds(ctx, propertyID, rng)
		if err != nil {
			return err
		}
		dayIndex := availability.IndexDays(days)
		holdIndex := availability.IndexHolds(holds)

		view = &MonthView{PropertyID: propertyID, Year: year, Month: month}
		for _, d := range rng.Dates() {
			day := dayIndex[d]
			rate := pricing.NightlyRate(prop, day, d)
			dv := DayView{
				Date:          d,
				Status:        availability.StatusOf(day, holdIndex[d]),
				Price:         rate.Price,
				PriceSource:   string(rate.Source),
				MinimumNights: prop.MinNights(),
			}
			if day != nil {
				if day.MinimumNights() != nil {
					dv.MinimumNights = *day.MinimumNights()
				}
				dv.BlockReason = day.BlockReason()
			}
			view.Days = append(view.Days, dv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func propertyLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrPropertyNotFound)
	}
	return err
}
