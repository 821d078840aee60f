package commands

import (
	"context"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/pkg/clock"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=calendar.go -destination=../../../tests/mock/commands/calendar_mock.go -package=commandsmock

// DayUpdate changes the host-side settings of one date. Nil fields keep their value;
// the Clear flags reset an override to the property default.
type DayUpdate struct {
	Date               stay.Date
	IsAvailable        *bool
	CustomPrice        *decimal.Decimal
	ClearCustomPrice   bool
	MinimumNights      *int
	ClearMinimumNights bool
}

type CalendarCommands interface {
	BlockRange(ctx context.Context, actor booking.Actor, propertyID uuid.UUID, rng stay.Range, reason *string) ([]*availability.Day, error)
	UnblockRange(ctx context.Context, actor booking.Actor, propertyID uuid.UUID, rng stay.Range) ([]*availability.Day, error)
	UpsertDays(ctx context.Context, actor booking.Actor, propertyID uuid.UUID, updates []DayUpdate) ([]*availability.Day, error)
}

type calendarUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCalendarUseCase(uow shared.UnitOfWork, clk clock.Clock) CalendarCommands {
	return &calendarUseCaseImpl{uow: uow, clock: clk}
}

func (uc *calendarUseCaseImpl) BlockRange(
	ctx context.Context,
	actor booking.Actor,
	propertyID uuid.UUID,
	rng stay.Range,
	reason *string,
) ([]*availability.Day, error) {
	return uc.modify(ctx, actor, propertyID, rng.Dates(), func(day *availability.Day, hold *availability.Hold) error {
		if hold != nil {
			return &availability.ConflictError{Date: day.Date(), Status: availability.StatusBooked}
		}
		return day.Block(reason)
	})
}

func (uc *calendarUseCaseImpl) UnblockRange(
	ctx context.Context,
	actor booking.Actor,
	propertyID uuid.UUID,
	rng stay.Range,
) ([]*availability.Day, error) {
	return uc.modify(ctx, actor, propertyID, rng.Dates(), func(day *availability.Day, _ *availability.Hold) error {
		day.Unblock()
		return nil
	})
}

func (uc *calendarUseCaseImpl) UpsertDays(
	ctx context.Context,
	actor booking.Actor,
	propertyID uuid.UUID,
	updates []DayUpdate,
) ([]*availability.Day, error) {
	if len(updates) == 0 {
		return nil, errs.Mark(errs.New("no days to update"), ErrValidation)
	}
	byDate := make(map[stay.Date]DayUpdate, len(updates))
	dates := make([]stay.Date, 0, len(updates))
	for _, u := range updates {
		if _, dup := byDate[u.Date]; dup {
			return nil, errs.Mark(errs.Newf("date %s listed twice", u.Date), ErrValidation)
		}
		byDate[u.Date] = u
		dates = append(dates, u.Date)
	}

	return uc.modify(ctx, actor, propertyID, dates, func(day *availability.Day, hold *availability.Hold) error {
		u := byDate[day.Date()]
		if u.IsAvailable != nil {
			if !*u.IsAvailable && hold != nil {
				return &availability.ConflictError{Date: day.Date(), Status: availability.StatusBooked}
			}
			day.SetAvailable(*u.IsAvailable)
		}
		switch {
		case u.ClearCustomPrice:
			if err := day.SetCustomPrice(nil); err != nil {
				return err
			}
		case u.CustomPrice != nil:
			if err := day.SetCustomPrice(u.CustomPrice); err != nil {
				return err
			}
		}
		switch {
		case u.ClearMinimumNights:
			if err := day.SetMinimumNights(nil); err != nil {
				return err
			}
		case u.MinimumNights != nil:
			if err := day.SetMinimumNights(u.MinimumNights); err != nil {
				return err
			}
		}
		return nil
	})
}

type dayMutation func(day *availability.Day, hold *availability.Hold) error

// modify applies mutate to every date under the property lock and stores the result.
// Dates without a stored row start from the open default.
func (uc *calendarUseCaseImpl) modify(
	ctx context.Context,
	actor booking.Actor,
	propertyID uuid.UUID,
	dates []stay.Date,
	mutate dayMutation,
) ([]*availability.Day, error) {
	span, ok := spanOf(dates)
	if !ok {
		return nil, errs.Mark(errs.New("no dates given"), ErrValidation)
	}

	var result []*availability.Day
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		reads := tx.Reads()
		prop, err := reads.PropertyByID(ctx, propertyID)
		if err != nil {
			return notFound(err, ErrPropertyNotFound)
		}
		if err := authorizeHost(actor, prop); err != nil {
			return err
		}
		if err := tx.Calendar().LockProperty(ctx, propertyID); err != nil {
			return err
		}

		stored, err := reads.CalendarDays(ctx, propertyID, span)
		if err != nil {
			return err
		}
		holds, err := reads.CalendarHolds(ctx, propertyID, span)
		if err != nil {
			return err
		}
		days := availability.IndexDays(stored)
		held := availability.IndexHolds(holds)

		result = make([]*availability.Day, 0, len(dates))
		for _, d := range dates {
			day, ok := days[d]
			if !ok {
				day = availability.NewDay(propertyID, d)
			}
			if err := mutate(day, held[d]); err != nil {
				return err
			}
			day.Touch(now)
			result = append(result, day)
		}
		return tx.Calendar().UpsertDays(ctx, result)
	})
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

// spanOf returns the smallest range covering every date.
func spanOf(dates []stay.Date) (stay.Range, bool) {
	if len(dates) == 0 {
		return stay.Range{}, false
	}
	first, last := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	rng, err := stay.NewRange(first, last.AddDays(1))
	if err != nil {
		return stay.Range{}, false
	}
	return rng, true
}
