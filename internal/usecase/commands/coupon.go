package commands

import (
	"context"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/pkg/clock"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=coupon.go -destination=../../../tests/mock/commands/coupon_mock.go -package=commandsmock

type ValidateCouponRequest struct {
	Code       string
	PropertyID uuid.UUID
	CheckIn    stay.Date
	CheckOut   stay.Date
	Guests     stay.Guests
}

// CouponCheck is the outcome of a dry-run evaluation. Breakdown is priced with the
// discount when the coupon applies and without it otherwise.
type CouponCheck struct {
	Applicable     bool
	Reason         coupon.Reason
	DiscountAmount decimal.Decimal
	Breakdown      *pricing.Breakdown
}

type CouponCommands interface {
	ValidateCoupon(ctx context.Context, userID uuid.UUID, req ValidateCouponRequest) (*CouponCheck, error)
	ApplyCoupon(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, code string) (*booking.Booking, error)
	RemoveCoupon(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error)
}

type couponUseCaseImpl struct {
	uow     shared.UnitOfWork
	calc    *pricing.Calculator
	clock   clock.Clock
	metrics shared.Metrics
}

func NewCouponUseCase(uow shared.UnitOfWork, calc *pricing.Calculator, clk clock.Clock, metrics shared.Metrics) CouponCommands {
	return &couponUseCaseImpl{uow: uow, calc: calc, clock: clk, metrics: metrics}
}

func (uc *couponUseCaseImpl) ValidateCoupon(ctx context.Context, userID uuid.UUID, req ValidateCouponRequest) (*CouponCheck, error) {
	rng, err := stay.NewRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var check *CouponCheck
	err = uc.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		now := uc.clock.Now()
		prop, err := reads.PropertyByID(ctx, req.PropertyID)
		if err != nil {
			return notFound(err, ErrPropertyNotFound)
		}
		quote, _, err := priceStay(ctx, reads, uc.calc, prop, rng, req.Guests)
		if err != nil {
			return err
		}
		_, res, err := evaluateCoupon(ctx, reads, req.Code, userID, prop.ID(), quote, nil, now)
		if err != nil {
			return err
		}
		breakdown, err := quote.Finalize(res.DiscountAmount)
		if err != nil {
			return err
		}
		check = &CouponCheck{
			Applicable:     res.Applicable,
			Reason:         res.Reason,
			DiscountAmount: breakdown.CouponDiscount,
			Breakdown:      breakdown,
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	if !check.Applicable {
		uc.metrics.CouponRejected(string(check.Reason))
	}
	return check, nil
}

func (uc *couponUseCaseImpl) ApplyCoupon(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, code string) (*booking.Booking, error) {
	var result *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, prop, err := loadBooking(ctx, tx.Reads(), bookingID)
		if err != nil {
			return err
		}
		if err := authorizeBooking(actor, b, prop, booking.ActorGuest, booking.ActorAdmin); err != nil {
			return err
		}
		if b.CouponID() != nil {
			return booking.ErrCouponAlreadyApplied
		}

		id := b.ID()
		quote, err := quoteStay(ctx, tx.Reads(), uc.calc, prop, b.Stay(), b.Guests(), &id)
		if err != nil {
			return err
		}
		c, res, err := evaluateCoupon(ctx, tx.Reads(), code, b.GuestID(), prop.ID(), quote, &id, now)
		if err != nil {
			return err
		}
		if !res.Applicable {
			uc.metrics.CouponRejected(string(res.Reason))
			return couponInvalid(res.Reason)
		}
		breakdown, err := quote.Finalize(res.DiscountAmount)
		if err != nil {
			return err
		}
		if err := b.ApplyCoupon(c.ID(), breakdown.Totals(), now); err != nil {
			return err
		}

		usage := coupon.NewUsage(c.ID(), b.GuestID(), b.ID(), breakdown.CouponDiscount, now)
		if err := tx.CouponUsages().Apply(ctx, usage, c.UsagePerUser()); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		if err := notify(ctx, tx, TopicCouponChanged, b, now); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (uc *couponUseCaseImpl) RemoveCoupon(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	var result *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, prop, err := loadBooking(ctx, tx.Reads(), bookingID)
		if err != nil {
			return err
		}
		if err := authorizeBooking(actor, b, prop, booking.ActorGuest, booking.ActorAdmin); err != nil {
			return err
		}
		if b.CouponID() == nil {
			return booking.ErrNoCouponApplied
		}

		id := b.ID()
		quote, err := quoteStay(ctx, tx.Reads(), uc.calc, prop, b.Stay(), b.Guests(), &id)
		if err != nil {
			return err
		}
		breakdown, err := quote.Finalize(decimal.Zero)
		if err != nil {
			return err
		}
		if err := b.RemoveCoupon(breakdown.Totals(), now); err != nil {
			return err
		}
		if err := tx.CouponUsages().Reverse(ctx, b.ID(), now); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		if err := notify(ctx, tx, TopicCouponChanged, b, now); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

// evaluateCoupon looks up a coupon by its raw code and checks it against the quote and the
// user's history. A malformed or unknown code evaluates as not found rather than failing.
func evaluateCoupon(
	ctx context.Context,
	reads shared.CommandReads,
	rawCode string,
	userID, propertyID uuid.UUID,
	quote *pricing.Quote,
	excludeBookingID *uuid.UUID,
	now time.Time,
) (*coupon.Coupon, coupon.ValidationResult, error) {
	code, err := coupon.NewCouponCode(rawCode)
	if err != nil {
		return nil, coupon.Evaluate(nil, coupon.EvaluationContext{}), nil
	}
	c, err := reads.CouponByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, coupon.Evaluate(nil, coupon.EvaluationContext{}), nil
		}
		return nil, coupon.ValidationResult{}, err
	}
	used, err := reads.CouponUsageCount(ctx, c.ID(), userID)
	if err != nil {
		return nil, coupon.ValidationResult{}, err
	}
	history, err := reads.GuestBookingHistory(ctx, userID, excludeBookingID)
	if err != nil {
		return nil, coupon.ValidationResult{}, err
	}

	res := coupon.Evaluate(c, coupon.EvaluationContext{
		UserID:                    userID,
		PropertyID:                propertyID,
		BookingAmount:             quote.BookingAmount(),
		Nights:                    quote.Nights(),
		Now:                       now,
		UserUsageCount:            used,
		CompletedOrActiveBookings: history.Active,
		TotalBookings:             history.Total,
	})
	return c, res, nil
}
