package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/pkg/clock"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking_mock.go -package=commandsmock

const createBookingEndpoint = "POST /api/bookings"

type CreateBookingRequest struct {
	PropertyID uuid.UUID   `json:"property_id"`
	CheckIn    stay.Date   `json:"check_in"`
	CheckOut   stay.Date   `json:"check_out"`
	Guests     stay.Guests `json:"guests"`
	CouponCode *string     `json:"coupon_code,omitempty"`
	// Contact overrides; the guest profile fills whatever is nil.
	GuestName       *string `json:"guest_name,omitempty"`
	GuestEmail      *string `json:"guest_email,omitempty"`
	GuestPhone      *string `json:"guest_phone,omitempty"`
	SpecialRequests string  `json:"special_requests,omitempty"`
}

type CreateBookingResult struct {
	Booking    *booking.Booking
	IsReplayed bool
}

// UpdateBookingRequest leaves nil fields unchanged. Dates move together.
type UpdateBookingRequest struct {
	CheckIn         *stay.Date
	CheckOut        *stay.Date
	Guests          *stay.Guests
	GuestName       *string
	GuestEmail      *string
	GuestPhone      *string
	SpecialRequests *string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, guestID uuid.UUID, req CreateBookingRequest, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
	UpdateBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, req UpdateBookingRequest) (*booking.Booking, error)
	ConfirmBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	RejectBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error)
	CancelBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error)
	CheckIn(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	CheckOut(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	Complete(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	MarkNoShow(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	calc    *pricing.Calculator
	codes   *booking.CodeGenerator
	clock   clock.Clock
	metrics shared.Metrics
	policy  Policy
	logger  *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	calc *pricing.Calculator,
	codes *booking.CodeGenerator,
	clk clock.Clock,
	metrics shared.Metrics,
	policy Policy,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:     uow,
		calc:    calc,
		codes:   codes,
		clock:   clk,
		metrics: metrics,
		policy:  policy,
		logger:  logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	guestID uuid.UUID,
	req CreateBookingRequest,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	rng, err := stay.NewRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if err := req.Guests.Validate(); err != nil {
		return nil, errs.Mark(err, ErrGuestCountInvalid)
	}
	requestHash := hashRequest(req)

	var result *CreateBookingResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		if idempotencyKey != nil {
			replayed, err := uc.claimIdempotencyKey(ctx, tx, *idempotencyKey, guestID, requestHash, now)
			if err != nil {
				return err
			}
			if replayed != nil {
				result = &CreateBookingResult{Booking: replayed, IsReplayed: true}
				return nil
			}
		}

		b, err := uc.createInTx(ctx, tx, guestID, req, rng, now)
		if err != nil {
			return err
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().Complete(ctx, *idempotencyKey, guestID, b.ID()); err != nil {
				return err
			}
		}
		result = &CreateBookingResult{Booking: b}
		return nil
	})
	if err != nil {
		err = translate(err)
		uc.metrics.BookingRejected(rejectionLabel(err))
		return nil, err
	}

	if !result.IsReplayed {
		uc.metrics.BookingCreated()
		uc.logger.InfoContext(ctx, "booking created",
			slog.String("booking_id", result.Booking.ID().String()),
			slog.String("code", result.Booking.Code()),
			slog.String("property_id", req.PropertyID.String()),
			slog.String("stay", rng.String()))
	}
	return result, nil
}

func (uc *bookingUseCaseImpl) createInTx(
	ctx context.Context,
	tx shared.Tx,
	guestID uuid.UUID,
	req CreateBookingRequest,
	rng stay.Range,
	now time.Time,
) (*booking.Booking, error) {
	reads := tx.Reads()

	prop, err := reads.PropertyByID(ctx, req.PropertyID)
	if err != nil {
		return nil, notFound(err, ErrPropertyNotFound)
	}
	if !prop.IsActive() {
		return nil, ErrPropertyInactive
	}

	profile, err := reads.GuestProfile(ctx, guestID)
	if err != nil {
		return nil, notFound(err, ErrGuestNotFound)
	}
	if !profile.IsActive() {
		return nil, ErrForbidden
	}
	snapshot, err := contactSnapshot(profile, req.GuestName, req.GuestEmail, req.GuestPhone)
	if err != nil {
		return nil, err
	}

	if err := tx.Calendar().LockProperty(ctx, prop.ID()); err != nil {
		return nil, err
	}
	quote, err := quoteStay(ctx, reads, uc.calc, prop, rng, req.Guests, nil)
	if err != nil {
		return nil, err
	}

	var applied *coupon.Coupon
	discount := decimal.Zero
	if req.CouponCode != nil && *req.CouponCode != "" {
		c, res, err := evaluateCoupon(ctx, reads, *req.CouponCode, guestID, prop.ID(), quote, nil, now)
		if err != nil {
			return nil, err
		}
		if !res.Applicable {
			uc.metrics.CouponRejected(string(res.Reason))
			return nil, couponInvalid(res.Reason)
		}
		applied, discount = c, res.DiscountAmount
	}

	breakdown, err := quote.Finalize(discount)
	if err != nil {
		return nil, err
	}
	code, err := uc.codes.Generate(now)
	if err != nil {
		return nil, err
	}

	params := booking.NewParams{
		Code:            code,
		GuestID:         guestID,
		PropertyID:      prop.ID(),
		Stay:            rng,
		Guests:          req.Guests,
		Price:           breakdown.Totals(),
		GuestSnapshot:   snapshot,
		SpecialRequests: req.SpecialRequests,
	}
	if applied != nil {
		id := applied.ID()
		params.CouponID = &id
	}
	if prop.RequiresPrepayment() {
		deadline := now.Add(uc.policy.PaymentTimeout)
		params.PaymentExpiresAt = &deadline
	}
	b, err := booking.NewBooking(params, now)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, err
	}
	if err := tx.Calendar().ReserveRange(ctx, prop.ID(), rng, b.ID()); err != nil {
		return nil, err
	}
	if applied != nil {
		usage := coupon.NewUsage(applied.ID(), guestID, b.ID(), breakdown.CouponDiscount, now)
		if err := tx.CouponUsages().Apply(ctx, usage, applied.UsagePerUser()); err != nil {
			return nil, err
		}
	}
	if err := notify(ctx, tx, TopicBookingCreated, b, now); err != nil {
		return nil, err
	}
	return b, nil
}

// claimIdempotencyKey returns the booking of an earlier completed request with the same key, or nil
// when this request owns the key.
func (uc *bookingUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	now time.Time,
) (*booking.Booking, error) {
	expiresAt := now.Add(uc.policy.IdempotencyTTL)
	inserted, err := tx.Idempotency().TryInsert(ctx, key, userID, createBookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if now.After(existing.ExpiresAt) {
		claimed, err := tx.Idempotency().ClaimExpired(ctx, key, userID, requestHash, now, expiresAt)
		if err != nil {
			return nil, err
		}
		if claimed {
			return nil, nil
		}
		return nil, ErrIdempotencyInProgress
	}
	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed idempotency key has no booking")
		}
		b, err := tx.Reads().BookingByID(ctx, *existing.ResultBookingID)
		if err != nil {
			return nil, notFound(err, ErrBookingNotFound)
		}
		return b, nil
	default:
		return nil, ErrIdempotencyInProgress
	}
}

func (uc *bookingUseCaseImpl) UpdateBooking(
	ctx context.Context,
	actor booking.Actor,
	bookingID uuid.UUID,
	req UpdateBookingRequest,
) (*booking.Booking, error) {
	if (req.CheckIn == nil) != (req.CheckOut == nil) {
		return nil, errs.Mark(errs.New("check_in and check_out must be changed together"), ErrValidation)
	}

	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, prop, err := loadBooking(ctx, tx.Reads(), bookingID)
		if err != nil {
			return err
		}
		if err := authorizeBooking(actor, b, prop, booking.ActorGuest, booking.ActorAdmin); err != nil {
			return err
		}
		if b.Status() != booking.StatusPending {
			return &booking.TransitionError{From: b.Status(), Action: "update"}
		}

		guests := b.Guests()
		if req.Guests != nil {
			guests = *req.Guests
		}
		if !prop.Accepts(guests.Adults, guests.Children, guests.Infants) {
			return pricing.ErrGuestCountInvalid
		}

		if req.CheckIn != nil {
			rng, err := stay.NewRange(*req.CheckIn, *req.CheckOut)
			if err != nil {
				return err
			}
			if !rng.Equal(b.Stay()) {
				if err := uc.reschedule(ctx, tx, b, prop, rng, guests, now); err != nil {
					return err
				}
			}
		}

		snapshot := b.GuestSnapshot()
		if req.GuestName != nil || req.GuestEmail != nil || req.GuestPhone != nil {
			snapshot, err = overrideSnapshot(snapshot, req.GuestName, req.GuestEmail, req.GuestPhone)
			if err != nil {
				return err
			}
		}
		requests := b.SpecialRequests()
		if req.SpecialRequests != nil {
			requests = *req.SpecialRequests
		}
		if err := b.UpdateGuestInfo(guests, snapshot, requests, now); err != nil {
			return err
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		if err := notify(ctx, tx, TopicBookingUpdated, b, now); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// reschedule moves the holds of b to rng and re-prices it, keeping any applied coupon.
func (uc *bookingUseCaseImpl) reschedule(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	prop *property.Property,
	rng stay.Range,
	guests stay.Guests,
	now time.Time,
) error {
	if b.IsPaid() {
		return booking.ErrPaymentLocked
	}
	if err := tx.Calendar().LockProperty(ctx, prop.ID()); err != nil {
		return err
	}
	id := b.ID()
	quote, err := quoteStay(ctx, tx.Reads(), uc.calc, prop, rng, guests, &id)
	if err != nil {
		return err
	}
	discount := decimal.Zero
	if b.CouponID() != nil {
		c, err := tx.Reads().CouponByID(ctx, *b.CouponID())
		if err != nil {
			return err
		}
		discount = c.Discount().AmountFor(quote.BookingAmount())
	}
	breakdown, err := quote.Finalize(discount)
	if err != nil {
		return err
	}

	if err := tx.Calendar().ReleaseRange(ctx, prop.ID(), b.Stay(), b.ID()); err != nil {
		return err
	}
	if err := tx.Calendar().ReserveRange(ctx, prop.ID(), rng, b.ID()); err != nil {
		return err
	}
	return b.Reschedule(rng, breakdown.Totals(), now)
}

func (uc *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, actor, bookingID, TopicBookingConfirmed,
		[]booking.ActorRole{booking.ActorHost, booking.ActorAdmin},
		func(b *booking.Booking, prop *property.Property, now time.Time) error {
			return b.Confirm(prop.RequiresPrepayment(), now)
		})
}

func (uc *bookingUseCaseImpl) RejectBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error) {
	return uc.transition(ctx, actor, bookingID, TopicBookingRejected,
		[]booking.ActorRole{booking.ActorHost, booking.ActorAdmin},
		func(b *booking.Booking, _ *property.Property, now time.Time) error {
			return b.Reject(actor, reason, now)
		})
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error) {
	return uc.transition(ctx, actor, bookingID, TopicBookingCancelled,
		[]booking.ActorRole{booking.ActorGuest, booking.ActorHost, booking.ActorAdmin},
		func(b *booking.Booking, prop *property.Property, now time.Time) error {
			return b.Cancel(actor, reason, prop.FreeCancellationHours(), uc.policy.location(), now)
		})
}

func (uc *bookingUseCaseImpl) CheckIn(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, actor, bookingID, TopicBookingCheckedIn,
		[]booking.ActorRole{booking.ActorGuest, booking.ActorHost, booking.ActorAdmin},
		func(b *booking.Booking, _ *property.Property, now time.Time) error {
			return b.CheckIn(uc.policy.today(now), now)
		})
}

func (uc *bookingUseCaseImpl) CheckOut(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, actor, bookingID, TopicBookingCheckedOut,
		[]booking.ActorRole{booking.ActorGuest, booking.ActorHost, booking.ActorAdmin},
		func(b *booking.Booking, _ *property.Property, now time.Time) error {
			return b.CheckOut(now)
		})
}

func (uc *bookingUseCaseImpl) Complete(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, actor, bookingID, TopicBookingCompleted,
		[]booking.ActorRole{booking.ActorHost, booking.ActorAdmin},
		func(b *booking.Booking, _ *property.Property, now time.Time) error {
			return b.Complete(now)
		})
}

func (uc *bookingUseCaseImpl) MarkNoShow(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, actor, bookingID, TopicBookingNoShow,
		[]booking.ActorRole{booking.ActorHost, booking.ActorAdmin},
		func(b *booking.Booking, _ *property.Property, now time.Time) error {
			return b.MarkNoShow(uc.policy.today(now), now)
		})
}

type transitionFunc func(b *booking.Booking, prop *property.Property, now time.Time) error

// transition loads, authorizes, mutates and saves a booking in one transaction.
// Leaving the active states releases the calendar and the coupon in the same transaction.
func (uc *bookingUseCaseImpl) transition(
	ctx context.Context,
	actor booking.Actor,
	bookingID uuid.UUID,
	topic string,
	allowed []booking.ActorRole,
	apply transitionFunc,
) (*booking.Booking, error) {
	var result *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, prop, err := loadBooking(ctx, tx.Reads(), bookingID)
		if err != nil {
			return err
		}
		if err := authorizeBooking(actor, b, prop, allowed...); err != nil {
			return err
		}

		wasReleased := b.Status().Released()
		if err := apply(b, prop, now); err != nil {
			return err
		}
		if b.Status().Released() && !wasReleased {
			if err := releaseBooking(ctx, tx, b, now); err != nil {
				return err
			}
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		if err := notify(ctx, tx, topic, b, now); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	uc.metrics.BookingTransitioned(result.Status().String())
	return result, nil
}

func loadBooking(ctx context.Context, reads shared.CommandReads, bookingID uuid.UUID) (*booking.Booking, *property.Property, error) {
	b, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, nil, notFound(err, ErrBookingNotFound)
	}
	prop, err := reads.PropertyByID(ctx, b.PropertyID())
	if err != nil {
		return nil, nil, notFound(err, ErrPropertyNotFound)
	}
	return b, prop, nil
}

// priceStay prices rng with the host's day overrides without looking at holds.
func priceStay(
	ctx context.Context,
	reads shared.CommandReads,
	calc *pricing.Calculator,
	prop *property.Property,
	rng stay.Range,
	guests stay.Guests,
) (*pricing.Quote, map[stay.Date]*availability.Day, error) {
	days, err := reads.CalendarDays(ctx, prop.ID(), rng)
	if err != nil {
		return nil, nil, err
	}
	dayIndex := availability.IndexDays(days)
	quote, err := calc.Quote(pricing.Input{
		Property: prop,
		Range:    rng,
		Guests:   guests,
		Days:     dayIndex,
	})
	if err != nil {
		return nil, nil, err
	}
	return quote, dayIndex, nil
}

// quoteStay is priceStay plus a check that every night is free.
// Holds of excludeBookingID do not count as conflicts.
func quoteStay(
	ctx context.Context,
	reads shared.CommandReads,
	calc *pricing.Calculator,
	prop *property.Property,
	rng stay.Range,
	guests stay.Guests,
	excludeBookingID *uuid.UUID,
) (*pricing.Quote, error) {
	quote, days, err := priceStay(ctx, reads, calc, prop, rng, guests)
	if err != nil {
		return nil, err
	}
	holds, err := reads.CalendarHolds(ctx, prop.ID(), rng)
	if err != nil {
		return nil, err
	}
	if err := availability.CheckRange(rng, days, availability.IndexHolds(holds), excludeBookingID); err != nil {
		return nil, err
	}
	return quote, nil
}

func contactSnapshot(profile *user.Profile, name, email, phone *string) (booking.GuestSnapshot, error) {
	base := booking.GuestSnapshot{
		FullName: profile.FullName(),
		Email:    profile.Email().Value(),
		Phone:    profile.Phone().Value(),
	}
	return overrideSnapshot(base, name, email, phone)
}

func overrideSnapshot(base booking.GuestSnapshot, name, email, phone *string) (booking.GuestSnapshot, error) {
	fullName := base.FullName
	if name != nil {
		fullName = *name
	}
	mail, err := user.NewEmail(base.Email)
	if email != nil {
		mail, err = user.NewEmail(*email)
	}
	if err != nil {
		return booking.GuestSnapshot{}, errs.Mark(err, ErrValidation)
	}
	tel, err := user.NewPhone(base.Phone)
	if phone != nil {
		tel, err = user.NewPhone(*phone)
	}
	if err != nil {
		return booking.GuestSnapshot{}, errs.Mark(err, ErrValidation)
	}
	snapshot, err := booking.NewGuestSnapshot(fullName, mail, tel)
	if err != nil {
		return booking.GuestSnapshot{}, errs.Mark(err, ErrValidation)
	}
	return snapshot, nil
}

func hashRequest(req CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func rejectionLabel(err error) string {
	switch {
	case errors.Is(err, ErrDatesUnavailable):
		return "dates_unavailable"
	case errors.Is(err, ErrStayLengthInvalid):
		return "stay_length_invalid"
	case errors.Is(err, ErrGuestCountInvalid):
		return "guest_count_invalid"
	case errors.Is(err, ErrCouponInvalid):
		return "coupon_invalid"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "other"
	}
}
