package commands

import (
	"context"
	"errors"
	"log/slog"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/pkg/clock"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment_mock.go -package=commandsmock

// PaymentResult is a gateway callback after its signature has been checked.
type PaymentResult struct {
	BookingID      uuid.UUID
	Succeeded      bool
	Amount         decimal.Decimal
	FailureReason  string
	TransactionRef string
}

type PaymentOutcome string

const (
	PaymentOutcomeRecorded       PaymentOutcome = "recorded"
	PaymentOutcomeAmountMismatch PaymentOutcome = "amount_mismatch"
	PaymentOutcomeFailed         PaymentOutcome = "failed"
	PaymentOutcomeDuplicate      PaymentOutcome = "duplicate"
	PaymentOutcomeIgnored        PaymentOutcome = "ignored"
)

type PaymentReceipt struct {
	Booking *booking.Booking
	Outcome PaymentOutcome
}

type PaymentCommands interface {
	OnPaymentResult(ctx context.Context, res PaymentResult) (*PaymentReceipt, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics shared.Metrics
	logger  *slog.Logger
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock, metrics shared.Metrics, logger *slog.Logger) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, clock: clk, metrics: metrics, logger: logger}
}

// OnPaymentResult records a gateway result. A payment racing the sweeper either lands first and keeps
// the booking, or finds it released and fails with ErrPaymentTooLate so the gateway can refund.
func (uc *paymentUseCaseImpl) OnPaymentResult(ctx context.Context, res PaymentResult) (*PaymentReceipt, error) {
	if res.Succeeded && !res.Amount.IsPositive() {
		return nil, errs.Mark(errs.New("paid amount must be positive"), ErrValidation)
	}

	var (
		receipt *PaymentReceipt
		err     error
	)
	// A concurrent writer may bump the version between read and save; one re-read settles it.
	for attempt := 0; attempt < 2; attempt++ {
		receipt, err = uc.apply(ctx, res)
		if !errors.Is(err, booking.ErrStaleState) {
			break
		}
	}
	if err != nil {
		err = translate(err)
		uc.logger.WarnContext(ctx, "payment result rejected",
			slog.String("booking_id", res.BookingID.String()),
			slog.String("transaction_ref", res.TransactionRef),
			slog.Any("error", err))
		return nil, err
	}

	uc.metrics.PaymentRecorded(string(receipt.Outcome))
	uc.logger.InfoContext(ctx, "payment result processed",
		slog.String("booking_id", res.BookingID.String()),
		slog.String("transaction_ref", res.TransactionRef),
		slog.String("outcome", string(receipt.Outcome)))
	return receipt, nil
}

func (uc *paymentUseCaseImpl) apply(ctx context.Context, res PaymentResult) (*PaymentReceipt, error) {
	var receipt *PaymentReceipt
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, err := tx.Reads().BookingByID(ctx, res.BookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}

		var (
			outcome PaymentOutcome
			topic   string
		)
		switch {
		case res.Succeeded && b.Status().Released():
			return ErrPaymentTooLate
		case res.Succeeded && b.IsPaid():
			receipt = &PaymentReceipt{Booking: b, Outcome: PaymentOutcomeDuplicate}
			return nil
		case res.Succeeded:
			if err := b.RecordPayment(res.Amount, now); err != nil {
				return err
			}
			outcome, topic = PaymentOutcomeRecorded, TopicPaymentReceived
			if !b.IsPaid() {
				outcome, topic = PaymentOutcomeAmountMismatch, TopicPaymentFailed
			}
		case b.Status().Released() || b.IsPaid():
			receipt = &PaymentReceipt{Booking: b, Outcome: PaymentOutcomeIgnored}
			return nil
		default:
			if err := b.RecordPaymentFailure(res.FailureReason, now); err != nil {
				return err
			}
			outcome, topic = PaymentOutcomeFailed, TopicPaymentFailed
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		if err := notify(ctx, tx, topic, b, now); err != nil {
			return err
		}
		receipt = &PaymentReceipt{Booking: b, Outcome: outcome}
		return nil
	})
	return receipt, err
}
