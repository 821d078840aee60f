package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/pkg/clock"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const sweeperLockKey = "sweeper:expired-pending"

type SweeperConfig struct {
	BatchSize int
	// LeaseTTL bounds how long one instance keeps the sweep lease if it dies mid-run.
	LeaseTTL time.Duration
}

type SweepResult struct {
	Scanned int
	Expired int
	Skipped int
	Failed  int
}

type SweeperCommands interface {
	// ProcessExpiredPendingBookings cancels unpaid Pending bookings whose payment deadline has passed.
	// Running it twice, or on two instances at once, never cancels a booking twice.
	ProcessExpiredPendingBookings(ctx context.Context) (*SweepResult, error)
	// Sweep runs ProcessExpiredPendingBookings under a cluster-wide lease and is a no-op when another
	// instance holds it.
	Sweep(ctx context.Context) error
}

type sweeperUseCaseImpl struct {
	uow     shared.UnitOfWork
	locker  shared.Locker
	clock   clock.Clock
	metrics shared.Metrics
	cfg     SweeperConfig
	logger  *slog.Logger
}

func NewSweeperUseCase(
	uow shared.UnitOfWork,
	locker shared.Locker,
	clk clock.Clock,
	metrics shared.Metrics,
	cfg SweeperConfig,
	logger *slog.Logger,
) SweeperCommands {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = time.Minute
	}
	return &sweeperUseCaseImpl{
		uow:     uow,
		locker:  locker,
		clock:   clk,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

func (uc *sweeperUseCaseImpl) Sweep(ctx context.Context) error {
	unlock, ok, err := uc.locker.TryLock(ctx, sweeperLockKey, uc.cfg.LeaseTTL)
	if err != nil {
		return translate(err)
	}
	if !ok {
		uc.logger.DebugContext(ctx, "sweep skipped, lease held elsewhere")
		return nil
	}
	defer unlock()

	_, err = uc.ProcessExpiredPendingBookings(ctx)
	return err
}

func (uc *sweeperUseCaseImpl) ProcessExpiredPendingBookings(ctx context.Context) (*SweepResult, error) {
	start := time.Now()
	result := &SweepResult{}

	err := uc.process(ctx, result)
	uc.metrics.SweepFinished(result.Expired, time.Since(start), err)

	attrs := []any{
		slog.Int("scanned", result.Scanned),
		slog.Int("expired", result.Expired),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		uc.logger.ErrorContext(ctx, "sweep aborted", append(attrs, slog.Any("error", err))...)
		return result, err
	}
	if result.Scanned > 0 {
		uc.logger.InfoContext(ctx, "sweep finished", attrs...)
	}
	return result, nil
}

func (uc *sweeperUseCaseImpl) process(ctx context.Context, result *SweepResult) error {
	ids, err := uc.uow.CommandReads().ExpiredPendingBookings(ctx, uc.clock.Now(), uc.cfg.BatchSize)
	if err != nil {
		return translate(err)
	}
	result.Scanned = len(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := uc.expire(ctx, id)
		switch {
		case err == nil:
			result.Expired++
			uc.metrics.BookingTransitioned(booking.StatusCancelled.String())
		case skippable(err):
			result.Skipped++
			uc.logger.DebugContext(ctx, "booking no longer expirable",
				slog.String("booking_id", id.String()), slog.Any("error", err))
		case infra.IsTransient(err):
			return translate(err)
		default:
			result.Failed++
			uc.logger.ErrorContext(ctx, "failed to expire booking",
				slog.String("booking_id", id.String()), slog.Any("error", err))
		}
	}
	return nil
}

// expire re-reads the booking inside its own transaction so a payment that landed after the
// scan wins over the deadline.
func (uc *sweeperUseCaseImpl) expire(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return err
		}
		if err := b.Expire(now); err != nil {
			return err
		}
		if err := releaseBooking(ctx, tx, b, now); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		return notify(ctx, tx, TopicBookingExpired, b, now)
	})
}

func skippable(err error) bool {
	return errors.Is(err, booking.ErrNotExpired) ||
		errors.Is(err, booking.ErrInvalidTransition) ||
		errors.Is(err, booking.ErrStaleState) ||
		infra.IsKind(err, infra.KindNotFound)
}
