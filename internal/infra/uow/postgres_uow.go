package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/infra/readstore"
	"homestay-booking/internal/infra/repository"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

var _ shared.UnitOfWork = (*PostgresUoW)(nil)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *query.Queries
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *query.Queries, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		logger: logger,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only repeatable read transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.q, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return infra.WrapRepoErr("begin transaction", errs.Mark(err, errTransactionBegin))
		}

		tx := &pgTx{
			dbtx: pgxTx,
			q:    u.q,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = infra.WrapRepoErr("commit transaction", errs.Mark(err, errTransactionCommit))
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.WarnContext(ctx, "rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && infra.IsRetryableTx(err) {
				u.logger.ErrorContext(ctx, "transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		u.logger.WarnContext(ctx, "retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return infra.WrapRepoErr("begin read-only transaction", errs.Mark(err, errTransactionBegin))
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.WarnContext(ctx, "failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, newCommandReads(u.q, pgxTx)); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return infra.IsRetryableTx(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

type pgTx struct {
	dbtx query.DBTX
	q    *query.Queries

	// Lazy-initialized repositories
	bookingRepo      *repository.BookingRepository
	calendarRepo     *repository.CalendarRepository
	couponUsageRepo  *repository.CouponUsageRepository
	idempotencyRepo  *repository.IdempotencyRepository
	notificationRepo *repository.NotificationRepository
	commandReads     *commandReads
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.q, t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Calendar() shared.CalendarRepository {
	if t.calendarRepo == nil {
		t.calendarRepo = repository.NewCalendarRepository(t.q, t.dbtx)
	}
	return t.calendarRepo
}

func (t *pgTx) CouponUsages() shared.CouponUsageRepository {
	if t.couponUsageRepo == nil {
		t.couponUsageRepo = repository.NewCouponUsageRepository(t.q, t.dbtx)
	}
	return t.couponUsageRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.q, t.dbtx)
	}
	return t.commandReads
}

// commandReads adapts the read stores to shared.CommandReads on one connection or transaction.
type commandReads struct {
	properties  *readstore.PropertyReadStore
	users       *readstore.UserReadStore
	coupons     *readstore.CouponReadStore
	bookings    *readstore.BookingReadStore
	calendar    *readstore.CalendarReadStore
	idempotency *readstore.IdempotencyReadStore
}

func newCommandReads(q *query.Queries, db query.DBTX) *commandReads {
	return &commandReads{
		properties:  readstore.NewPropertyReadStore(q, db),
		users:       readstore.NewUserReadStore(q, db),
		coupons:     readstore.NewCouponReadStore(q, db),
		bookings:    readstore.NewBookingReadStore(q, db),
		calendar:    readstore.NewCalendarReadStore(q, db),
		idempotency: readstore.NewIdempotencyReadStore(q, db),
	}
}

func (r *commandReads) PropertyByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return r.properties.FindByID(ctx, id)
}

func (r *commandReads) GuestProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	return r.users.FindByID(ctx, userID)
}

func (r *commandReads) CouponByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.coupons.FindByCode(ctx, code)
}

func (r *commandReads) CouponByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	return r.coupons.FindByID(ctx, id)
}

func (r *commandReads) CouponUsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	return r.coupons.UsageCount(ctx, couponID, userID)
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.bookings.LoadByID(ctx, id)
}

func (r *commandReads) BookingByCode(ctx context.Context, code string) (*booking.Booking, error) {
	return r.bookings.LoadByCode(ctx, code)
}

func (r *commandReads) GuestBookingHistory(ctx context.Context, userID uuid.UUID, excludeBookingID *uuid.UUID) (shared.BookingHistory, error) {
	return r.bookings.History(ctx, userID, excludeBookingID)
}

func (r *commandReads) ExpiredPendingBookings(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return r.bookings.ExpiredPending(ctx, now, limit)
}

func (r *commandReads) CalendarDays(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]*availability.Day, error) {
	return r.calendar.Days(ctx, propertyID, rng)
}

func (r *commandReads) CalendarHolds(ctx context.Context, propertyID uuid.UUID, rng stay.Range) ([]availability.Hold, error) {
	return r.calendar.Holds(ctx, propertyID, rng)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.idempotency.Get(ctx, key, userID)
}
