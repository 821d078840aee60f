//go:build unit

package booking_test

import (
	"errors"
	"testing"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	guest = booking.Actor{ID: uuid.New(), Role: booking.ActorGuest}
	host  = booking.Actor{ID: uuid.New(), Role: booking.ActorHost}
)

func pending(mutate ...func(*builder.BookingBuilder)) *booking.Booking {
	b := builder.NewBookingBuilder()
	for _, m := range mutate {
		b.With(m)
	}
	return b.MustBuild()
}

func assertTransitionError(t *testing.T, err error, from booking.Status) {
	t.Helper()
	require.ErrorIs(t, err, booking.ErrInvalidTransition)
	var te *booking.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, from, te.From)
}

func TestBooking_Confirm(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		b := pending()
		require.NoError(t, b.Confirm(false, now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Nil(t, b.PaymentExpiresAt())
	})

	t.Run("prepaid property needs payment", func(t *testing.T) {
		b := pending()
		assert.ErrorIs(t, b.Confirm(true, now), booking.ErrPaymentRequired)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("prepaid and paid", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.AsPaid() })
		require.NoError(t, b.Confirm(true, now))
	})

	t.Run("not from cancelled", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.WithStatus(booking.StatusCancelled) })
		assertTransitionError(t, b.Confirm(false, now), booking.StatusCancelled)
	})
}

func TestBooking_Cancel(t *testing.T) {
	t.Run("guest cancels unpaid pending", func(t *testing.T) {
		b := pending()
		require.NoError(t, b.Cancel(guest, "change of plans", 48, time.UTC, now))

		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.Cancellation())
		assert.Equal(t, "change of plans", b.Cancellation().Reason)
		assert.Equal(t, guest, b.Cancellation().Actor)
		assert.False(t, b.Cancellation().RefundEligible)
		assert.Equal(t, booking.PaymentUnpaid, b.PaymentStatus())
	})

	t.Run("paid cancellation inside the free window is refundable", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.AsPaid().WithStatus(booking.StatusConfirmed) })
		require.NoError(t, b.Cancel(guest, "sick", 48, time.UTC, now))

		assert.True(t, b.Cancellation().RefundEligible)
		assert.Equal(t, booking.PaymentRefundPending, b.PaymentStatus())
	})

	t.Run("guest is too late for a paid booking", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.AsPaid().WithStatus(booking.StatusConfirmed) })
		late := b.Stay().CheckIn().Time().Add(-47 * time.Hour)

		assert.ErrorIs(t, b.Cancel(guest, "sick", 48, time.UTC, late), booking.ErrCancellationWindowClosed)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("host may cancel after the guest window", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.AsPaid().WithStatus(booking.StatusConfirmed) })
		late := b.Stay().CheckIn().Time().Add(-time.Hour)

		require.NoError(t, b.Cancel(host, "flooding", 48, time.UTC, late))
	})

	t.Run("reason required", func(t *testing.T) {
		assert.ErrorIs(t, pending().Cancel(guest, "  ", 48, time.UTC, now), booking.ErrReasonRequired)
	})

	t.Run("not once checked in", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.WithStatus(booking.StatusCheckedIn) })
		assertTransitionError(t, b.Cancel(host, "x", 48, time.UTC, now), booking.StatusCheckedIn)
	})
}

func TestBooking_Expire(t *testing.T) {
	deadline := now.Add(30 * time.Minute)

	t.Run("before the deadline", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.ExpiringAt(deadline) })
		assert.ErrorIs(t, b.Expire(now), booking.ErrNotExpired)
	})

	t.Run("after the deadline", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.ExpiringAt(deadline) })
		require.NoError(t, b.Expire(deadline.Add(time.Second)))

		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, booking.ReasonPaymentExpired, b.Cancellation().Reason)
		assert.Equal(t, booking.SystemActor, b.Cancellation().Actor)
	})

	t.Run("paid bookings never expire", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.ExpiringAt(deadline).AsPaid() })
		assert.ErrorIs(t, b.Expire(deadline.Add(time.Hour)), booking.ErrNotExpired)
	})

	t.Run("already confirmed", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.ExpiringAt(deadline).WithStatus(booking.StatusConfirmed) })
		assertTransitionError(t, b.Expire(deadline.Add(time.Hour)), booking.StatusConfirmed)
	})
}

func TestBooking_StayLifecycle(t *testing.T) {
	b := pending(func(bb *builder.BookingBuilder) { bb.WithStatus(booking.StatusConfirmed) })
	checkIn := b.Stay().CheckIn()

	assert.ErrorIs(t, b.CheckIn(checkIn.AddDays(-1), now), booking.ErrTooEarly)
	assert.ErrorIs(t, b.CheckIn(b.Stay().CheckOut(), now), booking.ErrStayEnded)
	assertTransitionError(t, b.CheckOut(now), booking.StatusConfirmed)

	require.NoError(t, b.CheckIn(checkIn, now))
	assert.Equal(t, booking.StatusCheckedIn, b.Status())
	require.NoError(t, b.CheckOut(now))
	assert.Equal(t, booking.StatusCheckedOut, b.Status())
	require.NoError(t, b.Complete(now))
	assert.Equal(t, booking.StatusCompleted, b.Status())

	assertTransitionError(t, b.Complete(now), booking.StatusCompleted)
	assertTransitionError(t, b.MarkNoShow(checkIn, now), booking.StatusCompleted)
}

func TestBooking_MarkNoShow(t *testing.T) {
	b := pending(func(bb *builder.BookingBuilder) { bb.WithStatus(booking.StatusConfirmed) })
	checkIn := b.Stay().CheckIn()

	assert.ErrorIs(t, b.MarkNoShow(checkIn.AddDays(-1), now), booking.ErrTooEarly)
	require.NoError(t, b.MarkNoShow(checkIn, now))
	assert.Equal(t, booking.StatusNoShow, b.Status())
	assert.False(t, b.Status().HoldsCalendar())
	assert.False(t, b.Status().Released())
}

func TestBooking_RecordPayment(t *testing.T) {
	t.Run("full amount", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.ExpiringAt(now.Add(time.Minute)) })
		require.NoError(t, b.RecordPayment(decimal.RequireFromString("3400000"), now))

		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
		assert.Equal(t, booking.StatusPending, b.Status())
		require.NotNil(t, b.PaidAt())
		assert.Nil(t, b.PaymentExpiresAt())
	})

	t.Run("underpayment is a failure", func(t *testing.T) {
		b := pending()
		require.NoError(t, b.RecordPayment(decimal.RequireFromString("3399999.99"), now))

		assert.Equal(t, booking.PaymentFailed, b.PaymentStatus())
		require.NotNil(t, b.PaymentFailureReason())
		assert.Equal(t, "amount mismatch", *b.PaymentFailureReason())
	})

	t.Run("second payment", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.AsPaid() })
		assert.ErrorIs(t, b.RecordPayment(decimal.RequireFromString("3400000"), now), booking.ErrAlreadyPaid)
	})

	t.Run("after cancellation", func(t *testing.T) {
		b := pending(func(bb *builder.BookingBuilder) { bb.WithStatus(booking.StatusCancelled) })
		assertTransitionError(t, b.RecordPayment(decimal.RequireFromString("3400000"), now), booking.StatusCancelled)
	})

	t.Run("failure keeps booking pending", func(t *testing.T) {
		b := pending()
		require.NoError(t, b.RecordPaymentFailure("card declined", now))
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentFailed, b.PaymentStatus())
	})
}

func TestBooking_EditsLockedAfterPayment(t *testing.T) {
	b := pending(func(bb *builder.BookingBuilder) { bb.AsPaid() })
	rng, err := stay.NewRange(stay.NewDate(2025, time.April, 1), stay.NewDate(2025, time.April, 3))
	require.NoError(t, err)

	assert.ErrorIs(t, b.Reschedule(rng, b.Price(), now), booking.ErrPaymentLocked)
	assert.ErrorIs(t, b.ApplyCoupon(uuid.New(), b.Price(), now), booking.ErrPaymentLocked)
}

func TestBooking_Coupon(t *testing.T) {
	b := pending()
	couponID := uuid.New()

	assert.ErrorIs(t, b.RemoveCoupon(b.Price(), now), booking.ErrNoCouponApplied)
	require.NoError(t, b.ApplyCoupon(couponID, b.Price(), now))
	assert.Equal(t, &couponID, b.CouponID())
	assert.ErrorIs(t, b.ApplyCoupon(uuid.New(), b.Price(), now), booking.ErrCouponAlreadyApplied)
	require.NoError(t, b.RemoveCoupon(b.Price(), now))
	assert.Nil(t, b.CouponID())
}

func TestCodeGenerator(t *testing.T) {
	gen := booking.NewCodeGenerator("BK")
	code, err := gen.Generate(time.Date(2025, time.March, 7, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Regexp(t, `^BK-250307-[0-9A-Z]{6}$`, code)
}
