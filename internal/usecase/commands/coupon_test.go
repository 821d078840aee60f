//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func couponReason(t *testing.T, err error) coupon.Reason {
	t.Helper()
	var invalid *commands.CouponInvalidError
	require.ErrorAs(t, err, &invalid)
	return invalid.Reason
}

func TestCoupon_TotalLimitUnderConcurrency(t *testing.T) {
	f := newFixture(t)
	const limit, attempts = 3, 10
	c := builder.NewCouponBuilder().WithTotalUsageLimit(limit).MustBuild()
	f.store.AddCoupon(c)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		failures []error
	)
	for i := 0; i < attempts; i++ {
		g := f.newGuest(t)
		in := checkIn.AddDays(3 * i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book(context.Background(), g, withDates(in, in.AddDays(2)), withCoupon("summer10"))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			ok++
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, ok)
	require.Len(t, failures, attempts-limit)
	for _, err := range failures {
		assert.ErrorIs(t, err, commands.ErrCouponInvalid)
		assert.Equal(t, coupon.ReasonUsageLimitReached, couponReason(t, err))
	}

	stored, err := f.store.CommandReads().CouponByID(context.Background(), c.ID())
	require.NoError(t, err)
	assert.Equal(t, limit, stored.UsedCount())
}

func TestCoupon_Rejections(t *testing.T) {
	otherProperty := uuid.New()
	testCases := []struct {
		name   string
		coupon *builder.CouponBuilder
		setup  func(t *testing.T, f *fixture)
		expect coupon.Reason
	}{
		{
			name:   "inactive",
			coupon: builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) { c.IsActive = false }),
			expect: coupon.ReasonInactive,
		},
		{
			name:   "other property",
			coupon: builder.NewCouponBuilder().ForProperties(otherProperty),
			expect: coupon.ReasonOutOfScope,
		},
		{
			name: "below minimum nights",
			coupon: builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) {
				n := 5
				c.MinimumNights = &n
			}),
			expect: coupon.ReasonBelowMinimumNights,
		},
		{
			name: "below minimum amount",
			coupon: builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) {
				m := dec("5000000")
				c.MinimumBookingAmount = &m
			}),
			expect: coupon.ReasonBelowMinimumAmount,
		},
		{
			name:   "per-user limit",
			coupon: builder.NewCouponBuilder().WithUsagePerUser(1),
			setup: func(t *testing.T, f *fixture) {
				f.mustBook(t, f.guest, withDates(checkOut, checkOut.AddDays(2)), withCoupon("SUMMER10"))
			},
			expect: coupon.ReasonPerUserLimitReached,
		},
		{
			name:   "first booking only",
			coupon: builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) { c.IsFirstBookingOnly = true }),
			setup: func(t *testing.T, f *fixture) {
				f.mustBook(t, f.guest, withDates(checkOut, checkOut.AddDays(2)))
			},
			expect: coupon.ReasonFirstBookingOnly,
		},
		{
			name:   "new users only",
			coupon: builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) { c.IsNewUserOnly = true }),
			setup: func(t *testing.T, f *fixture) {
				b := f.mustBook(t, f.guest, withDates(checkOut, checkOut.AddDays(2)))
				_, err := f.bookings.CancelBooking(context.Background(), guestActor(f.guest), b.ID(), "test")
				require.NoError(t, err)
			},
			expect: coupon.ReasonNewUserOnly,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.AddCoupon(tc.coupon.MustBuild())
			if tc.setup != nil {
				tc.setup(t, f)
			}

			check, err := f.coupons.ValidateCoupon(context.Background(), f.guest.ID(), commands.ValidateCouponRequest{
				Code: "SUMMER10", PropertyID: f.prop.ID(), CheckIn: checkIn, CheckOut: checkOut, Guests: stay.Guests{Adults: 2},
			})
			require.NoError(t, err)
			assert.False(t, check.Applicable)
			assert.Equal(t, tc.expect, check.Reason)
			assert.True(t, check.DiscountAmount.IsZero())

			_, err = f.book(context.Background(), f.guest, withCoupon("SUMMER10"))
			require.ErrorIs(t, err, commands.ErrCouponInvalid)
			assert.Equal(t, tc.expect, couponReason(t, err))
		})
	}
}

func TestValidateCoupon_Preview(t *testing.T) {
	f := newFixture(t)
	f.store.AddCoupon(builder.NewCouponBuilder().MustBuild())
	// previews ignore holds so a guest can price dates someone else took
	f.mustBook(t, f.newGuest(t))
	req := commands.ValidateCouponRequest{
		Code: " summer10 ", PropertyID: f.prop.ID(), CheckIn: checkIn, CheckOut: checkOut, Guests: stay.Guests{Adults: 2},
	}

	check, err := f.coupons.ValidateCoupon(context.Background(), f.guest.ID(), req)
	require.NoError(t, err)
	assert.True(t, check.Applicable)
	assert.True(t, check.DiscountAmount.Equal(dec("300000")))
	assert.True(t, check.Breakdown.TotalAmount.Equal(dec("3100000")))
	assert.Len(t, check.Breakdown.Nights, 3)

	t.Run("unknown code", func(t *testing.T) {
		req := req
		req.Code = "GHOST"
		check, err := f.coupons.ValidateCoupon(context.Background(), f.guest.ID(), req)
		require.NoError(t, err)
		assert.False(t, check.Applicable)
		assert.Equal(t, coupon.ReasonNotFound, check.Reason)
		assert.True(t, check.Breakdown.TotalAmount.Equal(dec("3400000")))
		assert.Equal(t, 1, f.metrics.coupons[string(coupon.ReasonNotFound)])
	})

	t.Run("unknown property", func(t *testing.T) {
		req := req
		req.PropertyID = uuid.New()
		_, err := f.coupons.ValidateCoupon(context.Background(), f.guest.ID(), req)
		assert.ErrorIs(t, err, commands.ErrPropertyNotFound)
	})
}

func TestApplyAndRemoveCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := builder.NewCouponBuilder().WithTotalUsageLimit(1).MustBuild()
	f.store.AddCoupon(c)
	b := f.mustBook(t, f.guest)

	applied, err := f.coupons.ApplyCoupon(ctx, guestActor(f.guest), b.ID(), "SUMMER10")
	require.NoError(t, err)
	require.NotNil(t, applied.CouponID())
	assert.Equal(t, c.ID(), *applied.CouponID())
	assert.True(t, applied.Price().TotalAmount.Equal(dec("3100000")))
	assert.True(t, applied.Price().Balanced())

	_, err = f.coupons.ApplyCoupon(ctx, guestActor(f.guest), b.ID(), "SUMMER10")
	assert.ErrorIs(t, err, commands.ErrInvalidState)

	_, err = f.coupons.RemoveCoupon(ctx, guestActor(f.newGuest(t)), b.ID())
	assert.ErrorIs(t, err, commands.ErrForbidden)

	removed, err := f.coupons.RemoveCoupon(ctx, guestActor(f.guest), b.ID())
	require.NoError(t, err)
	assert.Nil(t, removed.CouponID())
	assert.True(t, removed.Price().TotalAmount.Equal(dec("3400000")))

	stored, err := f.store.CommandReads().CouponByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Zero(t, stored.UsedCount())

	_, err = f.coupons.RemoveCoupon(ctx, guestActor(f.guest), b.ID())
	assert.ErrorIs(t, err, booking.ErrNoCouponApplied)

	assert.Equal(t, []string{
		commands.TopicBookingCreated,
		commands.TopicCouponChanged,
		commands.TopicCouponChanged,
	}, f.topics())
}

func TestApplyCoupon_FirstBookingIgnoresItself(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddCoupon(builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) {
		c.IsFirstBookingOnly = true
	}).MustBuild())
	b := f.mustBook(t, f.guest)

	applied, err := f.coupons.ApplyCoupon(ctx, guestActor(f.guest), b.ID(), "SUMMER10")
	require.NoError(t, err)
	assert.True(t, applied.Price().CouponDiscount.Equal(dec("300000")))
}

func TestApplyCoupon_PaidBookingIsLocked(t *testing.T) {
	f := newFixture(t, func(p *builder.PropertyBuilder) { p.AsPrepaid() })
	ctx := context.Background()
	f.store.AddCoupon(builder.NewCouponBuilder().MustBuild())
	b := f.mustBook(t, f.guest)
	_, err := f.payments.OnPaymentResult(ctx, commands.PaymentResult{
		BookingID: b.ID(), Succeeded: true, Amount: b.Price().TotalAmount,
	})
	require.NoError(t, err)

	_, err = f.coupons.ApplyCoupon(ctx, guestActor(f.guest), b.ID(), "SUMMER10")
	require.ErrorIs(t, err, commands.ErrInvalidState)
	assert.ErrorIs(t, err, booking.ErrPaymentLocked)
}
