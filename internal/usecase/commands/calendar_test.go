//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/pkg/ptr"
	"homestay-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, in, out stay.Date) stay.Range {
	t.Helper()
	rng, err := stay.NewRange(in, out)
	require.NoError(t, err)
	return rng
}

func TestBlockAndUnblockRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := mustRange(t, checkIn, checkOut)
	reason := "  family visit "

	days, err := f.calendar.BlockRange(ctx, f.hostActor(), f.prop.ID(), rng, &reason)
	require.NoError(t, err)
	require.Len(t, days, 3)
	for _, d := range days {
		assert.True(t, d.IsBlocked())
		require.NotNil(t, d.BlockReason())
		assert.Equal(t, "family visit", *d.BlockReason())
		assert.Equal(t, now, d.UpdatedAt())
	}

	_, err = f.book(ctx, f.guest)
	var conflict *availability.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, availability.StatusBlocked, conflict.Status)

	days, err = f.calendar.UnblockRange(ctx, f.hostActor(), f.prop.ID(), rng)
	require.NoError(t, err)
	for _, d := range days {
		assert.False(t, d.IsBlocked())
		assert.Nil(t, d.BlockReason())
	}
	_, err = f.book(ctx, f.guest)
	assert.NoError(t, err)
}

func TestBlockRange_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		actor     func(f *fixture) booking.Actor
		property  func(f *fixture) uuid.UUID
		reason    *string
		booked    bool
		expectErr error
	}{
		{
			name:      "guest",
			actor:     func(f *fixture) booking.Actor { return guestActor(f.guest) },
			expectErr: commands.ErrForbidden,
		},
		{
			name: "host of another property",
			actor: func(*fixture) booking.Actor {
				return booking.Actor{ID: uuid.New(), Role: booking.ActorHost}
			},
			expectErr: commands.ErrForbidden,
		},
		{
			name:      "unknown property",
			property:  func(*fixture) uuid.UUID { return uuid.New() },
			expectErr: commands.ErrPropertyNotFound,
		},
		{
			name:      "reason too long",
			reason:    ptr.To(strings.Repeat("x", availability.MaxBlockReasonLength+1)),
			expectErr: commands.ErrValidation,
		},
		{
			name:      "held by a booking",
			booked:    true,
			expectErr: commands.ErrDatesUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			actor := f.hostActor()
			if tc.actor != nil {
				actor = tc.actor(f)
			}
			propertyID := f.prop.ID()
			if tc.property != nil {
				propertyID = tc.property(f)
			}
			if tc.booked {
				f.mustBook(t, f.guest, withDates(checkIn.AddDays(1), checkIn.AddDays(2)))
			}

			_, err := f.calendar.BlockRange(context.Background(), actor, propertyID, mustRange(t, checkIn, checkOut), tc.reason)
			assert.ErrorIs(t, err, tc.expectErr)
		})
	}
}

func TestBlockRange_AdminMayBlockAnyProperty(t *testing.T) {
	f := newFixture(t)
	admin := booking.Actor{ID: uuid.New(), Role: booking.ActorAdmin}

	days, err := f.calendar.BlockRange(context.Background(), admin, f.prop.ID(), mustRange(t, checkIn, checkOut), nil)
	require.NoError(t, err)
	assert.Len(t, days, 3)
}

func TestUpsertDays(t *testing.T) {
	ctx := context.Background()

	t.Run("custom price and minimum nights feed pricing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.calendar.UpsertDays(ctx, f.hostActor(), f.prop.ID(), []commands.DayUpdate{
			{Date: checkIn, CustomPrice: ptr.To(dec("1500000"))},
			{Date: checkIn.AddDays(1), MinimumNights: ptr.To(2)},
		})
		require.NoError(t, err)

		b := f.mustBook(t, f.guest)
		// 1,500,000 custom + 1,200,000 Saturday + 1,000,000 Sunday
		assert.True(t, b.Price().BaseAmount.Equal(dec("3700000")), b.Price().BaseAmount.String())

		// the check-in day's minimum decides the stay length
		_, err = f.book(ctx, f.newGuest(t), withDates(checkIn.AddDays(1), checkIn.AddDays(2)))
		assert.ErrorIs(t, err, commands.ErrStayLengthInvalid)
	})

	t.Run("clearing overrides restores defaults", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.calendar.UpsertDays(ctx, f.hostActor(), f.prop.ID(), []commands.DayUpdate{
			{Date: checkIn, CustomPrice: ptr.To(dec("1500000")), MinimumNights: ptr.To(3)},
		})
		require.NoError(t, err)

		days, err := f.calendar.UpsertDays(ctx, f.hostActor(), f.prop.ID(), []commands.DayUpdate{
			{Date: checkIn, ClearCustomPrice: true, ClearMinimumNights: true},
		})
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Nil(t, days[0].CustomPrice())
		assert.Nil(t, days[0].MinimumNights())
	})

	t.Run("unavailable day blocks bookings", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.calendar.UpsertDays(ctx, f.hostActor(), f.prop.ID(), []commands.DayUpdate{
			{Date: checkIn.AddDays(2), IsAvailable: ptr.To(false)},
		})
		require.NoError(t, err)

		_, err = f.book(ctx, f.guest)
		var conflict *availability.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, availability.StatusUnavailable, conflict.Status)
	})

	t.Run("cannot close a held date", func(t *testing.T) {
		f := newFixture(t)
		f.mustBook(t, f.guest)

		_, err := f.calendar.UpsertDays(ctx, f.hostActor(), f.prop.ID(), []commands.DayUpdate{
			{Date: checkIn, IsAvailable: ptr.To(false)},
		})
		assert.ErrorIs(t, err, commands.ErrDatesUnavailable)

		// price changes on a held date are fine; the booking keeps its price
		_, err = f.calendar.UpsertDays(ctx, f.hostActor(), f.prop.ID(), []commands.DayUpdate{
			{Date: checkIn, CustomPrice: ptr.To(dec("900000"))},
		})
		assert.NoError(t, err)
	})

	testCases := []struct {
		name    string
		updates []commands.DayUpdate
	}{
		{name: "empty", updates: nil},
		{name: "duplicate date", updates: []commands.DayUpdate{{Date: checkIn}, {Date: checkIn}}},
		{name: "non-positive price", updates: []commands.DayUpdate{{Date: checkIn, CustomPrice: ptr.To(dec("0"))}}},
		{name: "zero minimum nights", updates: []commands.DayUpdate{{Date: checkIn, MinimumNights: ptr.To(0)}}},
	}
	for _, tc := range testCases {
		t.Run("invalid: "+tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.calendar.UpsertDays(ctx, f.hostActor(), f.prop.ID(), tc.updates)
			assert.ErrorIs(t, err, commands.ErrValidation)
		})
	}
}
