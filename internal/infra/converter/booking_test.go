//go:build unit

package converter_test

import (
	"testing"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRow_Cancellation(t *testing.T) {
	now := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	loc := time.UTC

	t.Run("guest cancellation keeps the actor id", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild()
		guest := booking.Actor{ID: b.GuestID(), Role: booking.ActorGuest}
		require.NoError(t, b.Cancel(guest, "plans changed", 48, loc, now))

		row := converter.BookingToRow(b)
		assert.True(t, row.CancelledByID.Valid)
		assert.Equal(t, "guest", row.CancelledByRole.String)
		assert.False(t, row.RefundEligible)

		back, err := converter.BookingFromRow(row)
		require.NoError(t, err)
		require.NotNil(t, back.Cancellation())
		assert.Equal(t, guest, back.Cancellation().Actor)
		assert.Equal(t, "plans changed", back.Cancellation().Reason)
	})

	t.Run("system expiry stores no actor id", func(t *testing.T) {
		deadline := now.Add(-time.Minute)
		b := builder.NewBookingBuilder().ExpiringAt(deadline).MustBuild()
		require.NoError(t, b.Expire(now))

		row := converter.BookingToRow(b)
		assert.False(t, row.CancelledByID.Valid)
		assert.False(t, row.PaymentExpiresAt.Valid)

		back, err := converter.BookingFromRow(row)
		require.NoError(t, err)
		assert.Equal(t, booking.SystemActor, back.Cancellation().Actor)
		assert.Equal(t, uuid.Nil, back.Cancellation().Actor.ID)
	})
}

func TestBookingRow_Money(t *testing.T) {
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.Total = decimal.RequireFromString("1234567.89")
	}).AsPaid().MustBuild()

	back, err := converter.BookingFromRow(converter.BookingToRow(b))
	require.NoError(t, err)

	eq := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(b.Price(), back.Price(), eq); diff != "" {
		t.Errorf("price mismatch (-want +got):\n%s", diff)
	}
}

func TestBookingFromRow_RejectsUnknownPaymentStatus(t *testing.T) {
	row := converter.BookingToRow(builder.NewBookingBuilder().MustBuild())
	row.PaymentStatus = "chargeback"

	_, err := converter.BookingFromRow(row)
	assert.ErrorContains(t, err, "chargeback")
}
