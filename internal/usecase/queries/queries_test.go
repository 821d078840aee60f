//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra/memstore"
	"homestay-booking/internal/usecase/queries"
	"homestay-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustRange(t *testing.T, in, out stay.Date) stay.Range {
	t.Helper()
	rng, err := stay.NewRange(in, out)
	require.NoError(t, err)
	return rng
}

func seed(t *testing.T) (*memstore.Store, *property.Property) {
	t.Helper()
	store := memstore.New()
	prop := builder.NewPropertyBuilder().MustBuild()
	store.AddProperty(prop)
	return store, prop
}

func TestAvailabilityQueries_IsRangeAvailable(t *testing.T) {
	ctx := context.Background()
	store, prop := seed(t)
	held := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.PropertyID = prop.ID()
	}).MustBuild()
	store.AddBooking(held)

	blocked := availability.NewDay(prop.ID(), stay.NewDate(2025, time.March, 20))
	reason := "renovation"
	require.NoError(t, blocked.Block(&reason))
	store.AddDay(blocked)

	q := queries.NewAvailabilityQueries(memstore.NewUnitOfWork(store))
	code := held.Code()
	otherCode := "BK-000000-NOPE00"

	tests := []struct {
		name       string
		in, out    stay.Date
		exclude    *string
		want       bool
		wantDate   stay.Date
		wantStatus availability.DayStatus
	}{
		{name: "free week", in: stay.NewDate(2025, time.March, 10), out: stay.NewDate(2025, time.March, 14), want: true},
		{name: "checkout day of a hold is free", in: stay.NewDate(2025, time.March, 5), out: stay.NewDate(2025, time.March, 7), want: true},
		{name: "overlaps a hold", in: stay.NewDate(2025, time.March, 5), out: stay.NewDate(2025, time.March, 9),
			wantDate: stay.NewDate(2025, time.March, 7), wantStatus: availability.StatusBooked},
		{name: "own hold excluded", in: stay.NewDate(2025, time.March, 8), out: stay.NewDate(2025, time.March, 11), exclude: &code, want: true},
		{name: "unknown exclude code is ignored", in: stay.NewDate(2025, time.March, 8), out: stay.NewDate(2025, time.March, 11), exclude: &otherCode,
			wantDate: stay.NewDate(2025, time.March, 8), wantStatus: availability.StatusBooked},
		{name: "blocked date", in: stay.NewDate(2025, time.March, 19), out: stay.NewDate(2025, time.March, 22),
			wantDate: stay.NewDate(2025, time.March, 20), wantStatus: availability.StatusBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := q.IsRangeAvailable(ctx, prop.ID(), mustRange(t, tt.in, tt.out), tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Available)
			if !tt.want {
				require.NotNil(t, res.Conflict)
				assert.Equal(t, tt.wantDate.String(), res.Conflict.Date.String())
				assert.Equal(t, tt.wantStatus, res.Conflict.Status)
			}
		})
	}

	t.Run("unknown property", func(t *testing.T) {
		_, err := q.IsRangeAvailable(ctx, uuid.New(), mustRange(t, stay.NewDate(2025, time.March, 1), stay.NewDate(2025, time.March, 2)), nil)
		assert.ErrorIs(t, err, queries.ErrPropertyNotFound)
	})
}

func TestAvailabilityQueries_GetMonth(t *testing.T) {
	ctx := context.Background()
	store, prop := seed(t)
	store.AddBooking(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.PropertyID = prop.ID()
	}).MustBuild())

	special := availability.NewDay(prop.ID(), stay.NewDate(2025, time.March, 14))
	custom := dec("2500000")
	three := 3
	require.NoError(t, special.SetCustomPrice(&custom))
	require.NoError(t, special.SetMinimumNights(&three))
	store.AddDay(special)

	q := queries.NewAvailabilityQueries(memstore.NewUnitOfWork(store))

	view, err := q.GetMonth(ctx, prop.ID(), 2025, time.March)
	require.NoError(t, err)
	require.Len(t, view.Days, 31)

	byDate := map[string]queries.DayView{}
	for _, d := range view.Days {
		byDate[d.Date.String()] = d
	}
	assert.Equal(t, availability.StatusBooked, byDate["2025-03-08"].Status)
	assert.Equal(t, availability.StatusAvailable, byDate["2025-03-10"].Status)
	assert.True(t, byDate["2025-03-08"].Price.Equal(dec("1200000")), "weekend rate")
	assert.True(t, byDate["2025-03-10"].Price.Equal(dec("1000000")), "base rate")
	assert.True(t, byDate["2025-03-14"].Price.Equal(custom))
	assert.Equal(t, string(pricing.SourceCustom), byDate["2025-03-14"].PriceSource)
	assert.Equal(t, 3, byDate["2025-03-14"].MinimumNights)
	assert.Equal(t, 1, byDate["2025-03-10"].MinimumNights)

	_, err = q.GetMonth(ctx, prop.ID(), 2025, time.Month(13))
	assert.ErrorIs(t, err, queries.ErrInvalidMonth)
}

func TestPricingQueries_CalculatePrice(t *testing.T) {
	ctx := context.Background()
	store, prop := seed(t)
	// A held range still prices.
	store.AddBooking(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.PropertyID = prop.ID()
	}).MustBuild())

	calc := pricing.NewCalculator(pricing.FeeSchedule{
		ServiceFeePercent: decimal.Zero,
		ServiceFeeFixed:   decimal.Zero,
		TaxPercent:        decimal.Zero,
	})
	q := queries.NewPricingQueries(memstore.NewUnitOfWork(store), calc)

	got, err := q.CalculatePrice(ctx, prop.ID(), mustRange(t, stay.NewDate(2025, time.March, 7), stay.NewDate(2025, time.March, 10)), stay.Guests{Adults: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, got.NightCount)
	assert.True(t, got.TotalAmount.Equal(dec("3400000")), "got %s", got.TotalAmount)

	_, err = q.CalculatePrice(ctx, uuid.New(), mustRange(t, stay.NewDate(2025, time.March, 7), stay.NewDate(2025, time.March, 10)), stay.Guests{Adults: 2})
	assert.ErrorIs(t, err, queries.ErrPropertyNotFound)
}

func TestBookingQueries_Access(t *testing.T) {
	ctx := context.Background()
	store, prop := seed(t)
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.PropertyID = prop.ID()
	}).MustBuild()
	store.AddBooking(b)

	q := queries.NewBookingQueries(memstore.NewBookingReadStore(store))

	tests := []struct {
		name    string
		actor   booking.Actor
		wantErr error
	}{
		{name: "owner guest", actor: booking.Actor{ID: b.GuestID(), Role: booking.ActorGuest}},
		{name: "property host", actor: booking.Actor{ID: prop.HostID(), Role: booking.ActorHost}},
		{name: "admin", actor: booking.Actor{ID: uuid.New(), Role: booking.ActorAdmin}},
		{name: "other guest", actor: booking.Actor{ID: uuid.New(), Role: booking.ActorGuest}, wantErr: queries.ErrBookingAccess},
		{name: "other host", actor: booking.Actor{ID: uuid.New(), Role: booking.ActorHost}, wantErr: queries.ErrBookingAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := q.GetByCode(ctx, tt.actor, b.Code())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID(), v.ID)
			assert.Equal(t, prop.Name(), v.PropertyName)
		})
	}

	_, err := q.GetByID(ctx, booking.Actor{ID: b.GuestID(), Role: booking.ActorGuest}, uuid.New())
	assert.ErrorIs(t, err, queries.ErrBookingNotFound)
}

func TestBookingQueries_ListByGuest(t *testing.T) {
	ctx := context.Background()
	store, prop := seed(t)
	guestID := uuid.New()
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		in := stay.NewDate(2025, time.April, 1+3*i)
		store.AddBooking(builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
			bb.GuestID = guestID
			bb.PropertyID = prop.ID()
			bb.CheckIn = in
			bb.CheckOut = in.AddDays(2)
			bb.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		}).MustBuild())
	}
	store.AddBooking(builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.PropertyID = prop.ID()
	}).MustBuild())

	q := queries.NewBookingQueries(memstore.NewBookingReadStore(store))
	actor := booking.Actor{ID: guestID, Role: booking.ActorGuest}

	first, next, err := q.ListByGuest(ctx, actor, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, next)
	assert.True(t, first[0].CreatedAt.After(first[1].CreatedAt), "newest first")

	var all []*queries.BookingListItem
	all = append(all, first...)
	for next != nil {
		var page []*queries.BookingListItem
		page, next, err = q.ListByGuest(ctx, actor, next, 2)
		require.NoError(t, err)
		all = append(all, page...)
	}
	assert.Len(t, all, 5)

	seen := map[uuid.UUID]bool{}
	for _, it := range all {
		assert.False(t, seen[it.ID], "duplicate across pages")
		seen[it.ID] = true
	}

	_, _, err = q.ListByGuest(ctx, actor, &queries.Cursor{After: "%%%"}, 2)
	assert.ErrorIs(t, err, queries.ErrInvalidCursor)
}

func TestCursor(t *testing.T) {
	ts := time.Date(2025, time.March, 1, 9, 0, 0, 123456000, time.UTC)
	id := uuid.New()

	gotTS, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(ts, id))
	require.NoError(t, err)
	assert.True(t, ts.Equal(gotTS))
	assert.Equal(t, id, gotID)

	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
	assert.Equal(t, 7, queries.ValidateLimit(7))
}
