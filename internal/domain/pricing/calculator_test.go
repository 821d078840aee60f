//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noFees = pricing.FeeSchedule{
	ServiceFeePercent: decimal.Zero,
	ServiceFeeFixed:   decimal.Zero,
	TaxPercent:        decimal.Zero,
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustRange(t *testing.T, in, out stay.Date) stay.Range {
	t.Helper()
	rng, err := stay.NewRange(in, out)
	require.NoError(t, err)
	return rng
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestCalculator_FridayToMonday(t *testing.T) {
	prop := builder.NewPropertyBuilder().MustBuild()
	rng := mustRange(t, stay.NewDate(2025, time.March, 7), stay.NewDate(2025, time.March, 10))

	b, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
		Property: prop,
		Range:    rng,
		Guests:   stay.Guests{Adults: 2},
	})
	require.NoError(t, err)

	var sources []pricing.PriceSource
	for _, n := range b.Nights {
		sources = append(sources, n.Source)
	}
	want := []pricing.PriceSource{pricing.SourceBase, pricing.SourceWeekend, pricing.SourceWeekend}
	if diff := cmp.Diff(want, sources); diff != "" {
		t.Errorf("night sources mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, b.NightCount)
	assertMoney(t, "3400000", b.BaseAmount, "base")
	assertMoney(t, "0", b.DiscountAmount, "discount")
	assertMoney(t, "3400000", b.TotalAmount, "total")
	assert.Equal(t, pricing.DiscountNone, b.StayDiscountKind)
}

func TestCalculator_FeesAndTax(t *testing.T) {
	prop := builder.NewPropertyBuilder().WithCleaningFee("200000").MustBuild()
	rng := mustRange(t, stay.NewDate(2025, time.March, 7), stay.NewDate(2025, time.March, 10))
	calc := pricing.NewCalculator(pricing.FeeSchedule{
		ServiceFeePercent: dec("5"),
		ServiceFeeFixed:   dec("0"),
		TaxPercent:        dec("10"),
	})

	b, err := calc.Calculate(pricing.Input{Property: prop, Range: rng, Guests: stay.Guests{Adults: 1}})
	require.NoError(t, err)

	assertMoney(t, "200000", b.CleaningFee, "cleaning")
	assertMoney(t, "170000", b.ServiceFee, "service")
	// (3,400,000 + 200,000 + 170,000) * 10%
	assertMoney(t, "377000", b.TaxAmount, "tax")
	assertMoney(t, "4147000", b.TotalAmount, "total")
	assert.True(t, b.Totals().Balanced())
}

func TestCalculator_CustomPriceWins(t *testing.T) {
	prop := builder.NewPropertyBuilder().MustBuild()
	sat := stay.NewDate(2025, time.March, 8)
	day := availability.NewDay(prop.ID(), sat)
	custom := dec("1500000")
	require.NoError(t, day.SetCustomPrice(&custom))

	rng := mustRange(t, stay.NewDate(2025, time.March, 7), stay.NewDate(2025, time.March, 10))
	b, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
		Property: prop,
		Range:    rng,
		Guests:   stay.Guests{Adults: 2},
		Days:     map[stay.Date]*availability.Day{sat: day},
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.SourceCustom, b.Nights[1].Source)
	assertMoney(t, "3700000", b.BaseAmount, "base")
}

func TestCalculator_StayLengthDiscounts(t *testing.T) {
	mon := stay.NewDate(2025, time.March, 3)

	cases := []struct {
		name     string
		weekly   string
		monthly  string
		nights   int
		wantKind pricing.DiscountKind
		wantPct  string
	}{
		{name: "below weekly threshold", weekly: "10", monthly: "15", nights: 6, wantKind: pricing.DiscountNone, wantPct: "0"},
		{name: "weekly only", weekly: "10", monthly: "15", nights: 7, wantKind: pricing.DiscountWeekly, wantPct: "10"},
		{name: "monthly larger", weekly: "10", monthly: "15", nights: 28, wantKind: pricing.DiscountMonthly, wantPct: "15"},
		{name: "weekly larger at monthly length", weekly: "20", monthly: "15", nights: 30, wantKind: pricing.DiscountWeekly, wantPct: "20"},
		{name: "tie goes to monthly", weekly: "12", monthly: "12", nights: 28, wantKind: pricing.DiscountMonthly, wantPct: "12"},
		{name: "monthly without weekly", monthly: "15", nights: 28, wantKind: pricing.DiscountMonthly, wantPct: "15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prop := builder.NewPropertyBuilder().WithStayDiscounts(tc.weekly, tc.monthly).MustBuild()
			rng := mustRange(t, mon, mon.AddDays(tc.nights))

			b, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{Property: prop, Range: rng, Guests: stay.Guests{Adults: 2}})
			require.NoError(t, err)

			assert.Equal(t, tc.wantKind, b.StayDiscountKind)
			assertMoney(t, tc.wantPct, b.StayDiscountPercent, "percent")
			wantDiscount := b.BaseAmount.Mul(dec(tc.wantPct)).Div(decimal.NewFromInt(100)).Round(2)
			assertMoney(t, wantDiscount.String(), b.StayDiscount, "stay discount")
		})
	}
}

func TestCalculator_Validation(t *testing.T) {
	fri := stay.NewDate(2025, time.March, 7)

	t.Run("below property minimum", func(t *testing.T) {
		prop := builder.NewPropertyBuilder().WithNightBounds(3, nil).MustBuild()
		_, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
			Property: prop, Range: mustRange(t, fri, fri.AddDays(2)), Guests: stay.Guests{Adults: 1},
		})
		assert.ErrorIs(t, err, pricing.ErrStayLengthInvalid)
	})

	t.Run("check-in day override raises minimum", func(t *testing.T) {
		prop := builder.NewPropertyBuilder().MustBuild()
		day := availability.NewDay(prop.ID(), fri)
		three := 3
		require.NoError(t, day.SetMinimumNights(&three))

		_, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
			Property: prop,
			Range:    mustRange(t, fri, fri.AddDays(2)),
			Guests:   stay.Guests{Adults: 1},
			Days:     map[stay.Date]*availability.Day{fri: day},
		})
		assert.ErrorIs(t, err, pricing.ErrStayLengthInvalid)
	})

	t.Run("above maximum", func(t *testing.T) {
		maxNights := 5
		prop := builder.NewPropertyBuilder().WithNightBounds(1, &maxNights).MustBuild()
		_, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
			Property: prop, Range: mustRange(t, fri, fri.AddDays(6)), Guests: stay.Guests{Adults: 1},
		})
		assert.ErrorIs(t, err, pricing.ErrStayLengthInvalid)
	})

	t.Run("too many guests", func(t *testing.T) {
		prop := builder.NewPropertyBuilder().MustBuild()
		_, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
			Property: prop, Range: mustRange(t, fri, fri.AddDays(2)), Guests: stay.Guests{Adults: 3, Children: 2},
		})
		assert.ErrorIs(t, err, pricing.ErrGuestCountInvalid)
	})

	t.Run("infants over their own cap", func(t *testing.T) {
		one := 1
		prop := builder.NewPropertyBuilder().With(func(b *builder.PropertyBuilder) { b.MaxInfants = &one }).MustBuild()
		_, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
			Property: prop, Range: mustRange(t, fri, fri.AddDays(2)), Guests: stay.Guests{Adults: 2, Infants: 2},
		})
		assert.ErrorIs(t, err, pricing.ErrGuestCountInvalid)
	})

	t.Run("no adults", func(t *testing.T) {
		prop := builder.NewPropertyBuilder().MustBuild()
		_, err := pricing.NewCalculator(noFees).Calculate(pricing.Input{
			Property: prop, Range: mustRange(t, fri, fri.AddDays(2)), Guests: stay.Guests{Children: 1},
		})
		assert.ErrorIs(t, err, stay.ErrInvalidGuestCount)
	})
}

func TestQuote_Finalize(t *testing.T) {
	prop := builder.NewPropertyBuilder().MustBuild()
	rng := mustRange(t, stay.NewDate(2025, time.March, 7), stay.NewDate(2025, time.March, 10))
	q, err := pricing.NewCalculator(noFees).Quote(pricing.Input{Property: prop, Range: rng, Guests: stay.Guests{Adults: 2}})
	require.NoError(t, err)

	t.Run("coupon discount is part of the discount amount", func(t *testing.T) {
		b, err := q.Finalize(dec("300000"))
		require.NoError(t, err)
		assertMoney(t, "300000", b.CouponDiscount, "coupon")
		assertMoney(t, "300000", b.DiscountAmount, "discount")
		assertMoney(t, "3100000", b.TotalAmount, "total")
	})

	t.Run("negative coupon", func(t *testing.T) {
		_, err := q.Finalize(dec("-1"))
		assert.ErrorIs(t, err, pricing.ErrNegativeDiscount)
	})

	t.Run("coupon above booking amount", func(t *testing.T) {
		_, err := q.Finalize(dec("3400000.01"))
		assert.ErrorIs(t, err, pricing.ErrDiscountExceedsSum)
	})
}

// Awkward rates and percentages must still produce two-decimal components that add up exactly.
func TestCalculator_TotalIdentity(t *testing.T) {
	weekend := dec("1234.567")
	weekly := dec("7.5")
	monthly := dec("11.25")
	prop, err := property.New(property.Params{
		Name:                   "Awkward Rates",
		BaseNightlyPrice:       dec("999.99"),
		WeekendPrice:           &weekend,
		WeeklyDiscountPercent:  &weekly,
		MonthlyDiscountPercent: &monthly,
		CleaningFee:            dec("33.333"),
		MinNights:              1,
		MaxGuests:              2,
	})
	require.NoError(t, err)

	calc := pricing.NewCalculator(pricing.FeeSchedule{
		ServiceFeePercent: dec("7.3"),
		ServiceFeeFixed:   dec("0.015"),
		TaxPercent:        dec("8.25"),
	})
	start := stay.NewDate(2025, time.January, 1)

	for offset := 0; offset < 14; offset++ {
		for nights := 1; nights <= 35; nights++ {
			in := start.AddDays(offset)
			rng := mustRange(t, in, in.AddDays(nights))
			q, err := calc.Quote(pricing.Input{Property: prop, Range: rng, Guests: stay.Guests{Adults: 1}})
			require.NoError(t, err)

			coupon := q.BookingAmount().Div(decimal.NewFromInt(7)).Round(2)
			b, err := q.Finalize(coupon)
			require.NoError(t, err)

			totals := b.Totals()
			require.Truef(t, totals.Balanced(), "identity broken for %s: %+v", rng, totals)
			for _, amount := range []decimal.Decimal{
				totals.BaseAmount, totals.DiscountAmount, totals.CleaningFee,
				totals.ServiceFee, totals.TaxAmount, totals.TotalAmount,
			} {
				require.Truef(t, amount.Equal(amount.Round(2)), "%s has more than two decimals for %s", amount, rng)
			}
		}
	}
}
