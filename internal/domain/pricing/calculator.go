package pricing

import (
	"errors"
	"fmt"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/money"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"

	"github.com/shopspring/decimal"
)

var (
	ErrStayLengthInvalid  = errors.New("stay length invalid")
	ErrGuestCountInvalid  = errors.New("guest count exceeds property capacity")
	ErrNegativeDiscount   = errors.New("discount cannot be negative")
	ErrDiscountExceedsSum = errors.New("discount exceeds booking amount")
)

// FeeSchedule is owned by configuration, not by properties.
type FeeSchedule struct {
	ServiceFeePercent decimal.Decimal
	ServiceFeeFixed   decimal.Decimal
	TaxPercent        decimal.Decimal
}

type Calculator struct {
	fees FeeSchedule
}

func NewCalculator(fees FeeSchedule) *Calculator {
	return &Calculator{fees: fees}
}

type Input struct {
	Property *property.Property
	Range    stay.Range
	Guests   stay.Guests
	// Host overrides keyed by date; missing dates use the property's rates.
	Days map[stay.Date]*availability.Day
}

// Quote validates the stay and prices each night. Nothing is rounded here.
func (c *Calculator) Quote(in Input) (*Quote, error) {
	if err := in.Guests.Validate(); err != nil {
		return nil, err
	}
	if !in.Property.Accepts(in.Guests.Adults, in.Guests.Children, in.Guests.Infants) {
		return nil, ErrGuestCountInvalid
	}
	if err := validateStayLength(in); err != nil {
		return nil, err
	}

	prop := in.Property
	dates := in.Range.Dates()
	nights := make([]NightlyPrice, 0, len(dates))
	base := decimal.Zero
	for _, d := range dates {
		np := NightlyRate(prop, in.Days[d], d)
		nights = append(nights, np)
		base = base.Add(np.Price)
	}

	kind, pct := stayDiscount(prop, len(dates))
	return &Quote{
		fees:                c.fees,
		nights:              nights,
		baseAmount:          base,
		stayDiscountKind:    kind,
		stayDiscountPercent: pct,
		stayDiscount:        money.Percent(base, pct),
		cleaningFee:         prop.CleaningFee(),
	}, nil
}

// Calculate prices a stay without a coupon.
func (c *Calculator) Calculate(in Input) (*Breakdown, error) {
	q, err := c.Quote(in)
	if err != nil {
		return nil, err
	}
	return q.Finalize(decimal.Zero)
}

func validateStayLength(in Input) error {
	nights := in.Range.Nights()
	minNights := in.Property.MinNights()
	if day := in.Days[in.Range.CheckIn()]; day != nil && day.MinimumNights() != nil {
		minNights = *day.MinimumNights()
	}
	if nights < minNights {
		return fmt.Errorf("%w: %d nights is below the minimum of %d", ErrStayLengthInvalid, nights, minNights)
	}
	if maxNights := in.Property.MaxNights(); maxNights != nil && nights > *maxNights {
		return fmt.Errorf("%w: %d nights exceeds the maximum of %d", ErrStayLengthInvalid, nights, *maxNights)
	}
	return nil
}

// NightlyRate resolves the price of one night: custom override, then weekend rate, then base rate.
func NightlyRate(prop *property.Property, day *availability.Day, d stay.Date) NightlyPrice {
	switch {
	case day != nil && day.CustomPrice() != nil:
		return NightlyPrice{Date: d, Price: *day.CustomPrice(), Source: SourceCustom}
	case d.IsWeekend() && prop.WeekendPrice() != nil:
		return NightlyPrice{Date: d, Price: *prop.WeekendPrice(), Source: SourceWeekend}
	default:
		return NightlyPrice{Date: d, Price: prop.BaseNightlyPrice(), Source: SourceBase}
	}
}

const (
	weeklyThreshold  = 7
	monthlyThreshold = 28
)

// Weekly and monthly discounts never stack. The larger percentage applies; monthly wins a tie.
func stayDiscount(prop *property.Property, nights int) (DiscountKind, decimal.Decimal) {
	kind, pct := DiscountNone, decimal.Zero
	if w := prop.WeeklyDiscountPercent(); w != nil && nights >= weeklyThreshold {
		kind, pct = DiscountWeekly, *w
	}
	if m := prop.MonthlyDiscountPercent(); m != nil && nights >= monthlyThreshold && m.GreaterThanOrEqual(pct) {
		kind, pct = DiscountMonthly, *m
	}
	return kind, pct
}
