package pricing

import (
	"homestay-booking/internal/domain/money"
	"homestay-booking/internal/domain/stay"

	"github.com/shopspring/decimal"
)

type PriceSource string

const (
	SourceBase    PriceSource = "base"
	SourceWeekend PriceSource = "weekend"
	SourceCustom  PriceSource = "custom"
)

type DiscountKind string

const (
	DiscountNone    DiscountKind = "none"
	DiscountWeekly  DiscountKind = "weekly"
	DiscountMonthly DiscountKind = "monthly"
)

type NightlyPrice struct {
	Date   stay.Date
	Price  decimal.Decimal
	Source PriceSource
}

// Quote is an unrounded, coupon-free intermediate result.
type Quote struct {
	fees                FeeSchedule
	nights              []NightlyPrice
	baseAmount          decimal.Decimal
	stayDiscountKind    DiscountKind
	stayDiscountPercent decimal.Decimal
	stayDiscount        decimal.Decimal
	cleaningFee         decimal.Decimal
}

// BookingAmount is the accommodation subtotal a coupon is evaluated against.
func (q *Quote) BookingAmount() decimal.Decimal {
	return q.baseAmount.Sub(q.stayDiscount)
}

func (q *Quote) Nights() int { return len(q.nights) }

// Finalize applies the coupon discount, computes fees and tax, and rounds once.
func (q *Quote) Finalize(couponDiscount decimal.Decimal) (*Breakdown, error) {
	if couponDiscount.IsNegative() {
		return nil, ErrNegativeDiscount
	}
	if couponDiscount.GreaterThan(q.BookingAmount()) {
		return nil, ErrDiscountExceedsSum
	}

	serviceFee := money.Percent(q.baseAmount, q.fees.ServiceFeePercent).Add(q.fees.ServiceFeeFixed)
	tax := money.Percent(money.Sum(q.baseAmount, q.cleaningFee, serviceFee), q.fees.TaxPercent)

	b := &Breakdown{
		Nights:              q.nights,
		NightCount:          len(q.nights),
		BaseAmount:          money.Round(q.baseAmount),
		StayDiscountKind:    q.stayDiscountKind,
		StayDiscountPercent: q.stayDiscountPercent,
		StayDiscount:        money.Round(q.stayDiscount),
		CouponDiscount:      money.Round(couponDiscount),
		CleaningFee:         money.Round(q.cleaningFee),
		ServiceFee:          money.Round(serviceFee),
		TaxAmount:           money.Round(tax),
	}
	b.DiscountAmount = b.StayDiscount.Add(b.CouponDiscount)
	b.TotalAmount = b.BaseAmount.Sub(b.DiscountAmount).Add(b.CleaningFee).Add(b.ServiceFee).Add(b.TaxAmount)
	return b, nil
}

// Breakdown is the finalized price of a stay. Every amount has two decimals and
// TotalAmount == BaseAmount - DiscountAmount + CleaningFee + ServiceFee + TaxAmount.
type Breakdown struct {
	Nights              []NightlyPrice
	NightCount          int
	BaseAmount          decimal.Decimal
	StayDiscountKind    DiscountKind
	StayDiscountPercent decimal.Decimal
	StayDiscount        decimal.Decimal
	CouponDiscount      decimal.Decimal
	DiscountAmount      decimal.Decimal
	CleaningFee         decimal.Decimal
	ServiceFee          decimal.Decimal
	TaxAmount           decimal.Decimal
	TotalAmount         decimal.Decimal
}

// Totals is the persisted subset of a breakdown.
type Totals struct {
	BaseAmount     decimal.Decimal
	DiscountAmount decimal.Decimal
	CouponDiscount decimal.Decimal
	CleaningFee    decimal.Decimal
	ServiceFee     decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

func (b *Breakdown) Totals() Totals {
	return Totals{
		BaseAmount:     b.BaseAmount,
		DiscountAmount: b.DiscountAmount,
		CouponDiscount: b.CouponDiscount,
		CleaningFee:    b.CleaningFee,
		ServiceFee:     b.ServiceFee,
		TaxAmount:      b.TaxAmount,
		TotalAmount:    b.TotalAmount,
	}
}

// Balanced checks the total identity.
func (t Totals) Balanced() bool {
	want := t.BaseAmount.Sub(t.DiscountAmount).Add(t.CleaningFee).Add(t.ServiceFee).Add(t.TaxAmount)
	return want.Equal(t.TotalAmount)
}
