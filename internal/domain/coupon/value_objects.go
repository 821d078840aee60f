package coupon

import (
	"errors"
	"regexp"
	"strings"

	"homestay-booking/internal/domain/money"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountAmount  = errors.New("discount amount must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidDiscountType    = errors.New("invalid discount type")
	ErrInvalidScope           = errors.New("invalid coupon scope")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

type Code string

func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Discount struct {
	kind        DiscountType
	value       decimal.Decimal
	maxDiscount *decimal.Decimal
}

func NewFixedDiscount(amount decimal.Decimal) (Discount, error) {
	if !amount.IsPositive() {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: DiscountFixed, value: amount}, nil
}

func NewPercentageDiscount(percent decimal.Decimal, maxDiscount *decimal.Decimal) (Discount, error) {
	if !percent.IsPositive() || money.ValidatePercent(percent) != nil {
		return Discount{}, ErrInvalidDiscountPercent
	}
	if maxDiscount != nil && !maxDiscount.IsPositive() {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: DiscountPercentage, value: percent, maxDiscount: maxDiscount}, nil
}

func NewDiscount(kind DiscountType, value decimal.Decimal, maxDiscount *decimal.Decimal) (Discount, error) {
	switch kind {
	case DiscountPercentage:
		return NewPercentageDiscount(value, maxDiscount)
	case DiscountFixed:
		return NewFixedDiscount(value)
	default:
		return Discount{}, ErrInvalidDiscountType
	}
}

// AmountFor never exceeds bookingAmount.
func (d Discount) AmountFor(bookingAmount decimal.Decimal) decimal.Decimal {
	if !bookingAmount.IsPositive() {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch d.kind {
	case DiscountPercentage:
		amount = money.Percent(bookingAmount, d.value)
		if d.maxDiscount != nil {
			amount = money.Min(amount, *d.maxDiscount)
		}
	default:
		amount = d.value
	}
	return money.Min(money.Round(amount), bookingAmount)
}

func (d Discount) Type() DiscountType            { return d.kind }
func (d Discount) Value() decimal.Decimal        { return d.value }
func (d Discount) MaxDiscount() *decimal.Decimal { return d.maxDiscount }
func (d Discount) IsPercentage() bool            { return d.kind == DiscountPercentage }

type ScopeKind string

const (
	ScopeAll          ScopeKind = "all"
	ScopeProperty     ScopeKind = "property"
	ScopePropertyList ScopeKind = "property_list"
)

func (s ScopeKind) IsValid() bool {
	switch s {
	case ScopeAll, ScopeProperty, ScopePropertyList:
		return true
	default:
		return false
	}
}
