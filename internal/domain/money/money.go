package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places kept once an amount is finalized.
const Scale = 2

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidPercent = errors.New("percentage must be between 0 and 100")
	hundred           = decimal.NewFromInt(100)
)

// Round finalizes an amount to cents, rounding half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Percent returns amount * pct / 100 without rounding.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

func ValidateNonNegative(d decimal.Decimal) error {
	if d.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func ValidatePercent(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return ErrInvalidPercent
	}
	return nil
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum adds all amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
