package response

import (
	"homestay-booking/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CouponCheckResponse struct {
	Applicable     bool               `json:"applicable"`
	Reason         string             `json:"reason,omitempty"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Breakdown      *BreakdownResponse `json:"breakdown,omitempty"`
}

func FromCouponCheck(c *commands.CouponCheck) *CouponCheckResponse {
	return &CouponCheckResponse{
		Applicable:     c.Applicable,
		Reason:         string(c.Reason),
		DiscountAmount: c.DiscountAmount,
		Breakdown:      FromBreakdown(c.Breakdown),
	}
}
