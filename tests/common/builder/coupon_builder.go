//go:build unit || e2e

package builder

import (
	"time"

	"homestay-booking/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	ID                   uuid.UUID
	Code                 string
	DiscountType         coupon.DiscountType
	DiscountValue        decimal.Decimal
	MaxDiscountAmount    *decimal.Decimal
	StartDate            time.Time
	EndDate              time.Time
	TotalUsageLimit      *int
	UsagePerUser         *int
	UsedCount            int
	MinimumBookingAmount *decimal.Decimal
	MinimumNights        *int
	Scope                coupon.ScopeKind
	PropertyIDs          []uuid.UUID
	IsActive             bool
	IsFirstBookingOnly   bool
	IsNewUserOnly        bool
}

// NewCouponBuilder defaults to 10% off capped at 300,000, valid through 2030.
func NewCouponBuilder() *CouponBuilder {
	maxDiscount := decimal.RequireFromString("300000")
	return &CouponBuilder{
		ID:                uuid.New(),
		Code:              "SUMMER10",
		DiscountType:      coupon.DiscountPercentage,
		DiscountValue:     decimal.NewFromInt(10),
		MaxDiscountAmount: &maxDiscount,
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC),
		Scope:             coupon.ScopeAll,
		IsActive:          true,
	}
}

func (c *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(c)
	return c
}

func (c *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(coupon.Params{
		ID:                   c.ID,
		Code:                 c.Code,
		DiscountType:         c.DiscountType,
		DiscountValue:        c.DiscountValue,
		MaxDiscountAmount:    c.MaxDiscountAmount,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		TotalUsageLimit:      c.TotalUsageLimit,
		UsagePerUser:         c.UsagePerUser,
		UsedCount:            c.UsedCount,
		MinimumBookingAmount: c.MinimumBookingAmount,
		MinimumNights:        c.MinimumNights,
		Scope:                c.Scope,
		PropertyIDs:          c.PropertyIDs,
		IsActive:             c.IsActive,
		IsPublic:             true,
		IsFirstBookingOnly:   c.IsFirstBookingOnly,
		IsNewUserOnly:        c.IsNewUserOnly,
	})
}

func (c *CouponBuilder) MustBuild() *coupon.Coupon {
	cp, err := c.BuildDomain()
	if err != nil {
		panic(err)
	}
	return cp
}

func (c *CouponBuilder) WithCode(code string) *CouponBuilder {
	c.Code = code
	return c
}

func (c *CouponBuilder) WithTotalUsageLimit(n int) *CouponBuilder {
	c.TotalUsageLimit = &n
	return c
}

func (c *CouponBuilder) WithUsagePerUser(n int) *CouponBuilder {
	c.UsagePerUser = &n
	return c
}

func (c *CouponBuilder) AsFixed(amount string) *CouponBuilder {
	c.DiscountType = coupon.DiscountFixed
	c.DiscountValue = decimal.RequireFromString(amount)
	c.MaxDiscountAmount = nil
	return c
}

func (c *CouponBuilder) ForProperties(ids ...uuid.UUID) *CouponBuilder {
	c.PropertyIDs = ids
	if len(ids) == 1 {
		c.Scope = coupon.ScopeProperty
	} else {
		c.Scope = coupon.ScopePropertyList
	}
	return c
}
