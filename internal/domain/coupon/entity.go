package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrInvalidValidity     = errors.New("coupon end date must be after start date")
	ErrInvalidUsageLimit   = errors.New("usage limits must be positive")
	ErrUsageLimitReached   = errors.New("coupon usage limit reached")
	ErrPerUserLimitReached = errors.New("coupon per-user usage limit reached")
	ErrAlreadyApplied      = errors.New("coupon already applied to booking")
)

type Coupon struct {
	id                   uuid.UUID
	code                 Code
	discount             Discount
	startDate            time.Time
	endDate              time.Time
	totalUsageLimit      *int
	usagePerUser         *int
	usedCount            int
	minimumBookingAmount *decimal.Decimal
	minimumNights        *int
	scope                ScopeKind
	propertyIDs          []uuid.UUID
	isActive             bool
	isPublic             bool
	isFirstBookingOnly   bool
	isNewUserOnly        bool
	priority             int
}

type Params struct {
	ID                   uuid.UUID
	Code                 string
	DiscountType         DiscountType
	DiscountValue        decimal.Decimal
	MaxDiscountAmount    *decimal.Decimal
	StartDate            time.Time
	EndDate              time.Time
	TotalUsageLimit      *int
	UsagePerUser         *int
	UsedCount            int
	MinimumBookingAmount *decimal.Decimal
	MinimumNights        *int
	Scope                ScopeKind
	PropertyIDs          []uuid.UUID
	IsActive             bool
	IsPublic             bool
	IsFirstBookingOnly   bool
	IsNewUserOnly        bool
	Priority             int
}

func NewCoupon(p Params) (*Coupon, error) {
	code, err := NewCouponCode(p.Code)
	if err != nil {
		return nil, err
	}
	discount, err := NewDiscount(p.DiscountType, p.DiscountValue, p.MaxDiscountAmount)
	if err != nil {
		return nil, err
	}
	if !p.EndDate.After(p.StartDate) {
		return nil, ErrInvalidValidity
	}
	if (p.TotalUsageLimit != nil && *p.TotalUsageLimit < 1) || (p.UsagePerUser != nil && *p.UsagePerUser < 1) {
		return nil, ErrInvalidUsageLimit
	}
	if !p.Scope.IsValid() {
		return nil, ErrInvalidScope
	}
	if p.Scope == ScopeProperty && len(p.PropertyIDs) != 1 {
		return nil, ErrInvalidScope
	}
	if p.Scope == ScopePropertyList && len(p.PropertyIDs) == 0 {
		return nil, ErrInvalidScope
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Coupon{
		id:                   id,
		code:                 code,
		discount:             discount,
		startDate:            p.StartDate,
		endDate:              p.EndDate,
		totalUsageLimit:      p.TotalUsageLimit,
		usagePerUser:         p.UsagePerUser,
		usedCount:            p.UsedCount,
		minimumBookingAmount: p.MinimumBookingAmount,
		minimumNights:        p.MinimumNights,
		scope:                p.Scope,
		propertyIDs:          p.PropertyIDs,
		isActive:             p.IsActive,
		isPublic:             p.IsPublic,
		isFirstBookingOnly:   p.IsFirstBookingOnly,
		isNewUserOnly:        p.IsNewUserOnly,
		priority:             p.Priority,
	}, nil
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	return !t.Before(c.startDate) && !t.After(c.endDate)
}

func (c *Coupon) Covers(propertyID uuid.UUID) bool {
	if c.scope == ScopeAll {
		return true
	}
	for _, id := range c.propertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}

func (c *Coupon) ID() uuid.UUID                          { return c.id }
func (c *Coupon) Code() Code                             { return c.code }
func (c *Coupon) Discount() Discount                     { return c.discount }
func (c *Coupon) StartDate() time.Time                   { return c.startDate }
func (c *Coupon) EndDate() time.Time                     { return c.endDate }
func (c *Coupon) TotalUsageLimit() *int                  { return c.totalUsageLimit }
func (c *Coupon) UsagePerUser() *int                     { return c.usagePerUser }
func (c *Coupon) UsedCount() int                         { return c.usedCount }
func (c *Coupon) MinimumBookingAmount() *decimal.Decimal { return c.minimumBookingAmount }
func (c *Coupon) MinimumNights() *int                    { return c.minimumNights }
func (c *Coupon) Scope() ScopeKind                       { return c.scope }
func (c *Coupon) PropertyIDs() []uuid.UUID               { return c.propertyIDs }
func (c *Coupon) IsActive() bool                         { return c.isActive }
func (c *Coupon) IsPublic() bool                         { return c.isPublic }
func (c *Coupon) IsFirstBookingOnly() bool               { return c.isFirstBookingOnly }
func (c *Coupon) IsNewUserOnly() bool                    { return c.isNewUserOnly }
func (c *Coupon) Priority() int                          { return c.priority }
