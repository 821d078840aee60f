package response

import (
	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NightlyPriceResponse struct {
	Date   string          `json:"date"`
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source"`
}

type BreakdownResponse struct {
	Nights              []NightlyPriceResponse `json:"nights"`
	NightCount          int                    `json:"night_count"`
	BaseAmount          decimal.Decimal        `json:"base_amount"`
	StayDiscountKind    string                 `json:"stay_discount_kind"`
	StayDiscountPercent decimal.Decimal        `json:"stay_discount_percent"`
	StayDiscount        decimal.Decimal        `json:"stay_discount"`
	CouponDiscount      decimal.Decimal        `json:"coupon_discount"`
	DiscountAmount      decimal.Decimal        `json:"discount_amount"`
	CleaningFee         decimal.Decimal        `json:"cleaning_fee"`
	ServiceFee          decimal.Decimal        `json:"service_fee"`
	TaxAmount           decimal.Decimal        `json:"tax_amount"`
	TotalAmount         decimal.Decimal        `json:"total_amount"`
}

func FromBreakdown(b *pricing.Breakdown) *BreakdownResponse {
	if b == nil {
		return nil
	}
	nights := make([]NightlyPriceResponse, len(b.Nights))
	for i, n := range b.Nights {
		nights[i] = NightlyPriceResponse{Date: n.Date.String(), Price: n.Price, Source: string(n.Source)}
	}
	return &BreakdownResponse{
		Nights:              nights,
		NightCount:          b.NightCount,
		BaseAmount:          b.BaseAmount,
		StayDiscountKind:    string(b.StayDiscountKind),
		StayDiscountPercent: b.StayDiscountPercent,
		StayDiscount:        b.StayDiscount,
		CouponDiscount:      b.CouponDiscount,
		DiscountAmount:      b.DiscountAmount,
		CleaningFee:         b.CleaningFee,
		ServiceFee:          b.ServiceFee,
		TaxAmount:           b.TaxAmount,
		TotalAmount:         b.TotalAmount,
	}
}

type ConflictResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type AvailabilityResponse struct {
	Available bool              `json:"available"`
	Conflict  *ConflictResponse `json:"conflict,omitempty"`
}

func FromRangeAvailability(r *queries.RangeAvailability) *AvailabilityResponse {
	res := &AvailabilityResponse{Available: r.Available}
	if r.Conflict != nil {
		res.Conflict = &ConflictResponse{Date: r.Conflict.Date.String(), Status: string(r.Conflict.Status)}
	}
	return res
}

type DayResponse struct {
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	Price         decimal.Decimal `json:"price"`
	PriceSource   string          `json:"price_source"`
	MinimumNights int             `json:"minimum_nights"`
	BlockReason   *string         `json:"block_reason,omitempty"`
}

type MonthResponse struct {
	PropertyID uuid.UUID     `json:"property_id"`
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Days       []DayResponse `json:"days"`
}

func FromMonthView(m *queries.MonthView) *MonthResponse {
	days := make([]DayResponse, len(m.Days))
	for i, d := range m.Days {
		days[i] = DayResponse{
			Date:          d.Date.String(),
			Status:        string(d.Status),
			Price:         d.Price,
			PriceSource:   d.PriceSource,
			MinimumNights: d.MinimumNights,
			BlockReason:   d.BlockReason,
		}
	}
	return &MonthResponse{PropertyID: m.PropertyID, Year: m.Year, Month: int(m.Month), Days: days}
}

// CalendarDayResponse is a stored calendar override, as returned by host edits.
type CalendarDayResponse struct {
	Date          string           `json:"date"`
	IsAvailable   bool             `json:"is_available"`
	IsBlocked     bool             `json:"is_blocked"`
	BlockReason   *string          `json:"block_reason,omitempty"`
	CustomPrice   *decimal.Decimal `json:"custom_price,omitempty"`
	MinimumNights *int             `json:"minimum_nights,omitempty"`
}

func FromCalendarDays(days []*availability.Day) []CalendarDayResponse {
	res := make([]CalendarDayResponse, len(days))
	for i, d := range days {
		res[i] = CalendarDayResponse{
			Date:          d.Date().String(),
			IsAvailable:   d.IsAvailable(),
			IsBlocked:     d.IsBlocked(),
			BlockReason:   d.BlockReason(),
			CustomPrice:   d.CustomPrice(),
			MinimumNights: d.MinimumNights(),
		}
	}
	return res
}
