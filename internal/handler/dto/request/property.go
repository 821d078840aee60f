package request

import (
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/pkg/patch"
	"homestay-booking/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

// StayQuery is bound from the query string of price and availability lookups.
type StayQuery struct {
	CheckIn     string  `form:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut    string  `form:"check_out" binding:"required,datetime=2006-01-02"`
	Adults      int     `form:"adults" binding:"omitempty,min=1"`
	Children    int     `form:"children" binding:"min=0"`
	Infants     int     `form:"infants" binding:"min=0"`
	ExcludeCode *string `form:"exclude_code"`
}

func (q StayQuery) Range() (stay.Range, error) {
	in, err := stay.ParseDate(q.CheckIn)
	if err != nil {
		return stay.Range{}, err
	}
	out, err := stay.ParseDate(q.CheckOut)
	if err != nil {
		return stay.Range{}, err
	}
	return stay.NewRange(in, out)
}

// Guests defaults to one adult when the caller only asks about dates.
func (q StayQuery) Guests() stay.Guests {
	adults := q.Adults
	if adults == 0 {
		adults = 1
	}
	return stay.Guests{Adults: adults, Children: q.Children, Infants: q.Infants}
}

type DateRangeRequest struct {
	From   string  `json:"from" binding:"required,datetime=2006-01-02"`
	To     string  `json:"to" binding:"required,datetime=2006-01-02"`
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=500"`
}

// Range treats To as exclusive, like a stay's check-out date.
func (r DateRangeRequest) Range() (stay.Range, error) {
	from, err := stay.ParseDate(r.From)
	if err != nil {
		return stay.Range{}, err
	}
	to, err := stay.ParseDate(r.To)
	if err != nil {
		return stay.Range{}, err
	}
	return stay.NewRange(from, to)
}

type DayUpdateRequest struct {
	Date               string           `json:"date" binding:"required,datetime=2006-01-02"`
	IsAvailable        *bool            `json:"is_available,omitempty"`
	CustomPrice        *decimal.Decimal `json:"custom_price,omitempty"`
	ClearCustomPrice   *bool            `json:"clear_custom_price,omitempty"`
	MinimumNights      *int             `json:"minimum_nights,omitempty" binding:"omitempty,min=1"`
	ClearMinimumNights *bool            `json:"clear_minimum_nights,omitempty"`
}

type UpsertCalendarRequest struct {
	Days []DayUpdateRequest `json:"days" binding:"required,min=1,max=366,dive"`
}

func (r UpsertCalendarRequest) ToCommand() ([]commands.DayUpdate, error) {
	updates := make([]commands.DayUpdate, 0, len(r.Days))
	for _, d := range r.Days {
		date, err := stay.ParseDate(d.Date)
		if err != nil {
			return nil, err
		}
		updates = append(updates, commands.DayUpdate{
			Date:               date,
			IsAvailable:        d.IsAvailable,
			CustomPrice:        d.CustomPrice,
			ClearCustomPrice:   patch.Coalesce(d.ClearCustomPrice, false),
			MinimumNights:      d.MinimumNights,
			ClearMinimumNights: patch.Coalesce(d.ClearMinimumNights, false),
		})
	}
	return updates, nil
}
