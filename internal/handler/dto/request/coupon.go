package request

import (
	"strings"

	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type ValidateCouponRequest struct {
	Code       string        `json:"code" binding:"required,max=50"`
	PropertyID uuid.UUID     `json:"property_id" binding:"required"`
	CheckIn    string        `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut   string        `json:"check_out" binding:"required,datetime=2006-01-02"`
	Guests     GuestsRequest `json:"guests" binding:"required"`
}

func (r ValidateCouponRequest) ToCommand() (commands.ValidateCouponRequest, error) {
	in, err := stay.ParseDate(r.CheckIn)
	if err != nil {
		return commands.ValidateCouponRequest{}, err
	}
	out, err := stay.ParseDate(r.CheckOut)
	if err != nil {
		return commands.ValidateCouponRequest{}, err
	}
	return commands.ValidateCouponRequest{
		Code:       strings.TrimSpace(r.Code),
		PropertyID: r.PropertyID,
		CheckIn:    in,
		CheckOut:   out,
		Guests:     r.Guests.ToDomain(),
	}, nil
}
