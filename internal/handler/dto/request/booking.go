package request

import (
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/pkg/patch"
	"homestay-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type GuestsRequest struct {
	Adults   int `json:"adults" binding:"required,min=1"`
	Children int `json:"children" binding:"min=0"`
	Infants  int `json:"infants" binding:"min=0"`
}

func (g GuestsRequest) ToDomain() stay.Guests {
	return stay.Guests{Adults: g.Adults, Children: g.Children, Infants: g.Infants}
}

type CreateBookingRequest struct {
	PropertyID      uuid.UUID     `json:"property_id" binding:"required"`
	CheckIn         string        `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut        string        `json:"check_out" binding:"required,datetime=2006-01-02"`
	Guests          GuestsRequest `json:"guests" binding:"required"`
	CouponCode      *string       `json:"coupon_code,omitempty"`
	GuestName       *string       `json:"guest_name,omitempty" binding:"omitempty,max=100"`
	GuestEmail      *string       `json:"guest_email,omitempty" binding:"omitempty,email"`
	GuestPhone      *string       `json:"guest_phone,omitempty" binding:"omitempty,max=20"`
	SpecialRequests string        `json:"special_requests,omitempty" binding:"max=1000"`
}

func (r CreateBookingRequest) GetCouponCode() *string {
	return patch.Trimmed(r.CouponCode)
}

func (r CreateBookingRequest) ToCommand() (commands.CreateBookingRequest, error) {
	in, err := stay.ParseDate(r.CheckIn)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	out, err := stay.ParseDate(r.CheckOut)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	return commands.CreateBookingRequest{
		PropertyID:      r.PropertyID,
		CheckIn:         in,
		CheckOut:        out,
		Guests:          r.Guests.ToDomain(),
		CouponCode:      r.GetCouponCode(),
		GuestName:       patch.Trimmed(r.GuestName),
		GuestEmail:      patch.Trimmed(r.GuestEmail),
		GuestPhone:      patch.Trimmed(r.GuestPhone),
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// UpdateBookingRequest is a partial update; check_in and check_out must be sent together.
type UpdateBookingRequest struct {
	CheckIn         *string        `json:"check_in,omitempty" binding:"omitempty,datetime=2006-01-02,required_with=CheckOut"`
	CheckOut        *string        `json:"check_out,omitempty" binding:"omitempty,datetime=2006-01-02,required_with=CheckIn"`
	Guests          *GuestsRequest `json:"guests,omitempty"`
	GuestName       *string        `json:"guest_name,omitempty" binding:"omitempty,max=100"`
	GuestEmail      *string        `json:"guest_email,omitempty" binding:"omitempty,email"`
	GuestPhone      *string        `json:"guest_phone,omitempty" binding:"omitempty,max=20"`
	SpecialRequests *string        `json:"special_requests,omitempty" binding:"omitempty,max=1000"`
}

func (r UpdateBookingRequest) ToCommand() (commands.UpdateBookingRequest, error) {
	cmd := commands.UpdateBookingRequest{
		GuestName:       patch.Trimmed(r.GuestName),
		GuestEmail:      patch.Trimmed(r.GuestEmail),
		GuestPhone:      patch.Trimmed(r.GuestPhone),
		SpecialRequests: r.SpecialRequests,
	}
	if r.CheckIn != nil && r.CheckOut != nil {
		var err error
		if cmd.CheckIn, err = patch.Map(r.CheckIn, stay.ParseDate); err != nil {
			return commands.UpdateBookingRequest{}, err
		}
		if cmd.CheckOut, err = patch.Map(r.CheckOut, stay.ParseDate); err != nil {
			return commands.UpdateBookingRequest{}, err
		}
	}
	if r.Guests != nil {
		g := r.Guests.ToDomain()
		cmd.Guests = &g
	}
	return cmd, nil
}

type ReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,max=50"`
}
