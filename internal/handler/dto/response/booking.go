package response

import (
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceResponse struct {
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	CleaningFee    decimal.Decimal `json:"cleaning_fee"`
	ServiceFee     decimal.Decimal `json:"service_fee"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

type CancellationResponse struct {
	Reason         string    `json:"reason"`
	CancelledBy    string    `json:"cancelled_by"`
	CancelledAt    time.Time `json:"cancelled_at"`
	RefundEligible bool      `json:"refund_eligible"`
}

type BookingResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Code                 string                `json:"code"`
	GuestID              uuid.UUID             `json:"guest_id"`
	PropertyID           uuid.UUID             `json:"property_id"`
	PropertyName         string                `json:"property_name,omitempty"`
	CheckIn              string                `json:"check_in"`
	CheckOut             string                `json:"check_out"`
	Nights               int                   `json:"nights"`
	Adults               int                   `json:"adults"`
	Children             int                   `json:"children"`
	Infants              int                   `json:"infants"`
	Price                PriceResponse         `json:"price"`
	CouponID             *uuid.UUID            `json:"coupon_id,omitempty"`
	CouponCode           *string               `json:"coupon_code,omitempty"`
	Status               string                `json:"status"`
	PaymentStatus        string                `json:"payment_status"`
	PaymentExpiresAt     *time.Time            `json:"payment_expires_at,omitempty"`
	PaidAt               *time.Time            `json:"paid_at,omitempty"`
	PaidAmount           *decimal.Decimal      `json:"paid_amount,omitempty"`
	PaymentFailureReason *string               `json:"payment_failure_reason,omitempty"`
	Cancellation         *CancellationResponse `json:"cancellation,omitempty"`
	GuestName            string                `json:"guest_name"`
	GuestEmail           string                `json:"guest_email"`
	GuestPhone           string                `json:"guest_phone,omitempty"`
	SpecialRequests      string                `json:"special_requests,omitempty"`
	Version              int                   `json:"version"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{
		ID:           v.ID,
		Code:         v.Code,
		GuestID:      v.GuestID,
		PropertyID:   v.PropertyID,
		PropertyName: v.PropertyName,
		CheckIn:      v.CheckIn.String(),
		CheckOut:     v.CheckOut.String(),
		Nights:       v.Nights(),
		Adults:       v.Adults,
		Children:     v.Children,
		Infants:      v.Infants,
		Price: PriceResponse{
			BaseAmount:     v.BaseAmount,
			DiscountAmount: v.DiscountAmount,
			CouponDiscount: v.CouponDiscount,
			CleaningFee:    v.CleaningFee,
			ServiceFee:     v.ServiceFee,
			TaxAmount:      v.TaxAmount,
			TotalAmount:    v.TotalAmount,
		},
		CouponID:             v.CouponID,
		CouponCode:           v.CouponCode,
		Status:               v.Status,
		PaymentStatus:        v.PaymentStatus,
		PaymentExpiresAt:     v.PaymentExpiresAt,
		PaidAt:               v.PaidAt,
		PaidAmount:           v.PaidAmount,
		PaymentFailureReason: v.PaymentFailureReason,
		GuestName:            v.GuestName,
		GuestEmail:           v.GuestEmail,
		GuestPhone:           v.GuestPhone,
		SpecialRequests:      v.SpecialRequests,
		Version:              v.Version,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
	if v.CancellationReason != nil {
		c := &CancellationResponse{Reason: *v.CancellationReason, RefundEligible: v.RefundEligible}
		if v.CancelledBy != nil {
			c.CancelledBy = *v.CancelledBy
		}
		if v.CancelledAt != nil {
			c.CancelledAt = *v.CancelledAt
		}
		res.Cancellation = c
	}
	return res
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return FromBookingView(queries.BookingViewOf(b))
}

type BookingListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	PropertyID    uuid.UUID       `json:"property_id"`
	PropertyName  string          `json:"property_name"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

type BookingListResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	NextCursor *string                    `json:"next_cursor,omitempty"`
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	res := &BookingListResponse{Items: make([]*BookingListItemResponse, len(items))}
	for i, it := range items {
		res.Items[i] = &BookingListItemResponse{
			ID:            it.ID,
			Code:          it.Code,
			PropertyID:    it.PropertyID,
			PropertyName:  it.PropertyName,
			CheckIn:       it.CheckIn.String(),
			CheckOut:      it.CheckOut.String(),
			Status:        it.Status,
			PaymentStatus: it.PaymentStatus,
			TotalAmount:   it.TotalAmount,
			CreatedAt:     it.CreatedAt,
		}
	}
	if next != nil && next.After != "" {
		after := next.After
		res.NextCursor = &after
	}
	return res
}
