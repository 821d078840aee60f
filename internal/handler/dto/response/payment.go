package response

import (
	"homestay-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentReceiptResponse struct {
	BookingID     uuid.UUID `json:"booking_id"`
	Outcome       string    `json:"outcome"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
}

func FromPaymentReceipt(r *commands.PaymentReceipt) *PaymentReceiptResponse {
	return &PaymentReceiptResponse{
		BookingID:     r.Booking.ID(),
		Outcome:       string(r.Outcome),
		Status:        r.Booking.Status().String(),
		PaymentStatus: r.Booking.PaymentStatus().String(),
	}
}
