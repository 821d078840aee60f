package request

import (
	"homestay-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCallbackRequest is what the payment gateway posts after a charge attempt.
type PaymentCallbackRequest struct {
	BookingID      uuid.UUID       `json:"booking_id" binding:"required"`
	Status         string          `json:"status" binding:"required,oneof=succeeded failed"`
	Amount         decimal.Decimal `json:"amount"`
	FailureReason  string          `json:"failure_reason,omitempty" binding:"max=500"`
	TransactionRef string          `json:"transaction_ref,omitempty" binding:"max=100"`
}

func (r PaymentCallbackRequest) ToCommand() commands.PaymentResult {
	return commands.PaymentResult{
		BookingID:      r.BookingID,
		Succeeded:      r.Status == "succeeded",
		Amount:         r.Amount,
		FailureReason:  r.FailureReason,
		TransactionRef: r.TransactionRef,
	}
}
