package api

import (
	"net/http"

	reqdto "homestay-booking/internal/handler/dto/request"
	resdto "homestay-booking/internal/handler/dto/response"
	"homestay-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{paymentCommands: paymentCommands}
}

// @Summary Payment gateway callback
// @Description Record the result of a charge. The body must be signed with the shared callback secret.
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Payment-Signature header string true "hex HMAC-SHA256 of the body"
// @Param request body reqdto.PaymentCallbackRequest true "Payment result"
// @Success 200 {object} resdto.PaymentReceiptResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/callback [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req reqdto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	receipt, err := h.paymentCommands.OnPaymentResult(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentReceipt(receipt))
}
