package api

import (
	"net/http"

	reqdto "homestay-booking/internal/handler/dto/request"
	resdto "homestay-booking/internal/handler/dto/response"
	"homestay-booking/internal/handler/middleware"
	"homestay-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponCommands commands.CouponCommands
}

func NewCouponHandler(couponCommands commands.CouponCommands) *CouponHandler {
	return &CouponHandler{couponCommands: couponCommands}
}

// @Summary Validate coupon
// @Description Dry-run a coupon against a stay. An inapplicable coupon is a 200 with applicable=false and a reason.
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCouponRequest true "Coupon and stay"
// @Success 200 {object} resdto.CouponCheckResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /coupons/validate [post]
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	check, err := h.couponCommands.ValidateCoupon(c.Request.Context(), userID, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponCheck(check))
}
