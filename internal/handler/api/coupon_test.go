//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/handler/api"
	resdto "homestay-booking/internal/handler/dto/response"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/tests/common/httptest"
	"homestay-booking/tests/common/testutil"
	commandsmock "homestay-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCoupons *commandsmock.MockCouponCommands
	userID      uuid.UUID
}

func (s *CouponHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCoupons = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.userID = uuid.New()

	h := api.NewCouponHandler(s.mockCoupons)
	s.router.POST("/coupons/validate", fakeAuth(s.userID), h.ValidateCoupon)
}

func (s *CouponHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCouponHandlerSuite(t *testing.T) {
	suite.Run(t, new(CouponHandlerTestSuite))
}

func (s *CouponHandlerTestSuite) TestValidateCoupon() {
	propertyID := uuid.New()
	reqBody := map[string]any{
		"code":        " spring25 ",
		"property_id": propertyID.String(),
		"check_in":    "2025-03-07",
		"check_out":   "2025-03-10",
		"guests":      map[string]any{"adults": 2},
	}

	s.Run("success: applicable coupon returns the discounted breakdown", func() {
		s.mockCoupons.EXPECT().
			ValidateCoupon(gomock.Any(), s.userID, commands.ValidateCouponRequest{
				Code:       "spring25",
				PropertyID: propertyID,
				CheckIn:    stay.NewDate(2025, time.March, 7),
				CheckOut:   stay.NewDate(2025, time.March, 10),
				Guests:     stay.Guests{Adults: 2},
			}).
			Return(&commands.CouponCheck{
				Applicable:     true,
				DiscountAmount: decimal.RequireFromString("850000"),
				Breakdown:      &pricing.Breakdown{NightCount: 3, TotalAmount: decimal.RequireFromString("2550000")},
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/coupons/validate", reqBody, "bearer-token")

		var body resdto.CouponCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Applicable)
		s.Empty(body.Reason)
		s.True(decimal.RequireFromString("850000").Equal(body.DiscountAmount))
		s.Require().NotNil(body.Breakdown)
		s.Equal(3, body.Breakdown.NightCount)
	})

	s.Run("success: inapplicable coupon is a 200 with the reason", func() {
		s.mockCoupons.EXPECT().ValidateCoupon(gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CouponCheck{Applicable: false, Reason: coupon.ReasonBelowMinimumNights, DiscountAmount: decimal.Zero}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/coupons/validate", reqBody, "bearer-token")

		var body resdto.CouponCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Applicable)
		s.Equal("below_minimum_nights", body.Reason)
	})

	s.Run("error: 400 without a code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/coupons/validate",
			testutil.Payload(s.T(), reqBody, testutil.Drop("code")), "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 404 for an unknown property", func() {
		s.mockCoupons.EXPECT().ValidateCoupon(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, commands.ErrPropertyNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/coupons/validate", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Property not found")
	})
}
