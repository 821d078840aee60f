//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/handler/api"
	resdto "homestay-booking/internal/handler/dto/response"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/internal/usecase/queries"
	"homestay-booking/tests/common/builder"
	"homestay-booking/tests/common/httptest"
	"homestay-booking/tests/common/testutil"
	commandsmock "homestay-booking/tests/mock/commands"
	queriesmock "homestay-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testRoleHeader = "X-Test-Role"

// fakeAuth stands in for the JWT middleware: any bearer token authenticates as userID.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		role := user.RoleGuest
		if r := c.GetHeader(testRoleHeader); r != "" {
			role = user.Role(r)
		}
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockBookings   *commandsmock.MockBookingCommands
	mockCoupons    *commandsmock.MockCouponCommands
	mockQueries    *queriesmock.MockBookingQueries
	handler        *api.BookingHandler
	userID         uuid.UUID
	bookingBuilder *builder.BookingBuilder
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockCoupons = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockBookings, s.mockCoupons, s.mockQueries)
	s.userID = uuid.New()
	s.bookingBuilder = builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.GuestID = s.userID })

	g := s.router.Group("/bookings", fakeAuth(s.userID))
	g.POST("", s.handler.CreateBooking)
	g.GET("", s.handler.ListMyBookings)
	g.GET("/code/:code", s.handler.GetBookingByCode)
	g.GET("/:id", s.handler.GetBooking)
	g.PATCH("/:id", s.handler.UpdateBooking)
	g.POST("/:id/confirm", s.handler.ConfirmBooking)
	g.POST("/:id/reject", s.handler.RejectBooking)
	g.POST("/:id/cancel", s.handler.CancelBooking)
	g.POST("/:id/check-in", s.handler.CheckIn)
	g.POST("/:id/no-show", s.handler.MarkNoShow)
	g.POST("/:id/coupon", s.handler.ApplyCoupon)
	g.DELETE("/:id/coupon", s.handler.RemoveCoupon)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     testutil.Edit
	expectCode int
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	reqBody := s.bookingBuilder.BuildCreateRequestDTO()
	created := s.bookingBuilder.MustBuild()

	s.Run("success: returns 201 Created with the booking", func() {
		s.mockBookings.EXPECT().
			CreateBooking(gomock.Any(), s.userID, gomock.Any(), (*uuid.UUID)(nil)).
			DoAndReturn(func(_ any, _ uuid.UUID, req commands.CreateBookingRequest, _ *uuid.UUID) (*commands.CreateBookingResult, error) {
				s.Equal(stay.NewDate(2025, time.March, 7), req.CheckIn)
				s.Equal(stay.NewDate(2025, time.March, 10), req.CheckOut)
				s.Equal(2, req.Guests.Adults)
				s.Nil(req.CouponCode)
				return &commands.CreateBookingResult{Booking: created}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal("BK-250301-7KQ2M9", body.Code)
		s.Equal("pending", body.Status)
		s.Equal(3, body.Nights)
		s.True(decimal.RequireFromString("3400000").Equal(body.Price.TotalAmount))
	})

	s.Run("success: replay with the same idempotency key returns 200", func() {
		key := uuid.New()
		s.mockBookings.EXPECT().
			CreateBooking(gomock.Any(), s.userID, gomock.Any(), &key).
			Return(&commands.CreateBookingResult{Booking: created, IsReplayed: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": key.String()})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("success: coupon code is trimmed and passed through", func() {
		body := testutil.Payload(s.T(), reqBody, testutil.Set("coupon_code", "  SPRING25 "))
		s.mockBookings.EXPECT().
			CreateBooking(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, req commands.CreateBookingRequest, _ *uuid.UUID) (*commands.CreateBookingResult, error) {
				s.Require().NotNil(req.CouponCode)
				s.Equal("SPRING25", *req.CouponCode)
				return &commands.CreateBookingResult{Booking: created}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "missing field: property_id", mutate: testutil.Drop("property_id"), expectCode: http.StatusBadRequest},
			{name: "missing field: check_in", mutate: testutil.Drop("check_in"), expectCode: http.StatusBadRequest},
			{name: "malformed check_out", mutate: testutil.Set("check_out", "10/03/2025"), expectCode: http.StatusBadRequest},
			{name: "zero adults", mutate: testutil.Set("guests", map[string]any{"adults": 0}), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Set("guest_email", "not-an-email"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.Payload(s.T(), reqBody, tc.mutate), "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, "VALIDATION_ERROR")
			})
		}
	})

	s.Run("error: 400 Bad Request on malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: usecase errors map to the HTTP contract", func() {
		conflict := &availability.ConflictError{Date: stay.NewDate(2025, time.March, 8), Status: availability.StatusBooked}
		cases := []struct {
			name   string
			err    error
			status int
			code   string
			detail map[string]any
		}{
			{
				name:   "dates unavailable",
				err:    errs.Mark(conflict, commands.ErrDatesUnavailable),
				status: http.StatusConflict,
				code:   "DATES_UNAVAILABLE",
				detail: map[string]any{"date": "2025-03-08", "status": "booked"},
			},
			{
				name:   "coupon invalid",
				err:    &commands.CouponInvalidError{Reason: coupon.ReasonUsageLimitReached},
				status: http.StatusUnprocessableEntity,
				code:   "COUPON_INVALID",
				detail: map[string]any{"reason": "usage_limit_reached"},
			},
			{name: "stay length", err: errs.Mark(errors.New("too short"), commands.ErrStayLengthInvalid), status: http.StatusUnprocessableEntity, code: "STAY_LENGTH_INVALID"},
			{name: "guest count", err: errs.Mark(errors.New("too many"), commands.ErrGuestCountInvalid), status: http.StatusUnprocessableEntity, code: "GUEST_COUNT_INVALID"},
			{name: "property not found", err: commands.ErrPropertyNotFound, status: http.StatusNotFound, code: "NOT_FOUND"},
			{name: "idempotency in progress", err: commands.ErrIdempotencyInProgress, status: http.StatusConflict, code: "IDEMPOTENCY_IN_PROGRESS"},
			{name: "idempotency key reused", err: commands.ErrIdempotencyKeyReused, status: http.StatusUnprocessableEntity, code: "IDEMPOTENCY_KEY_REUSED"},
			{name: "store unavailable", err: errs.Mark(infra.WrapRepoErr("insert", errors.New("conn reset"), infra.KindTransient), commands.ErrStoreUnavailable), status: http.StatusServiceUnavailable, code: "STORE_UNAVAILABLE"},
			{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

				body := httptest.AssertErrorCode(s.T(), rec, tc.status, tc.code)
				for k, v := range tc.detail {
					s.Equal(v, body.Detail[k], "detail %s", k)
				}
			})
		}
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := s.bookingBuilder.BuildView()
	url := "/bookings/" + view.ID.String()

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), booking.Actor{ID: s.userID, Role: booking.ActorGuest}, view.ID).
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Code, body.Code)
		s.Equal("2025-03-07", body.CheckIn)
		s.Nil(body.Cancellation)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(nil, queries.ErrBookingNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 for someone else's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(nil, queries.ErrBookingAccess)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("success: lookup by code", func() {
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), view.Code).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/code/"+view.Code, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

// ================================================================================
// TestListMyBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMyBookings() {
	item := &queries.BookingListItem{
		ID:            uuid.New(),
		Code:          "BK-250301-AAAAAA",
		PropertyName:  "Hoi An Riverside",
		CheckIn:       stay.NewDate(2025, time.March, 7),
		CheckOut:      stay.NewDate(2025, time.March, 10),
		Status:        "pending",
		PaymentStatus: "unpaid",
		TotalAmount:   decimal.RequireFromString("3400000"),
	}

	s.Run("success: first page with next cursor", func() {
		s.mockQueries.EXPECT().
			ListByGuest(gomock.Any(), gomock.Any(), (*queries.Cursor)(nil), 2).
			Return([]*queries.BookingListItem{item}, &queries.Cursor{After: "abc"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=2", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal("Hoi An Riverside", body.Items[0].PropertyName)
		s.Require().NotNil(body.NextCursor)
		s.Equal("abc", *body.NextCursor)
	})

	s.Run("success: cursor is forwarded and default limit applies", func() {
		s.mockQueries.EXPECT().
			ListByGuest(gomock.Any(), gomock.Any(), &queries.Cursor{After: "abc"}, queries.DefaultListLimit).
			Return(nil, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?cursor=abc", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Nil(body.NextCursor)
	})

	s.Run("error: 400 on non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=ten", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})

	s.Run("error: 400 on a corrupt cursor", func() {
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Mark(errors.New("bad base64"), queries.ErrInvalidCursor))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?cursor=%25%25", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *BookingHandlerTestSuite) TestTransitions() {
	b := s.bookingBuilder.MustBuild()
	base := "/bookings/" + b.ID().String()

	s.Run("success: host confirms", func() {
		confirmed := builder.NewBookingBuilder().With(func(x *builder.BookingBuilder) { x.ID = b.ID() }).
			WithStatus(booking.StatusConfirmed).MustBuild()
		s.mockBookings.EXPECT().
			ConfirmBooking(gomock.Any(), booking.Actor{ID: s.userID, Role: booking.ActorHost}, b.ID()).
			Return(confirmed, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, base+"/confirm", nil, "bearer-token",
			map[string]string{testRoleHeader: "host"})

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("error: 409 with current status on an invalid transition", func() {
		err := errs.Mark(&booking.TransitionError{From: booking.StatusCancelled, Action: "confirm"}, commands.ErrInvalidState)
		s.mockBookings.EXPECT().ConfirmBooking(gomock.Any(), gomock.Any(), b.ID()).Return(nil, err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/confirm", nil, "bearer-token")

		body := httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "INVALID_STATE")
		s.Equal("cancelled", body.Detail["currentStatus"])
	})

	s.Run("error: 409 on a lost race", func() {
		s.mockBookings.EXPECT().ConfirmBooking(gomock.Any(), gomock.Any(), b.ID()).
			Return(nil, errs.Mark(booking.ErrStaleState, commands.ErrStaleState))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/confirm", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "STALE_STATE")
	})

	s.Run("error: 409 when the prepaid booking is unpaid", func() {
		s.mockBookings.EXPECT().ConfirmBooking(gomock.Any(), gomock.Any(), b.ID()).
			Return(nil, errs.Mark(booking.ErrPaymentRequired, commands.ErrInvalidState))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/confirm", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "must be paid")
	})

	s.Run("success: guest cancels with a reason", func() {
		s.mockBookings.EXPECT().
			CancelBooking(gomock.Any(), gomock.Any(), b.ID(), "change of plans").
			Return(b, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel",
			map[string]any{"reason": "change of plans"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when cancel has no reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel", map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Reason is required")
	})

	s.Run("error: 409 when the free cancellation window closed", func() {
		s.mockBookings.EXPECT().CancelBooking(gomock.Any(), gomock.Any(), b.ID(), gomock.Any()).
			Return(nil, errs.Mark(booking.ErrCancellationWindowClosed, commands.ErrInvalidState))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel",
			map[string]any{"reason": "late"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Free cancellation window")
	})

	s.Run("success: host rejects", func() {
		s.mockBookings.EXPECT().RejectBooking(gomock.Any(), gomock.Any(), b.ID(), "maintenance").Return(b, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/reject",
			map[string]any{"reason": "maintenance"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 check-in before the date", func() {
		s.mockBookings.EXPECT().CheckIn(gomock.Any(), gomock.Any(), b.ID()).
			Return(nil, errs.Mark(booking.ErrTooEarly, commands.ErrInvalidState))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/check-in", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "before the check-in date")
	})

	s.Run("error: 403 when the actor does not own the booking", func() {
		s.mockBookings.EXPECT().MarkNoShow(gomock.Any(), gomock.Any(), b.ID()).Return(nil, commands.ErrForbidden)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/no-show", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})
}

// ================================================================================
// TestUpdateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateBooking() {
	b := s.bookingBuilder.MustBuild()
	url := "/bookings/" + b.ID().String()

	s.Run("success: new dates are parsed", func() {
		s.mockBookings.EXPECT().
			UpdateBooking(gomock.Any(), gomock.Any(), b.ID(), gomock.Any()).
			DoAndReturn(func(_ any, _ booking.Actor, _ uuid.UUID, req commands.UpdateBookingRequest) (*booking.Booking, error) {
				s.Require().NotNil(req.CheckIn)
				s.Require().NotNil(req.CheckOut)
				s.Equal(stay.NewDate(2025, time.March, 12), *req.CheckIn)
				s.Equal(stay.NewDate(2025, time.March, 14), *req.CheckOut)
				s.Nil(req.Guests)
				return b, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"check_in": "2025-03-12", "check_out": "2025-03-14"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when only one date is sent", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"check_in": "2025-03-12"}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 409 when paid", func() {
		s.mockBookings.EXPECT().UpdateBooking(gomock.Any(), gomock.Any(), b.ID(), gomock.Any()).
			Return(nil, errs.Mark(booking.ErrPaymentLocked, commands.ErrInvalidState))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"guest_name": "Le Van C"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "after payment")
	})
}

// ================================================================================
// TestCoupon
// ================================================================================

func (s *BookingHandlerTestSuite) TestCoupon() {
	b := s.bookingBuilder.MustBuild()
	url := "/bookings/" + b.ID().String() + "/coupon"

	s.Run("success: apply", func() {
		s.mockCoupons.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), b.ID(), "SPRING25").Return(b, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "SPRING25"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 422 with reason on a rejected coupon", func() {
		s.mockCoupons.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), b.ID(), "OLD").
			Return(nil, &commands.CouponInvalidError{Reason: coupon.ReasonExpired})
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "OLD"}, "bearer-token")
		body := httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "COUPON_INVALID")
		s.Equal("expired", body.Detail["reason"])
	})

	s.Run("error: 409 when a coupon is already applied", func() {
		s.mockCoupons.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), b.ID(), "SECOND").
			Return(nil, errs.Mark(booking.ErrCouponAlreadyApplied, commands.ErrInvalidState))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "SECOND"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already applied")
	})

	s.Run("success: remove", func() {
		s.mockCoupons.EXPECT().RemoveCoupon(gomock.Any(), gomock.Any(), b.ID()).Return(b, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
