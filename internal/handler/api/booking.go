package api

import (
	"context"
	"net/http"
	"strconv"

	"homestay-booking/internal/domain/booking"
	reqdto "homestay-booking/internal/handler/dto/request"
	resdto "homestay-booking/internal/handler/dto/response"
	"homestay-booking/internal/handler/middleware"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyHeader   = "Idempotency-Key"
	idempotentReplayHdr = "Idempotent-Replayed"
)

var (
	errMissingIdentity   = errs.New("authenticated identity missing from context")
	errInvalidIdempotKey = errs.New("invalid idempotency key format")
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	couponCommands  commands.CouponCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	couponCommands commands.CouponCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		couponCommands:  couponCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a property for a stay. Repeating a request with the same Idempotency-Key returns the original booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	idempotencyKey, err := parseIdempotencyKey(c)
	if err != nil {
		badRequest(c, err, "Invalid Idempotency-Key header")
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), userID, cmd, idempotencyKey)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
		c.Header(idempotentReplayHdr, "true")
	}
	c.JSON(status, resdto.FromBooking(result.Booking))
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		unauthenticated(c)
		return
	}

	limit := queries.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, err, "Invalid limit")
			return
		}
		limit = n
	}
	var cursor *queries.Cursor
	if after := c.Query("cursor"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.bookingQueries.ListByGuest(c.Request.Context(), actor, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items, next))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking by code
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/code/{code} [get]
func (h *BookingHandler) GetBookingByCode(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		unauthenticated(c)
		return
	}
	view, err := h.bookingQueries.GetByCode(c.Request.Context(), actor, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking
// @Description Change guest details or dates of a Pending, unpaid booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	b, err := h.bookingCommands.UpdateBooking(c.Request.Context(), actor, id, cmd)
	h.respondBooking(c, b, err)
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.bookingCommands.ConfirmBooking)
}

// @Summary Reject booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest true "Reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	h.transitionWithReason(c, h.bookingCommands.RejectBooking)
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest true "Reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transitionWithReason(c, h.bookingCommands.CancelBooking)
}

// @Summary Check in
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.bookingCommands.CheckIn)
}

// @Summary Check out
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.bookingCommands.CheckOut)
}

// @Summary Complete booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.bookingCommands.Complete)
}

// @Summary Mark no-show
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/no-show [post]
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.bookingCommands.MarkNoShow)
}

// @Summary Apply coupon
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/coupon [post]
func (h *BookingHandler) ApplyCoupon(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	b, err := h.couponCommands.ApplyCoupon(c.Request.Context(), actor, id, req.Code)
	h.respondBooking(c, b, err)
}

// @Summary Remove coupon
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/coupon [delete]
func (h *BookingHandler) RemoveCoupon(c *gin.Context) {
	h.transition(c, h.couponCommands.RemoveCoupon)
}

type transitionFunc func(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Booking, error)

type reasonTransitionFunc func(ctx context.Context, actor booking.Actor, id uuid.UUID, reason string) (*booking.Booking, error)

func (h *BookingHandler) transition(c *gin.Context, fn transitionFunc) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), actor, id)
	h.respondBooking(c, b, err)
}

func (h *BookingHandler) transitionWithReason(c *gin.Context, fn reasonTransitionFunc) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Reason is required")
		return
	}
	b, err := fn(c.Request.Context(), actor, id, req.Reason)
	h.respondBooking(c, b, err)
}

func (h *BookingHandler) respondBooking(c *gin.Context, b *booking.Booking, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

func (h *BookingHandler) actorAndID(c *gin.Context) (booking.Actor, uuid.UUID, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		unauthenticated(c)
		return booking.Actor{}, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid booking ID format")
		return booking.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

func parseIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader(idempotencyHeader)
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Mark(err, errInvalidIdempotKey)
	}
	return &key, nil
}
