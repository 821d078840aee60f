package api

import (
	"net/http"
	"strconv"
	"time"

	"homestay-booking/internal/domain/booking"
	reqdto "homestay-booking/internal/handler/dto/request"
	resdto "homestay-booking/internal/handler/dto/response"
	"homestay-booking/internal/handler/middleware"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PropertyHandler struct {
	pricingQueries      queries.PricingQueries
	availabilityQueries queries.AvailabilityQueries
	calendarCommands    commands.CalendarCommands
}

func NewPropertyHandler(
	pricingQueries queries.PricingQueries,
	availabilityQueries queries.AvailabilityQueries,
	calendarCommands commands.CalendarCommands,
) *PropertyHandler {
	return &PropertyHandler{
		pricingQueries:      pricingQueries,
		availabilityQueries: availabilityQueries,
		calendarCommands:    calendarCommands,
	}
}

// @Summary Quote a stay
// @Description Price a stay without a coupon. Availability is not checked.
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "YYYY-MM-DD"
// @Param check_out query string true "YYYY-MM-DD"
// @Param adults query int false "Adults (default 1)"
// @Param children query int false "Children"
// @Param infants query int false "Infants"
// @Success 200 {object} resdto.BreakdownResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /properties/{id}/price [get]
func (h *PropertyHandler) CalculatePrice(c *gin.Context) {
	propertyID, q, ok := bindStayQuery(c)
	if !ok {
		return
	}
	rng, err := q.Range()
	if err != nil {
		badRequest(c, err, "Invalid stay dates")
		return
	}
	breakdown, err := h.pricingQueries.CalculatePrice(c.Request.Context(), propertyID, rng, q.Guests())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBreakdown(breakdown))
}

// @Summary Check availability
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "YYYY-MM-DD"
// @Param check_out query string true "YYYY-MM-DD"
// @Param exclude_code query string false "Ignore holds of this booking"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/availability [get]
func (h *PropertyHandler) CheckAvailability(c *gin.Context) {
	propertyID, q, ok := bindStayQuery(c)
	if !ok {
		return
	}
	rng, err := q.Range()
	if err != nil {
		badRequest(c, err, "Invalid stay dates")
		return
	}
	res, err := h.availabilityQueries.IsRangeAvailable(c.Request.Context(), propertyID, rng, q.ExcludeCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRangeAvailability(res))
}

// @Summary Month calendar
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} resdto.MonthResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/calendar/{year}/{month} [get]
func (h *PropertyHandler) GetMonth(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, err, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		badRequest(c, err, "Invalid month")
		return
	}
	view, err := h.availabilityQueries.GetMonth(c.Request.Context(), propertyID, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMonthView(view))
}

// @Summary Edit calendar days
// @Description Set availability, custom price and minimum nights for individual dates.
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.UpsertCalendarRequest true "Day updates"
// @Success 200 {array} resdto.CalendarDayResponse
// @Failure 403 {object} httperr.Response
// @Router /properties/{id}/calendar [put]
func (h *PropertyHandler) UpsertCalendar(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		unauthenticated(c)
		return
	}
	var req reqdto.UpsertCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	updates, err := req.ToCommand()
	if err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	days, err := h.calendarCommands.UpsertDays(c.Request.Context(), actor, propertyID, updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarDays(days))
}

// @Summary Block dates
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.DateRangeRequest true "Dates, to is exclusive"
// @Success 200 {array} resdto.CalendarDayResponse
// @Failure 409 {object} httperr.Response
// @Router /properties/{id}/calendar/block [post]
func (h *PropertyHandler) BlockRange(c *gin.Context) {
	propertyID, actor, req, ok := bindDateRange(c)
	if !ok {
		return
	}
	rng, err := req.Range()
	if err != nil {
		badRequest(c, err, "Invalid date range")
		return
	}
	days, err := h.calendarCommands.BlockRange(c.Request.Context(), actor, propertyID, rng, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarDays(days))
}

// @Summary Unblock dates
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.DateRangeRequest true "Dates, to is exclusive"
// @Success 200 {array} resdto.CalendarDayResponse
// @Router /properties/{id}/calendar/unblock [post]
func (h *PropertyHandler) UnblockRange(c *gin.Context) {
	propertyID, actor, req, ok := bindDateRange(c)
	if !ok {
		return
	}
	rng, err := req.Range()
	if err != nil {
		badRequest(c, err, "Invalid date range")
		return
	}
	days, err := h.calendarCommands.UnblockRange(c.Request.Context(), actor, propertyID, rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarDays(days))
}

func propertyIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid property ID format")
		return uuid.Nil, false
	}
	return id, true
}

func bindStayQuery(c *gin.Context) (uuid.UUID, reqdto.StayQuery, bool) {
	var q reqdto.StayQuery
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return uuid.Nil, q, false
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err, "Invalid query parameters")
		return uuid.Nil, q, false
	}
	return propertyID, q, true
}

func bindDateRange(c *gin.Context) (uuid.UUID, booking.Actor, reqdto.DateRangeRequest, bool) {
	var req reqdto.DateRangeRequest
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return uuid.Nil, booking.Actor{}, req, false
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		unauthenticated(c)
		return uuid.Nil, booking.Actor{}, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return uuid.Nil, booking.Actor{}, req, false
	}
	return propertyID, actor, req, true
}
