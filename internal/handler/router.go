package handler

import (
	"net/http"

	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/handler/api"
	"homestay-booking/internal/handler/middleware"
	"homestay-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Config          config.Config
	Logger          *middleware.Logger
	Gatherer        prometheus.Gatherer
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
	BookingHandler  *api.BookingHandler
	PropertyHandler *api.PropertyHandler
	CouponHandler   *api.CouponHandler
	PaymentHandler  *api.PaymentHandler
	UserHandler     *api.UserHandler
}

func NewRouter(engine *gin.Engine, p RouterParams) {
	setupMiddleware(engine, p)
	setupRoutes(engine, p)
}

func setupMiddleware(engine *gin.Engine, p RouterParams) {
	logger := p.Logger.GetSlogLogger()
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(p.Config.CORS))
	engine.Use(p.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, p RouterParams) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := p.AuthMiddleware
	hostOnly := auth.RequireRole(user.HostRoles...)

	apiGroup := engine.Group("/api")
	{
		properties := apiGroup.Group("/properties/:id")
		addRoutes(properties, []route{
			{Method: http.MethodGet, Path: "/price", Handler: p.PropertyHandler.CalculatePrice},
			{Method: http.MethodGet, Path: "/availability", Handler: p.PropertyHandler.CheckAvailability},
			{Method: http.MethodGet, Path: "/calendar/:year/:month", Handler: p.PropertyHandler.GetMonth},
		})

		calendar := properties.Group("/calendar")
		calendar.Use(auth.RequireAuth(), hostOnly)
		addRoutes(calendar, []route{
			{Method: http.MethodPut, Path: "", Handler: p.PropertyHandler.UpsertCalendar},
			{Method: http.MethodPost, Path: "/block", Handler: p.PropertyHandler.BlockRange},
			{Method: http.MethodPost, Path: "/unblock", Handler: p.PropertyHandler.UnblockRange},
		})

		authed := apiGroup.Group("")
		authed.Use(auth.RequireAuth())
		addRoutes(authed, []route{
			{Method: http.MethodGet, Path: "/me", Handler: p.UserHandler.Me},
			{Method: http.MethodPost, Path: "/coupons/validate", Handler: p.CouponHandler.ValidateCoupon},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(auth.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: p.BookingHandler.CreateBooking, Mw: []gin.HandlerFunc{p.RateLimiter.Middleware()}},
				{Method: http.MethodGet, Path: "", Handler: p.BookingHandler.ListMyBookings},
				{Method: http.MethodGet, Path: "/code/:code", Handler: p.BookingHandler.GetBookingByCode},
				{Method: http.MethodGet, Path: "/:id", Handler: p.BookingHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/:id", Handler: p.BookingHandler.UpdateBooking},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: p.BookingHandler.ConfirmBooking, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: p.BookingHandler.RejectBooking, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.BookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: p.BookingHandler.CheckIn},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: p.BookingHandler.CheckOut},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: p.BookingHandler.Complete, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: p.BookingHandler.MarkNoShow, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:id/coupon", Handler: p.BookingHandler.ApplyCoupon},
				{Method: http.MethodDelete, Path: "/:id/coupon", Handler: p.BookingHandler.RemoveCoupon},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(middleware.RequirePaymentSignature(p.Config.Payment.CallbackSecret))
		addRoutes(payments, []route{
			{Method: http.MethodPost, Path: "/callback", Handler: p.PaymentHandler.Callback},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
