package components

import (
	"homestay-booking/internal/handler"
	"homestay-booking/internal/handler/api"
	"homestay-booking/internal/handler/middleware"
	"homestay-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPropertyHandler,
		api.NewCouponHandler,
		api.NewPaymentHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
	),
	fx.Invoke(handler.NewRouter),
)
