package components

import (
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/pkg/clock"
	"homestay-booking/internal/pkg/config"
	"homestay-booking/internal/usecase"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	pricing.NewCalculator,
	func(cfg config.Config) *booking.CodeGenerator {
		return booking.NewCodeGenerator(cfg.Booking.CodePrefix)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewCouponUseCase,
		commands.NewCalendarUseCase,
		commands.NewPaymentUseCase,
		commands.NewSweeperUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewPricingQueries,
		queries.NewBookingQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
