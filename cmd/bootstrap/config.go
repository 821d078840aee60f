package bootstrap

import (
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/pkg/config"
	"homestay-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewPolicy,
		NewFeeSchedule,
		NewSweeperConfig,
	),
)

func NewPolicy(cfg config.Config) (commands.Policy, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return commands.Policy{}, err
	}
	return commands.Policy{
		PaymentTimeout: cfg.Booking.PaymentTimeout,
		IdempotencyTTL: cfg.Booking.IdempotencyTTL,
		Location:       loc,
	}, nil
}

func NewFeeSchedule(cfg config.Config) (pricing.FeeSchedule, error) {
	serviceFeePercent, serviceFeeFixed, taxPercent, err := cfg.Pricing.Decimals()
	if err != nil {
		return pricing.FeeSchedule{}, err
	}
	return pricing.FeeSchedule{
		ServiceFeePercent: serviceFeePercent,
		ServiceFeeFixed:   serviceFeeFixed,
		TaxPercent:        taxPercent,
	}, nil
}

func NewSweeperConfig(cfg config.Config) commands.SweeperConfig {
	return commands.SweeperConfig{
		BatchSize: cfg.Sweeper.BatchSize,
		LeaseTTL:  cfg.Sweeper.LockTTL,
	}
}
