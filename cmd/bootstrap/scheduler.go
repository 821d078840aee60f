package bootstrap

import (
	"context"
	"log/slog"

	"homestay-booking/internal/pkg/config"
	"homestay-booking/internal/pkg/scheduler"
	"homestay-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartSweeper),
)

func StartSweeper(lc fx.Lifecycle, cfg config.Config, sweeper commands.SweeperCommands, logger *slog.Logger) {
	if !cfg.Sweeper.Enabled {
		logger.Info("expired booking sweeper disabled")
		return
	}
	ticker := scheduler.NewTicker("expired-pending-sweeper", cfg.Sweeper.Interval, sweeper.Sweep, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ticker.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			ticker.Stop()
			return nil
		},
	})
}
