package bootstrap

import (
	"log/slog"

	"homestay-booking/internal/handler/middleware"
	"homestay-booking/internal/infra/metrics"
	"homestay-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		NewSlogLogger,
	),
)

// NewLogger builds the request logger and reports request timings to the metrics recorder.
func NewLogger(cfg config.Config, recorder *metrics.Recorder) *middleware.Logger {
	return middleware.NewLogger(cfg.Log).WithObserver(recorder)
}

func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}
