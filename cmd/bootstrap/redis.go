package bootstrap

import (
	"context"
	"log/slog"

	"homestay-booking/internal/infra/lock"
	"homestay-booking/internal/pkg/config"
	"homestay-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const lockKeyPrefix = "homestay-booking:lock:"

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewLocker,
	),
)

// NewLocker uses Redis when REDIS_ADDR is set and a process-local lock otherwise.
func NewLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.Locker {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, sweeper lease is process-local")
		return lock.NewLocalLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return lock.NewRedisLocker(client, lockKeyPrefix, logger)
}
