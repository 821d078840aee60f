package components

import (
	"context"
	"fmt"
	"log/slog"

	"homestay-booking/internal/infra/db"
	"homestay-booking/internal/infra/memstore"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/infra/readstore"
	"homestay-booking/internal/infra/uow"
	"homestay-booking/internal/pkg/config"
	"homestay-booking/internal/usecase/queries"
	"homestay-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
	),
)

type Persistence struct {
	fx.Out

	UnitOfWork   shared.UnitOfWork
	BookingReads queries.BookingReadStore
}

// NewPersistence picks the store implementation named by STORE_DRIVER.
func NewPersistence(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Persistence, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		store := memstore.New()
		return Persistence{
			UnitOfWork:   memstore.NewUnitOfWork(store),
			BookingReads: memstore.NewBookingReadStore(store),
		}, nil

	case config.StoreDriverPostgres:
		pool, err := NewDB(lc, cfg)
		if err != nil {
			return Persistence{}, err
		}
		q := query.New()
		return Persistence{
			UnitOfWork:   uow.NewPostgresUoW(pool, q, logger),
			BookingReads: readstore.NewBookingReadStore(q, pool),
		}, nil

	default:
		return Persistence{}, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
