package components

import (
	"parkspot/internal/infra/db"
	"parkspot/internal/infra/readstore"
	"parkspot/internal/infra/repository"
	"parkspot/internal/infra/uow"
	"parkspot/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork (already returns the shared.UnitOfWork interface)
		uow.NewPostgresUoW,
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewGarageReadStore,
			fx.As(new(queries.GarageReadStore)),
		),
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleReadStore)),
		),
		fx.Annotate(
			repository.NewScheduleRepository,
			fx.As(new(queries.ScheduleReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
