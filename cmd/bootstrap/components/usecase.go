package components

import (
	"parkspot/internal/pkg/clock"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewGarageCommands,
		commands.NewVehicleCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewGarageQueries,
		queries.NewVehicleQueries,
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)
