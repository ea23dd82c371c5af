package components

import (
	"parkspot/internal/handler"
	"parkspot/internal/handler/api"
	"parkspot/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewGarageHandler,
		api.NewVehicleHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
