package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkspot/internal/handler/api"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	garageHandler *api.GarageHandler,
	vehicleHandler *api.VehicleHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, garageHandler, vehicleHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	garageHandler *api.GarageHandler,
	vehicleHandler *api.VehicleHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})
		}

		garages := apiGroup.Group("/garages")
		{
			// Browsing and availability are public; mutation requires auth.
			addRoutes(garages, []route{
				{Method: http.MethodGet, Path: "", Handler: garageHandler.ListGarages},
				{Method: http.MethodGet, Path: "/:id", Handler: garageHandler.GetGarage},
				{Method: http.MethodGet, Path: "/:id/schedule", Handler: garageHandler.GetSchedule},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: garageHandler.GetDayAvailability},
				{Method: http.MethodGet, Path: "/:id/availability/check", Handler: garageHandler.CheckWindowAvailability},
			})

			authRequired := garages.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "", Handler: garageHandler.CreateGarage},
				{Method: http.MethodPatch, Path: "/:id", Handler: garageHandler.UpdateGarage},
				{Method: http.MethodDelete, Path: "/:id", Handler: garageHandler.DeactivateGarage},
				{Method: http.MethodPut, Path: "/:id/schedule", Handler: garageHandler.ReplaceSchedule},
			})
		}

		me := apiGroup.Group("/me")
		me.Use(authMiddleware.RequireAuth())
		{
			addRoutes(me, []route{
				{Method: http.MethodGet, Path: "/garages", Handler: garageHandler.ListOwnGarages},
				{Method: http.MethodGet, Path: "/vehicles", Handler: vehicleHandler.ListVehicles},
				{Method: http.MethodGet, Path: "/bookings", Handler: bookingHandler.GetUserBookings},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		vehicles.Use(authMiddleware.RequireAuth())
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodPost, Path: "", Handler: vehicleHandler.CreateVehicle},
				{Method: http.MethodGet, Path: "/:id", Handler: vehicleHandler.GetVehicle},
				{Method: http.MethodPatch, Path: "/:id", Handler: vehicleHandler.UpdateVehicle},
				{Method: http.MethodDelete, Path: "/:id", Handler: vehicleHandler.DeleteVehicle},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodPost, Path: "/quote", Handler: bookingHandler.Quote},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.Confirm},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: bookingHandler.CheckIn},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: bookingHandler.CheckOut},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
