package main

import (
	"time"

	"toytopia/internal/handlers"
	"toytopia/internal/metrics"
	"toytopia/internal/middleware"
	"toytopia/internal/repositories"
	"toytopia/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators wired into the HTTP application.
type Dependencies struct {
	Toys         repositories.ToyRepository
	Publisher    services.EventPublisher
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
	ListLimit    int64
	StoreTimeout time.Duration
}

// NewApp assembles the Fiber application serving the catalog routes.
func NewApp(deps Dependencies) *fiber.App {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	toyRepo := repositories.NewInstrumentedToyRepository(deps.Toys, deps.Metrics)
	toyService := services.NewToyService(toyRepo, deps.Publisher, deps.Logger, services.Options{
		ListLimit: deps.ListLimit,
		Timeout:   deps.StoreTimeout,
		Metrics:   deps.Metrics,
	})

	app := fiber.New(fiber.Config{
		AppName:               "toytopia",
		DisableStartupMessage: true,
		Immutable:             true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(deps.Logger))
	app.Use(middleware.Metrics(deps.Metrics))
	app.Use(cors.New())

	// --- Routes ---
	handlers.NewHealthHandler(toyService).RegisterRoutes(app)
	handlers.NewToyHandler(toyService, deps.Logger).RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))

	return app
}
