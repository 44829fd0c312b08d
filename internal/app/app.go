package app

import (
	"context"
	"time"

	"bloombuilder/internal/handlers"
	"bloombuilder/internal/middleware"
	"bloombuilder/internal/services"
	"bloombuilder/pkg/logger"
	"bloombuilder/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestIDKey = "requestid"

// Deps are the collaborators the HTTP app is built from.
type Deps struct {
	FlowerService *services.FlowerService
	Logger        *logger.Logger
	// Registry enables /metrics when set.
	Registry *prometheus.Registry
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// New builds the Fiber app with middleware and routes registered.
func New(deps Deps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "bloombuilder",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{ContextKey: requestIDKey}))
	app.Use(middleware.RequestContext(log, requestIDKey))
	if deps.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(cors.New())
	if deps.Registry != nil {
		app.Use(middleware.Metrics(metrics.NewHTTPMetrics(deps.Registry)))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewFlowerHandler(deps.FlowerService).RegisterRoutes(api)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bloombuilder API is running")
	})

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status, store := "healthy", "connected"
		code := fiber.StatusOK
		if err := deps.FlowerService.Ping(ctx); err != nil {
			log.Warn(c.UserContext(), "health check: store unreachable", err)
			status, store = "degraded", "unreachable"
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"store":  store,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
