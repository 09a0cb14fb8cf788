// Package routes defines the API routing configuration.
// It sets up the middleware chain and maps each HTTP route to its handler.
package routes

import (
	"errors"
	"time"

	"tradedesk/internal/config"
	"tradedesk/internal/handlers"
	"tradedesk/internal/middleware"
	"tradedesk/internal/services/balance"
	"tradedesk/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies holds everything the routes need. Cache may be nil when
// Redis is disabled.
type Dependencies struct {
	Server   config.ServerConfig
	Fees     handlers.FeeCalculator
	Balances balance.Service
	Store    handlers.Pinger
	Cache    handlers.Pinger
}

// NewApp creates a fiber app whose unhandled errors render as JSON.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "tradedesk",
		ErrorHandler: errorHandler,
	})
}

// SetupMiddleware installs the global middleware chain.
func SetupMiddleware(app *fiber.App, cfg config.ServerConfig) {
	app.Use(recover.New())
	app.Use(middleware.RequestID())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods: "GET,POST,HEAD",
	}))

	// ${path} excludes the query string.
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:request_id}\n",
	}))
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	feeHandler := handlers.NewFeeHandler(deps.Fees)
	balanceHandler := handlers.NewBalanceHandler(deps.Balances)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Cache)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")
	api.Get("/hello", handlers.Hello)
	api.Get("/fee", feeHandler.GetFee)

	balanceRoutes := api.Group("/balance", limiter.New(limiter.Config{
		Max:        rateLimitMax(deps.Server),
		Expiration: rateLimitWindow(deps.Server),
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.TooManyRequests(c, "Too many requests. Please try again later.")
		},
	}))
	balanceRoutes.Post("", balanceHandler.UpdateBalance)
	balanceRoutes.Post("/lookup", balanceHandler.LookupBalance)
}

func rateLimitMax(c config.ServerConfig) int {
	if c.RateLimitMax <= 0 {
		return 30
	}
	return c.RateLimitMax
}

func rateLimitWindow(c config.ServerConfig) time.Duration {
	if c.RateLimitEvery <= 0 {
		return time.Minute
	}
	return c.RateLimitEvery
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return utils.Error(c, fe.Code, httpErrorCode(fe.Code), fe.Message)
	}
	return utils.InternalError(c, "internal server error")
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		return "HTTP_ERROR"
	}
}
