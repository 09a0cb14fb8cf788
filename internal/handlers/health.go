package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store        Pinger
	cache        Pinger
	cacheEnabled bool
	timeout      time.Duration
}

// NewHealthHandler builds a health handler. cache may be nil when caching
// is disabled.
func NewHealthHandler(store, cache Pinger) *HealthHandler {
	return &HealthHandler{
		store:        store,
		cache:        cache,
		cacheEnabled: cache != nil,
		timeout:      2 * time.Second,
	}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK

	database := "connected"
	if err := h.store.Ping(ctx); err != nil {
		database = "unavailable"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	redis := "disabled"
	if h.cacheEnabled {
		redis = "connected"
		// The cache is optional; a failed ping degrades but does not fail health.
		if err := h.cache.Ping(ctx); err != nil {
			redis = "unavailable"
			status = "degraded"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"services": fiber.Map{
			"database": database,
			"redis":    redis,
		},
	})
}
