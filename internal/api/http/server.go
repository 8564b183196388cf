// Package httpapi exposes the derived views over HTTP for the dashboard
// client, plus health, readiness, and Prometheus metrics endpoints. All
// chart styling and rendering happens client-side; this layer only ships
// chart-ready rows as JSON.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reefwatch/hawksbill-analytics/internal/analytics"
	"github.com/reefwatch/hawksbill-analytics/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// New builds the Fiber app with all routes registered.
func New(service *analytics.Service, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "hawksbill-analytics",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	app.Get("/readyz", handleReady(service))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app, service)

	return app
}

// errorHandler centralizes error responses: invalid input maps to 400,
// explicit fiber errors keep their status, everything else is a 500.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.Is(err, domain.ErrInvalidInput):
			code = fiber.StatusBadRequest
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}
}

func handleReady(ready ReadinessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := ready.CheckReadiness(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	}
}
