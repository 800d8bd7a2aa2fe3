package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/meteo-app/meteo-dashboard/internal/api/http"
	"github.com/meteo-app/meteo-dashboard/internal/assets"
	"github.com/meteo-app/meteo-dashboard/internal/config"
	"github.com/meteo-app/meteo-dashboard/internal/scheduler"
	"github.com/meteo-app/meteo-dashboard/internal/weather"
	"github.com/meteo-app/meteo-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Gateway to the weather provider; the credential is injected here.
	gateway := providers.NewOpenWeatherGateway(httpClient, cfg.OpenWeatherAPIKey, cfg.Units)

	// Core service orchestrating gateway calls and response caches.
	service := weather.NewService(gateway, cfg.ForecastTimezone, cfg.ForecastDays, cfg.CacheTTL)

	// Scheduler that sweeps caches and pre-warms the popular-cities gallery.
	prewarm := make([]weather.CitySpec, 0, len(assets.PopularCities))
	for _, city := range assets.PopularCities {
		prewarm = append(prewarm, weather.CitySpec{City: city.Name, Country: city.Country})
	}
	sched := scheduler.New(prewarm, cfg.SweepInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "meteo-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "meteo-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
