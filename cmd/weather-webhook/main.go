package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-webhook/internal/api/http"
	"github.com/i474232898/weather-webhook/internal/config"
	"github.com/i474232898/weather-webhook/internal/logging"
	"github.com/i474232898/weather-webhook/internal/scheduler"
	"github.com/i474232898/weather-webhook/internal/store"
	"github.com/i474232898/weather-webhook/internal/weather"
	"github.com/i474232898/weather-webhook/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provs := buildProviders(cfg, httpClient)
	log.Info("providers configured", "count", len(provs))

	// Optional series cache; a zero TTL keeps every request on fresh provider data.
	memStore := store.NewMemoryStore(cfg.CacheTTL, cfg.CacheMaxEntries)

	service := weather.NewService(memStore, provs, log, cfg.OutlookDays)

	if memStore.Enabled() {
		sched := scheduler.New(cfg.WarmLocations, cfg.RefreshInterval, service, memStore, log)
		if err := sched.Start(); err != nil {
			log.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-webhook",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-webhook",
		})
	})

	httpapi.RegisterRoutes(app, service, log)

	go func() {
		log.Info("weather-webhook started", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}

// buildProviders returns the providers with credentials, in fallback order.
func buildProviders(cfg *config.AppConfig, client *http.Client) []weather.Provider {
	opts := func(key string) providers.Options {
		return providers.Options{
			Client: client,
			APIKey: key,
			RPS:    cfg.ProviderRPS,
			Burst:  cfg.ProviderBurst,
		}
	}

	var provs []weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(opts(cfg.OpenWeatherAPIKey)))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(opts(cfg.WeatherAPIKey)))
	}
	// Open-Meteo is keyless but needs Google geocoding to turn cities into coordinates.
	if cfg.GeocoderAPIKey != "" {
		provs = append(provs, providers.NewOpenMeteoProvider(opts(cfg.GeocoderAPIKey)))
	}
	return provs
}
