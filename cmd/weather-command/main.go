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
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/weather-command/internal/api/http"
	"github.com/i474232898/weather-command/internal/command"
	"github.com/i474232898/weather-command/internal/config"
	"github.com/i474232898/weather-command/internal/render"
	"github.com/i474232898/weather-command/internal/scheduler"
	"github.com/i474232898/weather-command/internal/weather"
	"github.com/i474232898/weather-command/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	adapter, _ := providers.New(cfg.Provider)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.Weather.Timeout,
	}

	client := weather.NewClient(adapter, cfg.Weather, httpClient)
	if err := client.CheckConfig(); err != nil {
		log.Printf("ERROR: %s provider has no WEATHER_API_KEY; commands will ask for configuration", cfg.Provider)
	}

	var renderer render.Renderer
	if cfg.RenderEndpoint != "" {
		renderer = render.NewClient(cfg.RenderEndpoint, httpClient)
	}

	dispatcher := command.NewDispatcher(client, renderer, cfg.Weather.OutputMode)

	// Optional scheduled forecast broadcast.
	notifier := scheduler.NewNotifier(cfg.BroadcastWebhook, httpClient)
	sched := scheduler.New(cfg.BroadcastCities, cfg.BroadcastInterval, dispatcher, notifier)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-command",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
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
			"status":   "ok",
			"service":  "weather-command",
			"provider": client.Provider(),
		})
	})

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	httpapi.RegisterRoutes(app, dispatcher, limiter)

	go func() {
		log.Printf("INFO: weather-command listening on :%s (provider %s, output %s)", cfg.Port, client.Provider(), cfg.Weather.OutputMode)
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
