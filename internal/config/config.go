package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-command/internal/weather"
	"github.com/i474232898/weather-command/internal/weather/providers"
)

type AppConfig struct {
	// Provider selects the weather adapter (seniverse, amap, qweather, openmeteo).
	Provider string
	Weather  weather.ProviderConfig

	RenderEndpoint string

	// Inbound command throttle.
	RateLimitRPS   float64
	RateLimitBurst int

	// Scheduled forecast broadcast; disabled when BroadcastCities is empty.
	BroadcastCities   []string
	BroadcastInterval time.Duration
	BroadcastWebhook  string

	Port string
}

// Load reads configuration from environment with sensible defaults.
// Credentials have no defaults: a missing key is reported per command.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Provider = strings.ToLower(getenvDefault("WEATHER_PROVIDER", "qweather"))
	if _, ok := providers.New(cfg.Provider); !ok {
		return nil, fmt.Errorf("invalid WEATHER_PROVIDER %q: want one of %s", cfg.Provider, strings.Join(providers.Names(), ", "))
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT %s: must be positive", timeout)
	}

	mode := weather.OutputMode(strings.ToLower(getenvDefault("WEATHER_OUTPUT_MODE", string(weather.OutputText))))
	if mode != weather.OutputText && mode != weather.OutputImage {
		return nil, fmt.Errorf("invalid WEATHER_OUTPUT_MODE %q: want text or image", mode)
	}

	auth := weather.AuthMode(strings.ToLower(getenvDefault("WEATHER_AUTH_MODE", string(weather.AuthQuery))))
	if auth != weather.AuthQuery && auth != weather.AuthHeader {
		return nil, fmt.Errorf("invalid WEATHER_AUTH_MODE %q: want query or header", auth)
	}

	cfg.Weather = weather.ProviderConfig{
		BaseURL:      os.Getenv("WEATHER_API_BASE"),
		APIKey:       os.Getenv("WEATHER_API_KEY"),
		DefaultCity:  os.Getenv("WEATHER_DEFAULT_CITY"),
		OutputMode:   mode,
		AuthMode:     auth,
		AuthHeader:   getenvDefault("WEATHER_AUTH_HEADER", weather.DefaultAuthHeader),
		ForecastDays: getenvInt("WEATHER_FORECAST_DAYS", 3),
		Timeout:      timeout,
	}

	cfg.RenderEndpoint = os.Getenv("RENDER_ENDPOINT")
	if mode == weather.OutputImage && cfg.RenderEndpoint == "" {
		log.Printf("INFO: WEATHER_OUTPUT_MODE=image without RENDER_ENDPOINT; replies will fall back to text")
	}

	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", 5)
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", 10)

	cfg.BroadcastCities = splitList(os.Getenv("BROADCAST_CITIES"))
	interval, err := time.ParseDuration(getenvDefault("BROADCAST_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid BROADCAST_INTERVAL: %w", err)
	}
	cfg.BroadcastInterval = interval
	cfg.BroadcastWebhook = os.Getenv("BROADCAST_WEBHOOK")

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
