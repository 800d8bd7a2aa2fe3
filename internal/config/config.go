package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// OpenWeatherAPIKey is the provider credential. Injected, never embedded.
	OpenWeatherAPIKey string

	// Units is the measurement-unit preference sent to the provider.
	Units string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// CacheTTL controls how long responses are served from cache.
	CacheTTL time.Duration

	// SweepInterval controls how often expired cache entries are evicted and
	// the popular-cities gallery is pre-warmed.
	SweepInterval time.Duration

	// ForecastTimezone is the calendar-day bucketing zone for the daily
	// forecast aggregation. Defaults to UTC so the same payload buckets
	// identically wherever the service runs.
	ForecastTimezone *time.Location

	// ForecastDays caps the number of daily forecast tiles.
	ForecastDays int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.Units = getenvDefault("OPENWEATHER_UNITS", "metric")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	ttlStr := getenvDefault("CACHE_TTL", "10m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	sweepStr := getenvDefault("SWEEP_INTERVAL", "15m")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}
	cfg.SweepInterval = sweep

	tzName := getenvDefault("FORECAST_TIMEZONE", "UTC")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TIMEZONE: %w", err)
	}
	cfg.ForecastTimezone = tz

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 5 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 5")
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
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
