// Package config holds the process-wide configuration for the
// intervals.icu MCP server.
//
// Everything is read from the environment exactly once at startup and is
// immutable afterwards. Missing credentials are a configuration error, not
// something surfaced per tool call.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultBaseURL = "https://intervals.icu/api/v1"

// Config is the full configuration surface of the server.
type Config struct {
	// AthleteID is the intervals.icu athlete the server acts for.
	AthleteID string `env:"ATHLETE_ID"`
	// APIKey authenticates every upstream request.
	APIKey string `env:"API_KEY"`
	// BaseURL overrides the production API root, mainly for tests.
	BaseURL string `env:"INTERVALS_API_BASE_URL" envDefault:"https://intervals.icu/api/v1"`
	// Timeout bounds each outbound request.
	Timeout time.Duration `env:"INTERVALS_TIMEOUT" envDefault:"30s"`
	// RequestsPerMinute paces outbound calls so the server itself never
	// trips the upstream rate limit.
	RequestsPerMinute int `env:"INTERVALS_REQUESTS_PER_MINUTE" envDefault:"60"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports the first violation.
func (c Config) Validate() error {
	if c.AthleteID == "" {
		return fmt.Errorf("ATHLETE_ID is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("INTERVALS_API_BASE_URL must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("INTERVALS_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.RequestsPerMinute < 1 {
		return fmt.Errorf("INTERVALS_REQUESTS_PER_MINUTE must be at least 1, got %d", c.RequestsPerMinute)
	}
	return nil
}
