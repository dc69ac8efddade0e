package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database holding the persisted quote cache slot
	DatabasePath string
	CacheKey     string

	// Remote quote sources
	ForbesURL    string
	StormURL     string
	UserAgent    string
	FetchTimeout time.Duration

	// Re-fetch interval while serving (0 disables)
	RefreshInterval time.Duration

	// Web page
	HTTPAddr           string
	AutoUpdateInterval time.Duration

	// Quote generation
	DefaultSource string
	MaxAmount     int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:  getEnv("DATABASE_PATH", "data/quotator.db"),
		CacheKey:      getEnv("CACHE_KEY", "quoteDB"),
		ForbesURL:     getEnv("FORBES_URL", ""),
		StormURL:      getEnv("STORM_URL", ""),
		UserAgent:     getEnv("USER_AGENT", "quotator/1.0"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		DefaultSource: getEnv("DEFAULT_SOURCE", "computerscience"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	var err error
	cfg.FetchTimeout, err = time.ParseDuration(getEnv("FETCH_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}

	cfg.RefreshInterval, err = time.ParseDuration(getEnv("REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	cfg.AutoUpdateInterval, err = time.ParseDuration(getEnv("AUTO_UPDATE_INTERVAL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_UPDATE_INTERVAL: %w", err)
	}

	cfg.MaxAmount, err = strconv.Atoi(getEnv("MAX_AMOUNT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_AMOUNT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.CacheKey == "" {
		return fmt.Errorf("CACHE_KEY is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	return nil
}

// ValidateForGenerate checks configuration needed to generate quotes.
func (c *Config) ValidateForGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DefaultSource == "" {
		return fmt.Errorf("DEFAULT_SOURCE is required")
	}
	if c.MaxAmount < 1 {
		return fmt.Errorf("MAX_AMOUNT must be at least 1")
	}
	return nil
}

// ValidateForServe checks configuration needed for the web server.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForGenerate(); err != nil {
		return err
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative")
	}
	if c.AutoUpdateInterval < time.Second {
		return fmt.Errorf("AUTO_UPDATE_INTERVAL must be at least 1s")
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level. Unknown names are Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
