package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DATABASE_PATH", "CACHE_KEY", "FORBES_URL", "STORM_URL", "USER_AGENT",
	"FETCH_TIMEOUT", "REFRESH_INTERVAL", "HTTP_ADDR", "AUTO_UPDATE_INTERVAL",
	"DEFAULT_SOURCE", "MAX_AMOUNT", "LOG_LEVEL",
}

// clearEnv blanks every key Load reads; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/quotator.db", cfg.DatabasePath)
		assert.Equal(t, "quoteDB", cfg.CacheKey)
		assert.Empty(t, cfg.ForbesURL)
		assert.Equal(t, "quotator/1.0", cfg.UserAgent)
		assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
		assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 10*time.Second, cfg.AutoUpdateInterval)
		assert.Equal(t, "computerscience", cfg.DefaultSource)
		assert.Equal(t, 5, cfg.MaxAmount)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_PATH", "/custom/path.db")
		t.Setenv("STORM_URL", "http://localhost:9999/quotes.json")
		t.Setenv("REFRESH_INTERVAL", "1h")
		t.Setenv("MAX_AMOUNT", "3")
		t.Setenv("LOG_LEVEL", "DEBUG")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.Equal(t, "http://localhost:9999/quotes.json", cfg.StormURL)
		assert.Equal(t, time.Hour, cfg.RefreshInterval)
		assert.Equal(t, 3, cfg.MaxAmount)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("invalid duration", func(t *testing.T) {
		for _, key := range []string{"FETCH_TIMEOUT", "REFRESH_INTERVAL", "AUTO_UPDATE_INTERVAL"} {
			clearEnv(t)
			t.Setenv(key, "invalid")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		}
	})

	t.Run("invalid integer", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAX_AMOUNT", "notanumber")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_AMOUNT")
	})
}

func validConfig() *Config {
	return &Config{
		DatabasePath:       "test.db",
		CacheKey:           "quoteDB",
		FetchTimeout:       time.Second,
		HTTPAddr:           ":0",
		AutoUpdateInterval: 10 * time.Second,
		DefaultSource:      "forbes",
		MaxAmount:          5,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabasePath = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_PATH")
	})

	t.Run("missing cache key", func(t *testing.T) {
		cfg := validConfig()
		cfg.CacheKey = ""
		assert.ErrorContains(t, cfg.Validate(), "CACHE_KEY")
	})

	t.Run("non-positive fetch timeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.FetchTimeout = 0
		assert.ErrorContains(t, cfg.Validate(), "FETCH_TIMEOUT")
	})
}

func TestConfig_ValidateForGenerate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().ValidateForGenerate())
	})

	t.Run("missing default source", func(t *testing.T) {
		cfg := validConfig()
		cfg.DefaultSource = ""
		assert.ErrorContains(t, cfg.ValidateForGenerate(), "DEFAULT_SOURCE")
	})

	t.Run("max amount below one", func(t *testing.T) {
		cfg := validConfig()
		cfg.MaxAmount = 0
		assert.ErrorContains(t, cfg.ValidateForGenerate(), "MAX_AMOUNT")
	})
}

func TestConfig_ValidateForServe(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().ValidateForServe())
	})

	t.Run("missing address", func(t *testing.T) {
		cfg := validConfig()
		cfg.HTTPAddr = ""
		assert.ErrorContains(t, cfg.ValidateForServe(), "HTTP_ADDR")
	})

	t.Run("negative refresh", func(t *testing.T) {
		cfg := validConfig()
		cfg.RefreshInterval = -time.Second
		assert.ErrorContains(t, cfg.ValidateForServe(), "REFRESH_INTERVAL")
	})

	t.Run("auto update too fast", func(t *testing.T) {
		cfg := validConfig()
		cfg.AutoUpdateInterval = 100 * time.Millisecond
		assert.ErrorContains(t, cfg.ValidateForServe(), "AUTO_UPDATE_INTERVAL")
	})
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			assert.Equal(t, tt.want, cfg.SlogLevel())
		})
	}

	t.Run("from environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "DEBUG")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	})
}
