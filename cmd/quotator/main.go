package main

import (
	"log/slog"
	"os"

	"github.com/abdulachik/quotator/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// logLevel is raised or lowered once the configuration is loaded.
var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	Use:   "quotator",
	Short: "A random quote generator",
	Long: `Quotator fetches quotes from Forbes and a programming quotes feed,
cuts them into beginning, middle and end fragments, and recombines random
fragments into new quotes on a web page or an interactive console menu.`,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	// Set up logging
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: &logLevel,
	})))
}

// loadConfig reads the configuration and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logLevel.Set(cfg.SlogLevel())
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
