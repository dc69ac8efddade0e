package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/quotator/internal/app"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch fresh quotes from the remote sources",
	Long: `Fetch quotes from every remote source and store them in the cache slot,
replacing whatever was cached before. When a source fails, previously fetched
quotes are kept; an empty cache falls back to the built-in quotes.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer a.Close()

	st := a.Refresh(ctx)
	if err := a.Cache.LastError(); err != nil {
		slog.Warn("fetch incomplete", "status", st, "error", err)
	}

	fmt.Printf("Status: %s\n", st)
	counts := a.Cache.Counts()
	for _, source := range a.Cache.Sources() {
		fmt.Printf("  %s: %d quotes\n", source, counts[source])
	}
	return nil
}
