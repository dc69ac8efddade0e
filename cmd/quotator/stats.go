package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abdulachik/quotator/internal/app"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Long:  `Display the cached quote sources, quote counts, and recent fetch outcomes.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	// Only report what is persisted; never reach the network here
	entries, cached, err := a.PersistedEntries(ctx)
	if err != nil {
		if !cached {
			return fmt.Errorf("read cache slot: %w", err)
		}
		slog.Warn("cache slot is corrupt", "key", cfg.CacheKey, "error", err)
	}

	latest, err := a.Store.GetLatestFetchLog(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("get latest fetch: %w", err)
	}

	byStatus, err := a.Store.CountFetchLogsByStatus(ctx)
	if err != nil {
		slog.Warn("failed to count fetches", "error", err)
	}

	// Print stats
	fmt.Println("=== Quotator Statistics ===")
	fmt.Println()

	fmt.Println("Cache:")
	fmt.Printf("  Slot:     %s\n", cfg.CacheKey)
	switch {
	case !cached:
		fmt.Println("  Status:   empty")
	case len(entries) == 0:
		fmt.Println("  Status:   unreadable")
	default:
		fmt.Println("  Status:   cached")
		fmt.Println("  Quotes by source:")
		for _, source := range entries.Sources() {
			fmt.Printf("    - %s: %d\n", source, len(entries[source]))
		}
	}
	fmt.Println()

	fmt.Println("Fetches:")
	if latest == nil {
		fmt.Println("  No fetches recorded")
	} else {
		fmt.Printf("  Latest:   %s at %s\n", latest.Status, latest.CreatedAt.Format("2006-01-02 15:04:05"))
		if latest.Detail.Valid {
			fmt.Printf("  Error:    %s\n", latest.Detail.String)
		}
	}
	for _, row := range byStatus {
		fmt.Printf("  %-9s %d\n", row.Status+":", row.Count)
	}

	return nil
}
