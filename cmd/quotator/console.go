package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdulachik/quotator/internal/app"
	"github.com/abdulachik/quotator/internal/console"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the interactive quote menu",
	Long: `Print the guide and menu, then read menu choices from stdin until
Q is entered or input ends.`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForGenerate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer a.Close()

	runner := console.New(console.Config{
		Generator: a.Quotator,
		In:        os.Stdin,
		Out:       os.Stdout,
		Source:    cfg.DefaultSource,
	})
	runner.PrintMenu()

	a.Start(ctx)
	if _, err := a.Cache.Wait(ctx); err != nil {
		return fmt.Errorf("load quotes: %w", err)
	}

	return runner.Run(ctx)
}
