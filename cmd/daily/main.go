package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/daily/internal/cli"
	"github.com/rezkam/daily/internal/config"
	"github.com/rezkam/daily/internal/env"
	"github.com/rezkam/daily/internal/infrastructure/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var obsCfg config.ObservabilityConfig
	if err := env.Load(&obsCfg); err != nil {
		return fmt.Errorf("failed to load observability config: %w", err)
	}

	// Interactive use: only warnings and errors reach the terminal.
	fallback := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	tel, err := observability.Setup(ctx, obsCfg, fallback)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown telemetry", "error", err)
		}
	}()

	return cli.Run(ctx, cli.Options{Open: cli.DefaultOpener}, os.Args[1:])
}
