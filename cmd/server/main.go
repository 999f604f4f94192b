package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/daily/internal/application/task"
	"github.com/rezkam/daily/internal/application/worker"
	"github.com/rezkam/daily/internal/config"
	httpserver "github.com/rezkam/daily/internal/http"
	"github.com/rezkam/daily/internal/http/handler"
	"github.com/rezkam/daily/internal/infrastructure/observability"
	"github.com/rezkam/daily/internal/storage/backend"
)

func main() {
	if err := run(); err != nil {
		// slog may not be initialized if config fails
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Expiration.Location()
	if err != nil {
		return err
	}

	// Root context for normal operation; cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tel, err := observability.Setup(ctx, cfg.Observability, nil)
	if err != nil {
		return err
	}
	defer func() {
		// Bounded so an unreachable collector cannot hang the exit.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown telemetry", "error", err)
		}
	}()

	slog.InfoContext(ctx, "starting daily server",
		"storage", cfg.Storage.Type,
		"addr", cfg.HTTP.Addr(),
		"timezone", loc.String())

	adapter, err := backend.OpenAdapter(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	store, err := task.NewStore(ctx, adapter, task.WithLocation(loc))
	if err != nil {
		_ = adapter.Close()
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	monitor := worker.NewExpirationMonitor(store,
		worker.WithInterval(cfg.Expiration.Interval),
		worker.WithOperationTimeout(cfg.Expiration.OperationTimeout),
	)
	monitorDone := make(chan error, 1)
	go func() { monitorDone <- monitor.Start(ctx) }()

	api := httpserver.NewAPIServer(handler.NewServer(store), cfg.HTTP)
	serveErr := make(chan error, 1)
	go func() {
		if err := api.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")
	case runErr = <-serveErr:
		cancel()
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancelShutdown()

	cleanup := newCleanup(api, monitorDone, adapter)
	return errors.Join(runErr, cleanup(shutdownCtx))
}
