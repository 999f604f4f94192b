package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// shutdowner abstracts the HTTP server so tests can verify cleanup order.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup builds the shutdown sequence: stop accepting requests, wait
// for the expiration monitor to drain, then close storage. Storage closes
// last so no in-flight write loses its backend.
func newCleanup(server shutdowner, monitorDone <-chan error, store io.Closer) func(context.Context) error {
	return func(ctx context.Context) error {
		var errs []error

		if server != nil {
			if err := server.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("http shutdown: %w", err))
			}
		}

		if monitorDone != nil {
			select {
			case err := <-monitorDone:
				if err != nil {
					errs = append(errs, fmt.Errorf("expiration monitor: %w", err))
				}
			case <-ctx.Done():
				slog.WarnContext(ctx, "expiration monitor did not stop before shutdown timeout")
				errs = append(errs, ctx.Err())
			}
		}

		if store != nil {
			if err := store.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close store: %w", err))
			}
		}

		if err := errors.Join(errs...); err != nil {
			return err
		}
		slog.InfoContext(ctx, "shutdown complete")
		return nil
	}
}
