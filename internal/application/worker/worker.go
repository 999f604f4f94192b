package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/rezkam/daily/internal/application/worker"

// Expirer applies the overdue check to a task collection.
// Implemented by *task.Store.
type Expirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) ([]string, error)
}

// ExpirationMonitor periodically moves overdue tasks to expired.
type ExpirationMonitor struct {
	store            Expirer
	interval         time.Duration
	operationTimeout time.Duration // Timeout for a single expiration run
	now              func() time.Time
	tracer           trace.Tracer
	wg               sync.WaitGroup
}

// Option is a functional option for configuring ExpirationMonitor.
type Option func(*ExpirationMonitor)

// WithInterval sets how often the overdue check runs.
// Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(m *ExpirationMonitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithOperationTimeout sets the timeout for a single run.
// Non-positive values keep the default.
func WithOperationTimeout(d time.Duration) Option {
	return func(m *ExpirationMonitor) {
		if d > 0 {
			m.operationTimeout = d
		}
	}
}

// WithClock sets the time source compared against due dates.
func WithClock(now func() time.Time) Option {
	return func(m *ExpirationMonitor) {
		m.now = now
	}
}

// NewExpirationMonitor creates a monitor over store.
func NewExpirationMonitor(store Expirer, opts ...Option) *ExpirationMonitor {
	m := &ExpirationMonitor{
		store:            store,
		interval:         60 * time.Second, // Default: once a minute
		operationTimeout: 10 * time.Second,
		now:              time.Now,
		tracer:           otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start runs the check once immediately and then on every tick.
// Runs until context is cancelled. On shutdown:
// 1. Stops scheduling new runs
// 2. Waits for in-flight runs to complete
// 3. Returns nil
func (m *ExpirationMonitor) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "Expiration monitor started", "interval", m.interval)

	// Check immediately on startup
	startupCtx, startupCancel := context.WithTimeout(context.WithoutCancel(ctx), m.operationTimeout)
	if _, err := m.RunOnce(startupCtx); err != nil {
		slog.ErrorContext(startupCtx, "Error expiring tasks on startup", "error", err)
	}
	startupCancel() // releases timer resources

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.wg.Go(func() {
				opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.operationTimeout)
				defer cancel()
				if _, err := m.RunOnce(opCtx); err != nil {
					slog.ErrorContext(opCtx, "Error expiring tasks", "error", err)
				}
			})
		case <-ctx.Done():
			slog.InfoContext(ctx, "Shutdown requested, waiting for in-flight expiration runs...")
			m.wg.Wait()
			slog.InfoContext(ctx, "Expiration monitor stopped gracefully")
			return nil
		}
	}
}

// RunOnce executes a single overdue check and returns the ids that expired.
func (m *ExpirationMonitor) RunOnce(ctx context.Context) ([]string, error) {
	ctx, span := m.tracer.Start(ctx, "worker.ExpireOverdue")
	defer span.End()

	ids, err := m.store.ExpireOverdue(ctx, m.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "expiration failed")
		return nil, fmt.Errorf("failed to expire overdue tasks: %w", err)
	}

	span.SetAttributes(attribute.Int("daily.task.expired", len(ids)))
	if len(ids) > 0 {
		slog.InfoContext(ctx, "Expired overdue tasks", "count", len(ids), "task_ids", ids)
	}
	return ids, nil
}
