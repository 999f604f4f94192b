package task

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/rezkam/daily/internal/domain"
)

// Option is a functional option for configuring Store.
type Option func(*Store)

// WithClock sets the time source used for createdAt and completedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUIDv7 id generator.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithLocation sets the zone for due dates written without an offset.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		s.loc = loc
	}
}

// WithWarningHandler registers a callback for failed persistence writes.
// The handler runs while the store lock is held and must not call back
// into the store.
func WithWarningHandler(h func(context.Context, *domain.PersistenceWarning)) Option {
	return func(s *Store) {
		s.onWarning = h
	}
}

// WithSaveTimeout bounds each persistence write.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.saveTimeout = d
	}
}

// WithMeterProvider sets the provider for store metrics.
// Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Store) {
		s.meterProvider = mp
	}
}
