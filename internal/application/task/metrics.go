package task

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rezkam/daily/internal/domain"
)

const meterName = "github.com/rezkam/daily/internal/application/task"

// Operation names, used as the op attribute and in persistence warnings.
const (
	OpCreate        = "create"
	OpDelete        = "delete"
	OpSetStatus     = "set_status"
	OpUpdate        = "update"
	OpAddComment    = "add_comment"
	OpRemoveComment = "remove_comment"
	OpClear         = "clear"
	OpImport        = "import"
	OpExpire        = "expire"
)

type storeMetrics struct {
	mutations       metric.Int64Counter
	persistFailures metric.Int64Counter
	expired         metric.Int64Counter
}

func newStoreMetrics(mp metric.MeterProvider, s *Store) (*storeMetrics, error) {
	meter := mp.Meter(meterName)

	mutations, err := meter.Int64Counter("daily.task.mutations",
		metric.WithDescription("Mutating task store operations applied"),
		metric.WithUnit("{operation}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create mutations counter: %w", err)
	}

	persistFailures, err := meter.Int64Counter("daily.persistence.failures",
		metric.WithDescription("Collection writes that failed and were reported as warnings"),
		metric.WithUnit("{write}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create persistence failures counter: %w", err)
	}

	expired, err := meter.Int64Counter("daily.task.expired",
		metric.WithDescription("Tasks moved to expired by the overdue check"),
		metric.WithUnit("{task}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create expired counter: %w", err)
	}

	_, err = meter.Int64ObservableGauge("daily.task.count",
		metric.WithDescription("Tasks in the collection by status"),
		metric.WithUnit("{task}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			for status, n := range s.countByStatus() {
				o.Observe(int64(n), metric.WithAttributes(attribute.String("state", string(status))))
			}
			return nil
		}))
	if err != nil {
		return nil, fmt.Errorf("failed to create task count gauge: %w", err)
	}

	return &storeMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		expired:         expired,
	}, nil
}

func (m *storeMetrics) recordMutation(ctx context.Context, op string) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func (m *storeMetrics) recordPersistFailure(ctx context.Context, op string) {
	m.persistFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func (m *storeMetrics) recordExpired(ctx context.Context, n int) {
	m.expired.Add(ctx, int64(n))
}

func (s *Store) countByStatus() map[domain.Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, st := range domain.Statuses {
		counts[st] = 0
	}
	for i := range s.tasks {
		counts[s.tasks[i].Status]++
	}
	return counts
}
