package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rezkam/daily/internal/domain"
)

const tracerName = "github.com/rezkam/daily/internal/storage"

// Adapter reads and writes the whole task collection as one JSON blob
// under a single key.
type Adapter struct {
	blobs  BlobStore
	key    string
	tracer trace.Tracer
}

// NewAdapter binds a BlobStore to the key holding the collection.
func NewAdapter(blobs BlobStore, key string) *Adapter {
	return &Adapter{
		blobs:  blobs,
		key:    key,
		tracer: otel.Tracer(tracerName),
	}
}

// Key returns the storage key of the collection.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the persisted collection in stored order.
//
// A missing key or a blob that is not a JSON array yields an empty
// collection and a warning log. Individual records that cannot be repaired
// are dropped. Only backend read failures are returned as errors, so a
// transient outage never masquerades as an empty collection.
func (a *Adapter) Load(ctx context.Context, newID func() (string, error)) ([]domain.Task, error) {
	ctx, span := a.tracer.Start(ctx, "storage.Load", trace.WithAttributes(attribute.String("daily.storage.key", a.key)))
	defer span.End()

	data, err := a.blobs.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			slog.DebugContext(ctx, "no stored collection, starting empty", "key", a.key)
			return []domain.Task{}, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, fmt.Errorf("failed to read %s: %w", a.key, err)
	}

	result, err := domain.DecodeTasks(data, newID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBackup) {
			slog.WarnContext(ctx, "stored collection is malformed, starting empty",
				"key", a.key,
				"bytes", len(data),
				"error", err)
			span.AddEvent("malformed collection discarded")
			return []domain.Task{}, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("failed to decode %s: %w", a.key, err)
	}

	if result.Skipped > 0 {
		slog.WarnContext(ctx, "dropped unreadable task records",
			"key", a.key,
			"skipped", result.Skipped,
			"loaded", len(result.Tasks))
	}
	span.SetAttributes(attribute.Int("daily.task.count", len(result.Tasks)))

	return result.Tasks, nil
}

// Save replaces the stored collection with tasks.
func (a *Adapter) Save(ctx context.Context, tasks []domain.Task) error {
	ctx, span := a.tracer.Start(ctx, "storage.Save", trace.WithAttributes(
		attribute.String("daily.storage.key", a.key),
		attribute.Int("daily.task.count", len(tasks)),
	))
	defer span.End()

	data, err := domain.EncodeTasks(tasks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	if err := a.blobs.Put(ctx, a.key, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return fmt.Errorf("failed to write %s: %w", a.key, err)
	}
	return nil
}

// Close releases the underlying backend.
func (a *Adapter) Close() error {
	return a.blobs.Close()
}
