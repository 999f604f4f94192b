package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/daily/internal/domain"
	"github.com/rezkam/daily/internal/storage"
	"github.com/rezkam/daily/internal/storage/memory"
)

const key = "daily_tasks"

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("gen-%d", n), nil
	}
}

type failingStore struct {
	getErr error
	putErr error
}

func (f *failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.getErr }
func (f *failingStore) Put(context.Context, string, []byte) error   { return f.putErr }
func (f *failingStore) Delete(context.Context, string) error        { return nil }
func (f *failingStore) Close() error                                { return nil }

func TestAdapter_LoadMissingKeyIsEmpty(t *testing.T) {
	a := storage.NewAdapter(memory.NewStore(), key)

	tasks, err := a.Load(context.Background(), sequentialIDs())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestAdapter_LoadMalformedIsEmpty(t *testing.T) {
	for _, blob := range []string{`not json`, `{"id":"a"}`, `"daily"`, ``, `null`} {
		t.Run(blob, func(t *testing.T) {
			blobs := memory.NewStore()
			require.NoError(t, blobs.Put(context.Background(), key, []byte(blob)))

			tasks, err := storage.NewAdapter(blobs, key).Load(context.Background(), sequentialIDs())
			require.NoError(t, err)
			assert.Empty(t, tasks)
		})
	}
}

func TestAdapter_LoadBackfillsLegacyRecords(t *testing.T) {
	blobs := memory.NewStore()
	legacy := `[
		{"id":"a","title":"Pagar luz","completed":true,"priority":"Alta","category":"Hogar","createdAt":1700000000000},
		{"id":"b","title":"Leer","completed":false,"priority":"Baja","category":"Estudios","createdAt":1700000001000},
		{"id":"c","title":"","completed":false,"createdAt":1700000002000}
	]`
	require.NoError(t, blobs.Put(context.Background(), key, []byte(legacy)))

	tasks, err := storage.NewAdapter(blobs, key).Load(context.Background(), sequentialIDs())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, domain.StatusCompleted, tasks[0].Status)
	assert.Equal(t, []string{}, tasks[0].Comments)
	require.NotNil(t, tasks[0].CompletedAt)
	assert.Equal(t, tasks[0].CreatedAt, *tasks[0].CompletedAt)

	assert.Equal(t, domain.StatusPending, tasks[1].Status)
	assert.Equal(t, []string{}, tasks[1].Comments)
	assert.Nil(t, tasks[1].CompletedAt)
}

func TestAdapter_LoadBackendFailure(t *testing.T) {
	boom := errors.New("connection refused")
	a := storage.NewAdapter(&failingStore{getErr: boom}, key)

	_, err := a.Load(context.Background(), sequentialIDs())
	assert.ErrorIs(t, err, boom)
}

func TestAdapter_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewStore()
	a := storage.NewAdapter(blobs, key)

	due, err := domain.ParseDueDate("2025-03-10")
	require.NoError(t, err)
	created := time.UnixMilli(1700000000000)
	done := created.Add(time.Hour)

	in := []domain.Task{
		{
			ID: "a", Title: "Entregar informe", Status: domain.StatusCompleted,
			Priority: domain.PriorityHigh, Category: domain.CategoryWork,
			DueDate: &due, Comments: []string{"enviado"}, CreatedAt: created, CompletedAt: &done,
		},
		{
			ID: "b", Title: "Regar plantas", Status: domain.StatusPending,
			Priority: domain.PriorityMedium, Category: domain.CategoryHome,
			Comments: []string{}, CreatedAt: created,
		},
	}
	require.NoError(t, a.Save(ctx, in))

	out, err := a.Load(ctx, sequentialIDs())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.True(t, out[0].Completed())
	assert.Equal(t, "2025-03-10", out[0].DueDate.String())
	assert.Equal(t, []string{"enviado"}, out[0].Comments)
	assert.True(t, out[0].CompletedAt.Equal(done))
}

func TestAdapter_SaveEmptyWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewStore()

	require.NoError(t, storage.NewAdapter(blobs, key).Save(ctx, nil))

	data, err := blobs.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestAdapter_SaveBackendFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	a := storage.NewAdapter(&failingStore{putErr: boom}, key)

	err := a.Save(context.Background(), []domain.Task{})
	assert.ErrorIs(t, err, boom)
}
