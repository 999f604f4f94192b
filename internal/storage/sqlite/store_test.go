package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/daily/internal/storage"
	"github.com/rezkam/daily/internal/storage/compliance"
)

func TestSQLiteStore_Compliance(t *testing.T) {
	compliance.RunBlobStoreComplianceTest(t, func() (storage.BlobStore, func()) {
		path := filepath.Join(t.TempDir(), "daily.db")

		store, err := NewStore(context.Background(), path)
		require.NoError(t, err)

		return store, func() { store.Close() }
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "daily.db")

	store, err := NewStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "daily_tasks", []byte(`[{"id":"a"}]`)))
	require.NoError(t, store.Close())

	// Reopening runs migrations again; they must be a no-op.
	reopened, err := NewStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	data, err := reopened.Get(ctx, "daily_tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))
}
