package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/daily/internal/storage"
	"github.com/rezkam/daily/internal/storage/compliance"
)

func TestFSStore_Compliance(t *testing.T) {
	compliance.RunBlobStoreComplianceTest(t, func() (storage.BlobStore, func()) {
		tmpDir, err := os.MkdirTemp("", "fs-store-test-*")
		require.NoError(t, err)

		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		cleanup := func() {
			os.RemoveAll(tmpDir)
		}

		return store, cleanup
	})
}

func TestFSStore_WritesKeyFileWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "daily_tasks", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "daily_tasks.json", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, "daily_tasks.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFSStore_CreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
