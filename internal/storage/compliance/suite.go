package compliance

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/daily/internal/storage"
)

// RunBlobStoreComplianceTest runs a standard set of tests against a BlobStore implementation.
// setup is a function that returns a fresh (clean) BlobStore instance for the test.
// cleanup is called after the test to clean up resources (if any).
func RunBlobStoreComplianceTest(t *testing.T, setup func() (storage.BlobStore, func())) {
	t.Run("PutAndGet", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		key := "daily_" + uuid.NewString()
		data := []byte(`[{"id":"a","title":"Comprar pan"}]`)

		require.NoError(t, store.Put(ctx, key, data))

		fetched, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, data, fetched)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		key := "daily_" + uuid.NewString()
		require.NoError(t, store.Put(ctx, key, []byte(`[{"id":"a"}]`)))
		require.NoError(t, store.Put(ctx, key, []byte(`[]`)))

		fetched, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), fetched)
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		_, err := store.Get(ctx, "missing_"+uuid.NewString())
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		k1 := "daily_" + uuid.NewString()
		k2 := "daily_" + uuid.NewString()
		require.NoError(t, store.Put(ctx, k1, []byte("one")))
		require.NoError(t, store.Put(ctx, k2, []byte("two")))

		v1, err := store.Get(ctx, k1)
		require.NoError(t, err)
		v2, err := store.Get(ctx, k2)
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), v1)
		assert.Equal(t, []byte("two"), v2)
	})

	t.Run("Delete", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		key := "daily_" + uuid.NewString()
		require.NoError(t, store.Put(ctx, key, []byte(`[]`)))
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)

		// Deleting again is not an error.
		assert.NoError(t, store.Delete(ctx, key))
	})

	t.Run("ReturnedBytesAreOwnedByCaller", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		key := "daily_" + uuid.NewString()
		data := []byte("original")
		require.NoError(t, store.Put(ctx, key, data))
		data[0] = 'X'

		fetched, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), fetched)

		fetched[0] = 'Y'
		again, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), again)
	})

	t.Run("ConcurrentPuts", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		key := "daily_" + uuid.NewString()
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Go(func() {
				assert.NoError(t, store.Put(ctx, key, fmt.Appendf(nil, "[%d]", i)))
			})
		}
		wg.Wait()

		fetched, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Regexp(t, `^\[\d\]$`, string(fetched), "last writer wins with a complete blob")
	})
}
