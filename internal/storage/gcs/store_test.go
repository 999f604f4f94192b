package gcs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/rezkam/daily/internal/config"
	"github.com/rezkam/daily/internal/storage"
	"github.com/rezkam/daily/internal/storage/compliance"
)

func TestGCSStore_Compliance(t *testing.T) {
	testCfg, err := config.LoadTestConfig()
	require.NoError(t, err)
	bucket := testCfg.GCSBucket
	if bucket == "" {
		t.Skip("TEST_GCS_BUCKET not set, skipping GCS tests")
	}

	compliance.RunBlobStoreComplianceTest(t, func() (storage.BlobStore, func()) {
		// Note: This assumes Application Default Credentials are set up
		// and point to a valid project with access to the bucket.
		ctx := context.Background()

		store, err := NewStore(ctx, bucket)
		require.NoError(t, err)

		// Compliance keys all start with daily_ or missing_.
		cleanup := func() {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			it := store.client.Bucket(bucket).Objects(cleanupCtx, nil)
			var objectsToDelete []string

			for {
				attrs, err := it.Next()
				if errors.Is(err, iterator.Done) {
					break
				}
				if err != nil {
					t.Logf("Warning: failed to list objects during cleanup: %v", err)
					break
				}
				if strings.HasPrefix(attrs.Name, "daily_") && strings.HasSuffix(attrs.Name, ".json") {
					objectsToDelete = append(objectsToDelete, attrs.Name)
				}
			}

			for _, name := range objectsToDelete {
				if err := store.client.Bucket(bucket).Object(name).Delete(cleanupCtx); err != nil {
					t.Logf("Warning: failed to delete object %s: %v", name, err)
				}
			}
			store.Close()
		}

		return store, cleanup
	})
}
