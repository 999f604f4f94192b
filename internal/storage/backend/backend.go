// Package backend opens the BlobStore selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rezkam/daily/internal/config"
	"github.com/rezkam/daily/internal/storage"
	"github.com/rezkam/daily/internal/storage/fs"
	"github.com/rezkam/daily/internal/storage/gcs"
	"github.com/rezkam/daily/internal/storage/memory"
	"github.com/rezkam/daily/internal/storage/postgres"
	"github.com/rezkam/daily/internal/storage/redis"
	"github.com/rezkam/daily/internal/storage/sqlite"
)

// Open creates the BlobStore for cfg.Type.
func Open(ctx context.Context, cfg config.StorageConfig) (storage.BlobStore, error) {
	var (
		store storage.BlobStore
		err   error
	)

	switch cfg.Type {
	case config.StorageFS:
		store, err = fs.NewStore(cfg.FSDir)
	case config.StorageGCS:
		store, err = gcs.NewStore(ctx, cfg.GCSBucket)
	case config.StorageSQLite:
		store, err = sqlite.NewStore(ctx, cfg.SQLitePath)
	case config.StoragePostgres:
		store, err = postgres.NewStore(ctx, postgres.DBConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
	case config.StorageRedis:
		store, err = redis.NewStore(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.StorageMemory:
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unsupported storage type: %q", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Type, err)
	}

	slog.InfoContext(ctx, "storage opened", "type", cfg.Type, "key", cfg.Key)
	return store, nil
}

// OpenAdapter opens the configured backend and binds it to cfg.Key.
func OpenAdapter(ctx context.Context, cfg config.StorageConfig) (*storage.Adapter, error) {
	store, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return storage.NewAdapter(store, cfg.Key), nil
}
