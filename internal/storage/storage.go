// Package storage persists the task collection as a single serialized blob
// in a key-value backend.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a BlobStore when nothing is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// BlobStore is a minimal key-value store for opaque byte blobs.
// Implementations must return ErrKeyNotFound (possibly wrapped) for missing keys.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
