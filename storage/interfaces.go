package storage

import (
	"context"

	"github.com/poiesic/sift/core"
)

// ObjectReader provides read access to a corpus.
type ObjectReader interface {
	// List returns metadata for every object whose key starts with prefix.
	// Pagination is handled by the implementation; callers see one slice.
	// An empty prefix lists the whole store.
	List(ctx context.Context, prefix string) ([]core.ObjectInfo, error)

	// Get returns the full content of the object stored under key.
	// Returns ErrNotFound if the object doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)
}

// ObjectWriter provides write access to a corpus.
type ObjectWriter interface {
	// Put stores data under key, replacing any existing object.
	// Returns the metadata of the stored object.
	Put(ctx context.Context, key string, data []byte) (core.ObjectInfo, error)

	// Delete removes the object stored under key.
	// Returns ErrNotFound if the object doesn't exist.
	Delete(ctx context.Context, key string) error
}

// ObjectStore combines read and write access with lifecycle management.
type ObjectStore interface {
	ObjectReader
	ObjectWriter

	// Close releases resources held by the store.
	Close() error
}
