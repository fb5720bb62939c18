// Package corpus enumerates the searchable documents in an object store.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

var (
	// ErrListingFailed wraps any store failure while enumerating the corpus.
	// A search cannot proceed without a corpus, so this error is fatal.
	ErrListingFailed = errors.New("corpus listing failed")

	// ErrStoreRequired is returned when an object store is not provided.
	ErrStoreRequired = errors.New("object store required")
)

// Supported reports whether key has a page or tabular suffix.
func Supported(key string) bool {
	return core.CorpusKey(key).Kind() != core.KindUnknown
}

// Lister lists the supported documents under a prefix.
type Lister struct {
	store  storage.ObjectReader
	logger *slog.Logger
}

// NewLister creates a lister over store. A nil logger uses slog.Default().
func NewLister(store storage.ObjectReader, logger *slog.Logger) (*Lister, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Lister{store: store, logger: logger}, nil
}

// List returns the supported objects under prefix in store listing order.
// An empty corpus yields an empty slice and a nil error.
func (l *Lister) List(ctx context.Context, prefix string) ([]core.ObjectInfo, error) {
	infos, err := l.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListingFailed, err)
	}

	docs := make([]core.ObjectInfo, 0, len(infos))
	for _, info := range infos {
		if !Supported(info.Key) {
			continue
		}
		docs = append(docs, info)
	}

	l.logger.Debug("listed corpus", "prefix", prefix, "objects", len(infos), "documents", len(docs))
	return docs, nil
}

// Keys returns the supported keys under prefix.
func (l *Lister) Keys(ctx context.Context, prefix string) ([]core.CorpusKey, error) {
	docs, err := l.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]core.CorpusKey, len(docs))
	for i, doc := range docs {
		keys[i] = core.CorpusKey(doc.Key)
	}
	return keys, nil
}
