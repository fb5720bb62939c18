package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// ObjectStore implements storage.ObjectStore on top of BadgerDB.
// Object bytes and metadata live under separate keys so listings never
// touch document content.
type ObjectStore struct {
	backend     *Backend
	ownsBackend bool
}

var _ storage.ObjectStore = (*ObjectStore)(nil)

// NewObjectStore creates an ObjectStore over an open backend.
// The caller keeps ownership of the backend.
func NewObjectStore(backend *Backend) *ObjectStore {
	return &ObjectStore{backend: backend}
}

// OpenObjectStore opens a backend at filePath and returns a store that closes
// it on Close.
func OpenObjectStore(filePath string, inMemory bool) (*ObjectStore, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}
	return &ObjectStore{backend: backend, ownsBackend: true}, nil
}

// Close closes the backend if the store owns it.
func (s *ObjectStore) Close() error {
	if s.ownsBackend && !s.backend.IsClosed() {
		return s.backend.Close()
	}
	return nil
}

// List returns metadata for every object under prefix, in key order.
func (s *ObjectStore) List(ctx context.Context, prefix string) ([]core.ObjectInfo, error) {
	infos := []core.ObjectInfo{}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeObjectMetaKey(prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			var info core.ObjectInfo
			err := item.Value(func(val []byte) error {
				var err error
				info, err = storage.UnmarshalObjectInfo(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("reading metadata for %q: %w", objectKeyFromMeta(item.Key()), err)
			}
			infos = append(infos, info)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Get returns the bytes stored under key.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeObjectDataKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)

	return data, err
}

// Put stores data under key and records its metadata.
// The ETag is the hex BLAKE2b-64 digest of the content.
func (s *ObjectStore) Put(ctx context.Context, key string, data []byte) (core.ObjectInfo, error) {
	info := core.ObjectInfo{
		Key:        key,
		Size:       int64(len(data)),
		ETag:       fmt.Sprintf("%016x", uint64(core.IDFromContent(data))),
		ModifiedAt: time.Now().UTC(),
	}
	if err := core.ValidateObjectInfo(&info); err != nil {
		return core.ObjectInfo{}, err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeObjectDataKey(key), data); err != nil {
			return err
		}
		if err := tx.Set(makeObjectMetaKey(key), storage.MarshalObjectInfo(info)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return core.ObjectInfo{}, err
	}

	return info, nil
}

// Delete removes the object stored under key.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(makeObjectMetaKey(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(makeObjectDataKey(key)); err != nil {
			return err
		}
		if err := tx.Delete(makeObjectMetaKey(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
