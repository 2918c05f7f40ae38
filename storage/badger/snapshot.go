package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/Riya0071234/Cooking-Voice-Assistant/storage"
)

// SnapshotStore implements storage.SnapshotStore for BadgerDB.
type SnapshotStore struct {
	backend *Backend
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new SnapshotStore on the shared backend.
func NewSnapshotStore(backend *Backend) *SnapshotStore {
	return &SnapshotStore{backend: backend}
}

// Close implements storage.SnapshotStore. The shared backend is closed by
// its owner, not by the store.
func (s *SnapshotStore) Close() error {
	return nil
}

// SaveSnapshot stores the snapshot bytes under the snapshot key.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(snapshotKey(), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot retrieves the stored snapshot bytes.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		entry, err := tx.Get(snapshotKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		data, err = entry.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return data, nil
}
