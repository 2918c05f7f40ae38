// Copyright 2025 The Cooking Voice Assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/storage"
)

// ItemStore implements storage.ItemStore for BadgerDB.
type ItemStore struct {
	backend *Backend
}

var _ storage.ItemStore = (*ItemStore)(nil)

// NewItemStore creates a new ItemStore on the shared backend.
func NewItemStore(backend *Backend) *ItemStore {
	return &ItemStore{backend: backend}
}

// Close implements storage.ItemStore. The shared backend is closed by its
// owner, not by the store.
func (s *ItemStore) Close() error {
	return nil
}

// PutItem stores a single item keyed by its ID.
func (s *ItemStore) PutItem(ctx context.Context, item *core.ContentItem) error {
	return s.PutItems(ctx, item)
}

// PutItems stores a batch of items in one transaction.
func (s *ItemStore) PutItems(ctx context.Context, items ...*core.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			key := makeItemKey(item.Id)
			if err := tx.Set(key, storage.MarshalContentItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetItem retrieves a single item by ID.
func (s *ItemStore) GetItem(ctx context.Context, id core.ID) (*core.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item *core.ContentItem
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		entry, err := tx.Get(makeItemKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return entry.Value(func(val []byte) error {
			item, err = storage.UnmarshalContentItem(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems retrieves all items ordered by ID.
func (s *ItemStore) ListItems(ctx context.Context) ([]*core.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []*core.ContentItem
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				item, err := storage.UnmarshalContentItem(val)
				if err != nil {
					return err
				}
				items = append(items, item)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CountItems returns the number of stored items.
func (s *ItemStore) CountItems(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}
