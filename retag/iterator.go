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


package retag

import (
	"context"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/storage"
)

const (
	// DefaultBatchSize is the default number of items to write in each batch
	DefaultBatchSize = 100
)

// ItemIterator loads the retaggable corpus and walks it in batches.
type ItemIterator struct {
	store     storage.ItemStore
	batchSize int
}

// NewItemIterator creates a new item iterator.
// batchSize: number of items per batch (must be > 0)
func NewItemIterator(store storage.ItemStore, batchSize int) *ItemIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ItemIterator{
		store:     store,
		batchSize: batchSize,
	}
}

// Collect loads every item eligible for retagging, in ID order. Rejected
// items and items that never reached the tagging stage are skipped.
func (it *ItemIterator) Collect(ctx context.Context) ([]*core.ContentItem, error) {
	all, err := it.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]*core.ContentItem, 0, len(all))
	for _, item := range all {
		switch item.Status {
		case core.StatusTagged, core.StatusStored:
			eligible = append(eligible, item)
		}
	}
	return eligible, nil
}

// ForEach calls fn for successive batches of items.
// Iteration stops on the first error from fn or when all items are
// processed. Context cancellation is checked between batches.
func (it *ItemIterator) ForEach(ctx context.Context, items []*core.ContentItem, fn func([]*core.ContentItem) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	for i := 0; i < len(items); i += it.batchSize {
		end := i + it.batchSize
		if end > len(items) {
			end = len(items)
		}

		if err := fn(items[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
