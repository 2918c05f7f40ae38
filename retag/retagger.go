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
	"fmt"
	"io"
	"time"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/retry"
	"github.com/Riya0071234/Cooking-Voice-Assistant/storage"
	"github.com/Riya0071234/Cooking-Voice-Assistant/tagging"
)

// Config holds configuration for the retagging operation.
type Config struct {
	// BatchSize is the number of items to write back in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of items)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed writes
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Retagger recomputes the tags of the stored corpus.
//
// The tagging engine derives term weights from document frequencies, so the
// whole eligible corpus is tagged in one pass rather than batch by batch.
// Only the write-back is batched.
type Retagger struct {
	store    storage.ItemStore
	engine   *tagging.Engine
	config   *Config
	progress io.Writer
	iterator *ItemIterator
}

// NewRetagger creates a new retagger.
// progress: where to write progress output (typically os.Stderr)
func NewRetagger(store storage.ItemStore, engine *tagging.Engine, config *Config, progress io.Writer) (*Retagger, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Retagger{
		store:    store,
		engine:   engine,
		config:   config,
		progress: progress,
		iterator: NewItemIterator(store, config.BatchSize),
	}, nil
}

// Run executes the retagging operation. Every tagged or stored item is
// re-tagged against the current corpus and written back.
func (r *Retagger) Run(ctx context.Context) error {
	items, err := r.iterator.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	total := len(items)
	if total == 0 {
		fmt.Fprintf(r.progress, "No taggable items found (0 items)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting retagging of %d items (batch size: %d)\n",
		total, r.config.BatchSize)

	clusters := r.engine.Tag(items)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	written := 0
	err = r.iterator.ForEach(ctx, items, func(batch []*core.ContentItem) error {
		_, err := retry.WithBackoff(ctx, func() error {
			return r.store.PutItems(ctx, batch...)
		}, r.config.MaxRetries, r.config.RetryDelay, nil)
		if err != nil {
			return fmt.Errorf("failed to write batch after %d attempts: %w", r.config.MaxRetries, err)
		}

		written += len(batch)
		tracker.Update(written)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Retagging complete. Processed %d items in %d clusters in %v (%.1f items/sec)\n",
		total, len(clusters), elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
