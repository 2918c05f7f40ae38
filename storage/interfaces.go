package storage

import (
	"context"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

// ItemStore provides operations for persisting content items.
// Implementations must be thread-safe and support concurrent access.
type ItemStore interface {
	// PutItem stores a single item keyed by its ID, overwriting any
	// previous version of the same item.
	PutItem(ctx context.Context, item *core.ContentItem) error

	// PutItems stores a batch of items in one transaction: either every
	// item of the batch is persisted or none is.
	PutItems(ctx context.Context, items ...*core.ContentItem) error

	// GetItem retrieves a single item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id core.ID) (*core.ContentItem, error)

	// ListItems retrieves all items ordered by ID.
	ListItems(ctx context.Context) ([]*core.ContentItem, error)

	// CountItems returns the number of stored items.
	CountItems(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}

// FrameStore provides operations for persisting video frames.
type FrameStore interface {
	// PutFrames stores the frames of one video in a single transaction,
	// keyed by video ID and frame index. Idempotent per frame.
	PutFrames(ctx context.Context, frames ...core.VideoFrame) error

	// GetFrames retrieves all stored frames of a video ordered by frame index.
	GetFrames(ctx context.Context, videoID string) ([]core.VideoFrame, error)

	// Close releases resources held by the store.
	Close() error
}

// SnapshotStore persists the similarity index snapshot between runs.
type SnapshotStore interface {
	// SaveSnapshot stores the snapshot bytes, replacing any previous snapshot.
	SaveSnapshot(ctx context.Context, data []byte) error

	// LoadSnapshot retrieves the stored snapshot.
	// Returns ErrNotFound when no snapshot has been saved yet.
	LoadSnapshot(ctx context.Context) ([]byte, error)

	// Close releases resources held by the store.
	Close() error
}
