package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/storage"
)

// FrameStore implements storage.FrameStore for BadgerDB.
type FrameStore struct {
	backend *Backend
}

var _ storage.FrameStore = (*FrameStore)(nil)

// NewFrameStore creates a new FrameStore on the shared backend.
func NewFrameStore(backend *Backend) *FrameStore {
	return &FrameStore{backend: backend}
}

// Close implements storage.FrameStore. The shared backend is closed by its
// owner, not by the store.
func (s *FrameStore) Close() error {
	return nil
}

// PutFrames stores the frames in one transaction, keyed by video ID and
// frame index so re-processing a video overwrites instead of duplicating.
func (s *FrameStore) PutFrames(ctx context.Context, frames ...core.VideoFrame) error {
	if len(frames) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for i := range frames {
			frame := &frames[i]
			key := makeFrameKey(frame.VideoID, frame.FrameIndex)
			if err := tx.Set(key, storage.MarshalVideoFrame(frame)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetFrames retrieves all stored frames of a video. The BigEndian frame
// index in the key makes iteration order the playback order.
func (s *FrameStore) GetFrames(ctx context.Context, videoID string) ([]core.VideoFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var frames []core.VideoFrame
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeFramePrefix(videoID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				frame, err := storage.UnmarshalVideoFrame(val)
				if err != nil {
					return err
				}
				frames = append(frames, *frame)
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
	return frames, nil
}
