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


package vision

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

// FrameExtractor decodes a single frame of a video at an offset. The
// MediaRef on the video details tells the extractor where the media lives.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, video *core.VideoDetails, offset time.Duration) ([]byte, error)
}

// Detector finds labeled objects in a frame image.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]core.Detection, error)
}

// Branch runs frame sampling and detection for validated video items.
type Branch struct {
	extractor  FrameExtractor
	detector   Detector
	pool       *ants.Pool
	interval   time.Duration
	confidence float64
	logger     *slog.Logger
}

// Option configures a Branch.
type Option func(*Branch) error

// WithWorkers sets the per-video frame worker pool size. Default is 4.
func WithWorkers(size int) Option {
	return func(b *Branch) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithInterval sets the sampling interval. Default is 3 seconds.
func WithInterval(interval time.Duration) Option {
	return func(b *Branch) error {
		b.interval = interval
		return nil
	}
}

// WithConfidence sets the minimum confidence a detection needs to survive.
// Default is 0.6.
func WithConfidence(threshold float64) Option {
	return func(b *Branch) error {
		b.confidence = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Branch) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// New creates a vision branch over the given extractor and detector.
func New(extractor FrameExtractor, detector Detector, opts ...Option) (*Branch, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if detector == nil {
		return nil, ErrDetectorRequired
	}

	pool, err := ants.NewPool(4)
	if err != nil {
		return nil, err
	}

	b := &Branch{
		extractor:  extractor,
		detector:   detector,
		pool:       pool,
		interval:   3 * time.Second,
		confidence: 0.6,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}
	return b, nil
}

// SampleOffsets returns the frame offsets for a video of the given duration
// in seconds: one sample every interval, starting at zero, strictly before
// the end of the video.
func SampleOffsets(durationSeconds float64, interval time.Duration) []time.Duration {
	if durationSeconds <= 0 || interval <= 0 {
		return nil
	}
	duration := time.Duration(durationSeconds * float64(time.Second))
	offsets := make([]time.Duration, 0, duration/interval+1)
	for offset := time.Duration(0); offset < duration; offset += interval {
		offsets = append(offsets, offset)
	}
	return offsets
}

// Process samples the video and returns the frames that kept at least one
// detection at or above the confidence threshold, ordered by offset. Frames
// that fail to extract or detect are logged and skipped; only context
// cancellation fails the whole video.
func (b *Branch) Process(ctx context.Context, video *core.VideoDetails) ([]core.VideoFrame, error) {
	offsets := SampleOffsets(video.DurationSeconds, b.interval)
	if len(offsets) == 0 {
		return nil, nil
	}

	frames := make([]*core.VideoFrame, len(offsets))

	var wg sync.WaitGroup
	for i, offset := range offsets {
		wg.Add(1)
		i, offset := i, offset
		submitErr := b.pool.Submit(func() {
			defer wg.Done()
			frames[i] = b.processFrame(ctx, video, i, offset)
		})
		if submitErr != nil {
			b.logger.Warn("frame not submitted", "video", video.VideoID, "frame", i, "err", submitErr)
			wg.Done()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept := make([]core.VideoFrame, 0, len(offsets))
	for _, frame := range frames {
		if frame != nil {
			kept = append(kept, *frame)
		}
	}

	b.logger.Info("video processed",
		"video", video.VideoID,
		"sampled", len(offsets),
		"kept", len(kept))
	return kept, nil
}

func (b *Branch) processFrame(ctx context.Context, video *core.VideoDetails, index int, offset time.Duration) *core.VideoFrame {
	image, err := b.extractor.ExtractFrame(ctx, video, offset)
	if err != nil {
		b.logger.Warn("frame extraction failed, skipping",
			"video", video.VideoID, "frame", index, "offset", offset, "err", err)
		return nil
	}

	detections, err := b.detector.Detect(ctx, image)
	if err != nil {
		b.logger.Warn("detection failed, skipping frame",
			"video", video.VideoID, "frame", index, "offset", offset, "err", err)
		return nil
	}

	qualifying := detections[:0:0]
	for _, d := range detections {
		if d.Confidence >= b.confidence {
			qualifying = append(qualifying, d)
		}
	}
	if len(qualifying) == 0 {
		return nil
	}

	return &core.VideoFrame{
		VideoID:    video.VideoID,
		FrameIndex: index,
		Timestamp:  offset,
		Detections: qualifying,
	}
}

// Release releases the worker pool. The branch should not be used after
// calling Release.
func (b *Branch) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
