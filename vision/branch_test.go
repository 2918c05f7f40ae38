package vision

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

// fakeExtractor returns the offset encoded as the frame image so the
// detector can tell frames apart.
type fakeExtractor struct {
	failAt map[time.Duration]bool
}

func (f *fakeExtractor) ExtractFrame(_ context.Context, video *core.VideoDetails, offset time.Duration) ([]byte, error) {
	if f.failAt[offset] {
		return nil, errors.New("decode error")
	}
	return []byte(fmt.Sprintf("%s@%s", video.VideoID, offset)), nil
}

type fakeDetector struct {
	detections func(image []byte) []core.Detection
	err        error
}

func (f *fakeDetector) Detect(_ context.Context, image []byte) ([]core.Detection, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.detections == nil {
		return []core.Detection{{Label: "pan", Confidence: 0.9}}, nil
	}
	return f.detections(image), nil
}

func testVideo(seconds float64) *core.VideoDetails {
	return &core.VideoDetails{
		VideoID:         "vid-1",
		Title:           "Paneer tikka on the stovetop",
		DurationSeconds: seconds,
		MediaRef:        "media/vid-1.mp4",
	}
}

func TestSampleOffsets(t *testing.T) {
	offsets := SampleOffsets(60, 3*time.Second)
	require.Len(t, offsets, 20, "a 60s video at 3s interval yields 20 frames")
	assert.Equal(t, time.Duration(0), offsets[0])
	assert.Equal(t, 57*time.Second, offsets[19])

	assert.Len(t, SampleOffsets(2, 3*time.Second), 1, "short videos still get the opening frame")
	assert.Nil(t, SampleOffsets(0, 3*time.Second))
	assert.Nil(t, SampleOffsets(60, 0))
}

func TestProcessKeepsQualifyingFramesInOrder(t *testing.T) {
	branch, err := New(&fakeExtractor{}, &fakeDetector{}, WithWorkers(4))
	require.NoError(t, err)
	defer branch.Release()

	frames, err := branch.Process(context.Background(), testVideo(60))
	require.NoError(t, err)
	require.Len(t, frames, 20)

	for i, frame := range frames {
		assert.Equal(t, i, frame.FrameIndex)
		assert.Equal(t, time.Duration(i)*3*time.Second, frame.Timestamp)
		assert.Equal(t, "vid-1", frame.VideoID)
	}
}

func TestProcessFiltersByConfidence(t *testing.T) {
	detector := &fakeDetector{detections: func([]byte) []core.Detection {
		return []core.Detection{
			{Label: "pan", Confidence: 0.95},
			{Label: "onion", Confidence: 0.4},
		}
	}}
	branch, err := New(&fakeExtractor{}, detector, WithConfidence(0.6))
	require.NoError(t, err)
	defer branch.Release()

	frames, err := branch.Process(context.Background(), testVideo(9))
	require.NoError(t, err)
	require.Len(t, frames, 3)
	for _, frame := range frames {
		require.Len(t, frame.Detections, 1)
		assert.Equal(t, "pan", frame.Detections[0].Label)
	}
}

func TestProcessDropsFramesWithoutDetections(t *testing.T) {
	detector := &fakeDetector{detections: func([]byte) []core.Detection {
		return []core.Detection{{Label: "blur", Confidence: 0.2}}
	}}
	branch, err := New(&fakeExtractor{}, detector)
	require.NoError(t, err)
	defer branch.Release()

	frames, err := branch.Process(context.Background(), testVideo(60))
	require.NoError(t, err)
	assert.Empty(t, frames, "no frame may be stored when every detection is below threshold")
}

func TestProcessSkipsFailedFrames(t *testing.T) {
	extractor := &fakeExtractor{failAt: map[time.Duration]bool{
		3 * time.Second: true,
		6 * time.Second: true,
	}}
	branch, err := New(extractor, &fakeDetector{})
	require.NoError(t, err)
	defer branch.Release()

	frames, err := branch.Process(context.Background(), testVideo(15))
	require.NoError(t, err)
	require.Len(t, frames, 3, "failing frames are skipped, not fatal")

	indexes := []int{frames[0].FrameIndex, frames[1].FrameIndex, frames[2].FrameIndex}
	assert.Equal(t, []int{0, 3, 4}, indexes)
}

func TestProcessDetectorErrorSkipsFrame(t *testing.T) {
	branch, err := New(&fakeExtractor{}, &fakeDetector{err: errors.New("model not loaded")})
	require.NoError(t, err)
	defer branch.Release()

	frames, err := branch.Process(context.Background(), testVideo(9))
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestProcessCanceledContext(t *testing.T) {
	branch, err := New(&fakeExtractor{}, &fakeDetector{})
	require.NoError(t, err)
	defer branch.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = branch.Process(ctx, testVideo(60))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewValidatesDependencies(t *testing.T) {
	_, err := New(nil, &fakeDetector{})
	assert.ErrorIs(t, err, ErrExtractorRequired)

	_, err = New(&fakeExtractor{}, nil)
	assert.ErrorIs(t, err, ErrDetectorRequired)
}
