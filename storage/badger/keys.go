package badger

import (
	"encoding/binary"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

// Key prefixes for different data types
const (
	itemPrefix     = "curitem"
	framePrefix    = "curfrm"
	snapshotKeyStr = "cursnap:index"
)

// makeItemKey generates a key for a content item by ID. The ID is written
// in BigEndian order so lexicographic key order matches numeric ID order.
func makeItemKey(id core.ID) []byte {
	prefix := itemPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeFrameKey generates a composite key for a video frame.
// Format: prefix:videoID:frameIndex
func makeFrameKey(videoID string, frameIndex int) []byte {
	prefix := framePrefix + ":" + videoID + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(frameIndex))
	return buf
}

// makeFramePrefix generates the key prefix covering all frames of a video.
func makeFramePrefix(videoID string) []byte {
	return []byte(framePrefix + ":" + videoID + ":")
}

// snapshotKey is the single key the similarity index snapshot lives under.
func snapshotKey() []byte {
	return []byte(snapshotKeyStr)
}
