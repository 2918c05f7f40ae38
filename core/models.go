package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing so that re-ingesting the same
// source record always produces the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ItemID derives the stable identifier of a content item from its source
// type and source-local identifier.
func ItemID(source SourceType, sourceID string) ID {
	return IDFromContent(source.String() + ":" + sourceID)
}

// SourceType identifies the broad family a content item was ingested from.
// Duplicate comparisons are scoped to items of the same family.
type SourceType int

const (
	// SourceSite represents recipe websites.
	SourceSite SourceType = iota + 1
	// SourceVideo represents video platforms.
	SourceVideo
	// SourceSocial represents social media accounts and hashtags.
	SourceSocial
	// SourceForum represents forum and Q&A communities.
	SourceForum
)

// String returns the canonical lowercase name of the source type.
func (s SourceType) String() string {
	switch s {
	case SourceSite:
		return "site"
	case SourceVideo:
		return "video"
	case SourceSocial:
		return "social"
	case SourceForum:
		return "forum"
	default:
		return fmt.Sprintf("sourcetype(%d)", int(s))
	}
}

// ParseSourceType parses a canonical source type name.
func ParseSourceType(s string) (SourceType, error) {
	switch s {
	case "site":
		return SourceSite, nil
	case "video":
		return SourceVideo, nil
	case "social":
		return SourceSocial, nil
	case "forum":
		return SourceForum, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSourceType, s)
	}
}

// Status tracks a content item through the pipeline. Transitions are
// monotonic and one-directional; a rejected item never re-enters the
// pipeline.
type Status int

const (
	// StatusIngested means the item has been normalized from a raw record.
	StatusIngested Status = iota + 1
	// StatusValidated means the item passed the structural validation gate.
	StatusValidated
	// StatusDeduplicated means the item was admitted into the similarity index.
	StatusDeduplicated
	// StatusTagged means the item received topical tags from its batch cluster.
	StatusTagged
	// StatusStored means the item was persisted by the storage sink.
	StatusStored
	// StatusRejected is terminal; the rejection reason is recorded on the item.
	StatusRejected
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIngested:
		return "ingested"
	case StatusValidated:
		return "validated"
	case StatusDeduplicated:
		return "deduplicated"
	case StatusTagged:
		return "tagged"
	case StatusStored:
		return "stored"
	case StatusRejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// CanAdvanceTo reports whether next is a legal transition from s.
// Rejection is allowed from any non-terminal state; otherwise only the
// immediate successor is legal.
func (s Status) CanAdvanceTo(next Status) bool {
	if s == StatusRejected || s == StatusStored {
		return false
	}
	if next == StatusRejected {
		return true
	}
	return next == s+1
}

// RejectReason enumerates why an item was dropped from the pipeline.
type RejectReason int

const (
	// ReasonNone marks an item that has not been rejected.
	ReasonNone RejectReason = iota
	// ReasonTooShort means a text field is below its minimum length.
	ReasonTooShort
	// ReasonTooLong means a text field exceeds its maximum length.
	ReasonTooLong
	// ReasonCountOutOfRange means a list field has too few or too many elements.
	ReasonCountOutOfRange
	// ReasonUnsupportedLanguage means the detected language is not in the accepted set.
	ReasonUnsupportedLanguage
	// ReasonDuplicate means the item is a near-duplicate of an already admitted item.
	ReasonDuplicate
)

// String returns a human-readable reason name.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTooShort:
		return "too_short"
	case ReasonTooLong:
		return "too_long"
	case ReasonCountOutOfRange:
		return "count_out_of_range"
	case ReasonUnsupportedLanguage:
		return "unsupported_language"
	case ReasonDuplicate:
		return "duplicate"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// ContentItem is the normalized shape every raw record takes before flowing
// through the pipeline. The variant payload (Recipe, Contextual, Video) is
// discriminated by Source; shared fields live on the item itself.
type ContentItem struct {
	Id          ID
	Source      SourceType
	SourceID    string
	RawText     string // title + body concatenation used for dedup and tagging
	Language    string // detected code: "en", "hi", "hi-en" or "unknown"
	Tags        []string
	Metadata    map[string]string // author, url, timestamp, engagement counts
	Status      Status
	Reason      RejectReason
	DuplicateOf ID // set when Reason is ReasonDuplicate
	IngestedAt  time.Time

	Recipe     *RecipeEntry
	Contextual *ContextualEntry
	Video      *VideoDetails
}

// Advance moves the item to the next status. It returns an error for any
// transition that would violate the monotonic lifecycle.
func (c *ContentItem) Advance(next Status) error {
	if !c.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, next)
	}
	c.Status = next
	return nil
}

// Reject terminally rejects the item with the given reason.
func (c *ContentItem) Reject(reason RejectReason) {
	c.Status = StatusRejected
	c.Reason = reason
}

// RejectDuplicate terminally rejects the item as a near-duplicate of the
// already admitted item identified by original.
func (c *ContentItem) RejectDuplicate(original ID) {
	c.Status = StatusRejected
	c.Reason = ReasonDuplicate
	c.DuplicateOf = original
}

// RecipeEntry is the structured payload of a recipe-site item.
type RecipeEntry struct {
	Title        string
	Ingredients  []string
	Instructions []string
}

// ContextualEntry is the structured payload of a forum or social Q&A item.
type ContextualEntry struct {
	Question string
	Answer   string
}

// VideoDetails is the structured payload of a video item.
type VideoDetails struct {
	VideoID         string
	Title           string
	DurationSeconds float64
	MediaRef        string // reference the frame extractor resolves to media
}

// Detection is a single labeled object found in a video frame.
type Detection struct {
	Label      string
	Confidence float64
}

// VideoFrame is a sampled frame with its qualifying detections. Frames with
// no detections above the confidence threshold are never persisted.
type VideoFrame struct {
	VideoID    string
	FrameIndex int
	Timestamp  time.Duration // offset from the start of the video
	Detections []Detection
}

// FrameID derives the stable identifier the storage sink keys the frame by.
func (f *VideoFrame) FrameID() ID {
	return IDFromContent(fmt.Sprintf("%s:%d", f.VideoID, f.FrameIndex))
}
