package vision

import "errors"

// Branch errors
var (
	// ErrExtractorRequired indicates the branch was built without a frame extractor.
	ErrExtractorRequired = errors.New("frame extractor is required")

	// ErrDetectorRequired indicates the branch was built without a detector.
	ErrDetectorRequired = errors.New("detector is required")
)
