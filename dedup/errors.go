package dedup

import "errors"

// Index errors
var (
	// ErrIndexCorrupted indicates a snapshot that cannot be decoded. Restoring
	// must fail rather than silently start from an empty index, because an
	// empty index would re-admit every duplicate of the previous runs.
	ErrIndexCorrupted = errors.New("similarity index snapshot corrupted")
)
