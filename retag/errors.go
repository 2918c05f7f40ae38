package retag

import "errors"

var (
	// ErrStoreRequired is returned when no item store is provided
	ErrStoreRequired = errors.New("item store is required")
	// ErrEngineRequired is returned when no tagging engine is provided
	ErrEngineRequired = errors.New("tagging engine is required")
)
