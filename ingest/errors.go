package ingest

import "errors"

// Orchestrator errors
var (
	// ErrAdapterRequired indicates the orchestrator was built without any source adapter.
	ErrAdapterRequired = errors.New("at least one source adapter is required")

	// ErrDuplicateAdapter indicates two adapters were registered for the same source type.
	ErrDuplicateAdapter = errors.New("duplicate adapter for source type")

	// ErrNoAdapterForSource indicates a target references a source type no adapter serves.
	ErrNoAdapterForSource = errors.New("no adapter registered for source type")
)
