package pipeline

import "errors"

var (
	// ErrOrchestratorRequired is returned when no ingestion orchestrator is provided
	ErrOrchestratorRequired = errors.New("ingestion orchestrator is required")
	// ErrIndexRequired is returned when no similarity index is provided
	ErrIndexRequired = errors.New("similarity index is required")
	// ErrEngineRequired is returned when no tagging engine is provided
	ErrEngineRequired = errors.New("tagging engine is required")
	// ErrItemStoreRequired is returned when no item store is provided
	ErrItemStoreRequired = errors.New("item store is required")
	// ErrFrameStoreRequired is returned when a vision branch is configured without a frame store
	ErrFrameStoreRequired = errors.New("frame store is required when the vision branch is enabled")
)
