// Package mock provides a test double for the source.Adapter interface.
//
// The mock adapter lets tests control exactly which records a target yields
// and which errors a fetch produces, including per-call error sequences for
// exercising the orchestrator's retry behavior.
package mock

import (
	"context"
	"sync"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
)

// MockAdapter is a test double for source.Adapter.
// It allows custom behavior injection via function fields.
type MockAdapter struct {
	// SourceType is reported by Source. Defaults to core.SourceSite.
	SourceType core.SourceType

	// FetchFunc is called by Fetch if set.
	// If nil, Records and Errs drive the default behavior.
	FetchFunc func(ctx context.Context, target source.Target) ([]source.RawRecord, error)

	// Records maps target URL to the records Fetch returns for it.
	Records map[string][]source.RawRecord

	// Errs maps target URL to a sequence of errors; each Fetch for that URL
	// consumes one entry, and a nil entry (or an exhausted sequence) means
	// success. This models transient failures that clear up on retry.
	Errs map[string][]error

	mu        sync.Mutex
	callCount int
	calls     map[string]int
}

// NewMockAdapter creates a mock adapter serving the given source type.
func NewMockAdapter(sourceType core.SourceType) *MockAdapter {
	return &MockAdapter{
		SourceType: sourceType,
		Records:    make(map[string][]source.RawRecord),
		Errs:       make(map[string][]error),
		calls:      make(map[string]int),
	}
}

// Source reports the configured source type.
func (m *MockAdapter) Source() core.SourceType {
	return m.SourceType
}

// Fetch returns the configured records or the next configured error for the
// target. Safe for concurrent use.
func (m *MockAdapter) Fetch(ctx context.Context, target source.Target) ([]source.RawRecord, error) {
	m.mu.Lock()
	m.callCount++
	call := m.calls[target.URL]
	m.calls[target.URL] = call + 1
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, target)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	errs := m.Errs[target.URL]
	records := m.Records[target.URL]
	m.mu.Unlock()

	if call < len(errs) && errs[call] != nil {
		return nil, errs[call]
	}
	return records, nil
}

// CallCount returns the total number of Fetch calls.
func (m *MockAdapter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// CallsFor returns the number of Fetch calls made for a target URL.
func (m *MockAdapter) CallsFor(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}
