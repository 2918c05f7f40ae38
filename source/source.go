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


// Package source defines the adapter contract every content source
// implements, plus the transient/permanent error taxonomy the orchestrator
// bases its retry decisions on.
package source

import (
	"context"
	"net/url"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

// Target is one unit of ingestion work: a single URL of a named source group.
type Target struct {
	Source core.SourceType
	Name   string // config group name, e.g. "indian"
	URL    string
}

// Domain returns the host the politeness throttle keys on. A target whose
// URL does not parse throttles under the raw URL string instead.
func (t Target) Domain() string {
	u, err := url.Parse(t.URL)
	if err != nil || u.Host == "" {
		return t.URL
	}
	return u.Host
}

// RawRecord is the unnormalized record an adapter emits. Which fields are
// populated depends on the source type; the orchestrator normalizes records
// into ContentItems.
type RawRecord struct {
	SourceID string // source-local identifier, unique within the source type
	Title    string
	Body     string

	// Q&A payload for forum and social records.
	Question string
	Answer   string

	// Recipe payload for site records.
	Ingredients  []string
	Instructions []string

	// Video payload.
	MediaRef        string
	DurationSeconds float64

	Metadata map[string]string
}

// Adapter fetches raw records from one source type. Implementations must be
// safe for concurrent Fetch calls; the orchestrator runs targets in parallel.
type Adapter interface {
	// Source reports which source type the adapter serves.
	Source() core.SourceType

	// Fetch retrieves the records behind target. Errors should be wrapped
	// with Transient or Permanent so the orchestrator can decide whether
	// to retry; an unwrapped error is treated as permanent.
	Fetch(ctx context.Context, target Target) ([]RawRecord, error)
}
