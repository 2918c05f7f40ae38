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


package dedup

import (
	"log/slog"
	"math"
	"sync"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/textutil"
)

// Index is the similarity index duplicate detection runs against.
// Safe for concurrent use; mu covers both lookup and insert so that of two
// concurrent near-duplicates exactly one is admitted.
type Index struct {
	mu            sync.Mutex
	families      map[core.SourceType]*family
	threshold     float64
	minWordLength int
	logger        *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithThreshold sets the cosine similarity at or above which an item counts
// as a duplicate. Default is 0.9.
func WithThreshold(threshold float64) Option {
	return func(i *Index) {
		i.threshold = threshold
	}
}

// WithMinWordLength sets the minimum token length used when vectorizing.
// Default is 3.
func WithMinWordLength(length int) Option {
	return func(i *Index) {
		i.minWordLength = length
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
	}
}

// NewIndex creates an empty similarity index.
func NewIndex(opts ...Option) *Index {
	idx := &Index{
		families:      make(map[core.SourceType]*family),
		threshold:     0.9,
		minWordLength: 3,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Admit decides whether the item is novel. A novel item is inserted into the
// index and admitted; a near-duplicate is not inserted, and the ID of the
// original entry it collided with is returned.
//
// An item whose text yields no tokens cannot be compared, so it fails open:
// it is admitted without being indexed.
func (i *Index) Admit(item *core.ContentItem) (core.ID, bool) {
	vec := i.vectorize(item.RawText)
	if len(vec.weights) == 0 {
		i.logger.Warn("item has no indexable tokens, admitting without dedup",
			"id", uint64(item.Id),
			"source", item.Source.String())
		return 0, true
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	fam := i.families[item.Source]
	if fam == nil {
		fam = newFamily()
		i.families[item.Source] = fam
	}

	if original, sim, found := fam.bestMatch(vec); found && sim >= i.threshold {
		return original, false
	}

	fam.insert(item.Id, vec)
	return 0, true
}

// Len returns the number of indexed entries across all families.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	var n int
	for _, fam := range i.families {
		n += len(fam.entries)
	}
	return n
}

func (i *Index) vectorize(text string) vector {
	tf := textutil.TermFreq(textutil.Tokenize(text, i.minWordLength))
	weights := make(map[string]float64, len(tf))
	var sumSquares float64
	for term, count := range tf {
		// Log-scaled term frequency dampens long documents.
		w := 1 + math.Log(float64(count))
		weights[term] = w
		sumSquares += w * w
	}
	return vector{weights: weights, norm: math.Sqrt(sumSquares)}
}

// family holds the entries of one source type. Duplicate comparisons never
// cross families: a video about dal is not a duplicate of a dal recipe page.
type family struct {
	entries  map[core.ID]vector
	postings map[string][]core.ID
}

func newFamily() *family {
	return &family{
		entries:  make(map[core.ID]vector),
		postings: make(map[string][]core.ID),
	}
}

type vector struct {
	weights map[string]float64
	norm    float64
}

// bestMatch scans the entries sharing at least one token with vec and
// returns the most similar one.
func (f *family) bestMatch(vec vector) (core.ID, float64, bool) {
	seen := make(map[core.ID]bool)
	var (
		bestID  core.ID
		bestSim float64
		found   bool
	)
	for term := range vec.weights {
		for _, id := range f.postings[term] {
			if seen[id] {
				continue
			}
			seen[id] = true
			sim := cosine(vec, f.entries[id])
			if !found || sim > bestSim {
				bestID, bestSim, found = id, sim, true
			}
		}
	}
	return bestID, bestSim, found
}

func (f *family) insert(id core.ID, vec vector) {
	f.entries[id] = vec
	for term := range vec.weights {
		f.postings[term] = append(f.postings[term], id)
	}
}

func cosine(a, b vector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}
	// Iterate the smaller vector.
	if len(b.weights) < len(a.weights) {
		a, b = b, a
	}
	var dot float64
	for term, wa := range a.weights {
		if wb, ok := b.weights[term]; ok {
			dot += wa * wb
		}
	}
	return dot / (a.norm * b.norm)
}
