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


package tagging

import (
	"log/slog"
	"math"
	"sort"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/textutil"
)

// Cluster is one topical group found in a batch.
type Cluster struct {
	Items       []*core.ContentItem
	TopKeywords []string
}

// Engine tags batches of items using TF-IDF clustering.
type Engine struct {
	maxTags          int
	minWordLength    int
	topKeywords      int
	clusterThreshold float64
	logger           *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxTags caps the tags assigned to a single item. Default is 10.
func WithMaxTags(n int) Option {
	return func(e *Engine) {
		e.maxTags = n
	}
}

// WithMinWordLength sets the minimum token length. Default is 3.
func WithMinWordLength(n int) Option {
	return func(e *Engine) {
		e.minWordLength = n
	}
}

// WithTopKeywords sets how many keywords each cluster contributes.
// Default is 5.
func WithTopKeywords(n int) Option {
	return func(e *Engine) {
		e.topKeywords = n
	}
}

// WithClusterThreshold sets the centroid similarity an item needs to join an
// existing cluster instead of founding its own. Default is 0.3.
func WithClusterThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.clusterThreshold = threshold
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// New creates a tagging engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxTags:          10,
		minWordLength:    3,
		topKeywords:      5,
		clusterThreshold: 0.3,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tag clusters the batch, assigns tags in place and advances each item to
// the tagged status. It returns the clusters for inspection and reporting.
// An empty batch yields no clusters.
func (e *Engine) Tag(items []*core.ContentItem) []Cluster {
	if len(items) == 0 {
		return nil
	}

	vectors := e.vectorize(items)
	groups := e.cluster(vectors)

	clusters := make([]Cluster, 0, len(groups))
	for _, group := range groups {
		keywords := group.topKeywords(e.topKeywords)
		cluster := Cluster{TopKeywords: keywords}
		for _, member := range group.members {
			item := items[member]
			item.Tags = e.rankTags(keywords, vectors[member])
			switch item.Status {
			case core.StatusTagged, core.StatusStored:
				// Retagging keeps the current lifecycle position.
			default:
				if err := item.Advance(core.StatusTagged); err != nil {
					e.logger.Warn("item not advanced to tagged",
						"id", uint64(item.Id), "status", item.Status.String(), "err", err)
				}
			}
			cluster.Items = append(cluster.Items, item)
		}
		clusters = append(clusters, cluster)
	}

	e.logger.Info("batch tagged", "items", len(items), "clusters", len(clusters))
	return clusters
}

type weighted struct {
	weights map[string]float64
	norm    float64
}

// vectorize computes the TF-IDF weight vector of every item against the
// batch vocabulary.
func (e *Engine) vectorize(items []*core.ContentItem) []weighted {
	tfs := make([]map[string]int, len(items))
	df := make(map[string]int)
	for i, item := range items {
		tfs[i] = textutil.TermFreq(textutil.Tokenize(item.RawText, e.minWordLength))
		for term := range tfs[i] {
			df[term]++
		}
	}

	n := float64(len(items))
	vectors := make([]weighted, len(items))
	for i, tf := range tfs {
		weights := make(map[string]float64, len(tf))
		var sumSquares float64
		for term, count := range tf {
			w := (1 + math.Log(float64(count))) * (math.Log(n/float64(df[term])) + 1)
			weights[term] = w
			sumSquares += w * w
		}
		vectors[i] = weighted{weights: weights, norm: math.Sqrt(sumSquares)}
	}
	return vectors
}

// group is a cluster under construction: member indexes plus the running sum
// of their weight vectors, which serves as the centroid.
type group struct {
	members []int
	sum     map[string]float64
	norm    float64
}

// cluster greedily assigns items in batch order: each item joins the most
// similar existing cluster above the threshold or founds a new one. The
// fixed visit order makes the outcome deterministic.
func (e *Engine) cluster(vectors []weighted) []*group {
	var groups []*group
	for i, vec := range vectors {
		var (
			best    *group
			bestSim float64
		)
		for _, g := range groups {
			sim := centroidCosine(g, vec)
			if sim > bestSim {
				best, bestSim = g, sim
			}
		}
		if best != nil && bestSim >= e.clusterThreshold {
			best.add(i, vec)
			continue
		}
		g := &group{sum: make(map[string]float64)}
		g.add(i, vec)
		groups = append(groups, g)
	}
	return groups
}

func (g *group) add(i int, vec weighted) {
	g.members = append(g.members, i)
	for term, w := range vec.weights {
		g.sum[term] += w
	}
	var sumSquares float64
	for _, w := range g.sum {
		sumSquares += w * w
	}
	g.norm = math.Sqrt(sumSquares)
}

// topKeywords returns the n highest-weighted centroid terms, ties broken
// lexicographically.
func (g *group) topKeywords(n int) []string {
	terms := make([]string, 0, len(g.sum))
	for term := range g.sum {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool {
		wa, wb := g.sum[terms[a]], g.sum[terms[b]]
		if wa != wb {
			return wa > wb
		}
		return terms[a] < terms[b]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

func centroidCosine(g *group, vec weighted) float64 {
	if g.norm == 0 || vec.norm == 0 {
		return 0
	}
	var dot float64
	for term, w := range vec.weights {
		if cw, ok := g.sum[term]; ok {
			dot += w * cw
		}
	}
	return dot / (g.norm * vec.norm)
}

// rankTags orders the cluster keywords by the item's own weight for each,
// keeping the cluster ranking as tie-break, and caps the result at maxTags.
func (e *Engine) rankTags(keywords []string, vec weighted) []string {
	ranked := make([]string, len(keywords))
	copy(ranked, keywords)
	sort.SliceStable(ranked, func(a, b int) bool {
		return vec.weights[ranked[a]] > vec.weights[ranked[b]]
	})
	if len(ranked) > e.maxTags {
		ranked = ranked[:e.maxTags]
	}
	return ranked
}
