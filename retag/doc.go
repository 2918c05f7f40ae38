// Package retag recomputes the topical tags of every stored content item.
//
// Tag quality depends on the corpus: TF-IDF weights shift as the stored
// collection grows, so tags assigned early can drift out of date. The
// Retagger loads the stored items, runs the tagging engine over the full
// collection at once, and writes the refreshed items back in batches with
// progress reporting and retry on storage failures.
package retag
