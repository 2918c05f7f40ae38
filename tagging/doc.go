// Package tagging assigns topical tags to batches of content items.
//
// The engine computes TF-IDF weights over the batch vocabulary, groups items
// by greedy centroid clustering, derives each cluster's top keywords, and
// tags every item with the cluster keywords it weights highest. Tagging is
// deterministic: the same batch in the same order always produces the same
// clusters and the same tags.
package tagging
