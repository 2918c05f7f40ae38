// Package ingest provides the concurrent ingestion front of the curation
// pipeline.
//
// The Orchestrator type fans configured targets out over a worker pool,
// fetching each through its source adapter with:
//   - A per-domain politeness delay shared by all workers
//   - A per-call timeout
//   - Exponential-backoff retries for transient failures
//
// Raw records are normalized into ContentItems before being handed to the
// rest of the pipeline. A target that exhausts its retries is reported in its
// result and never blocks sibling targets.
package ingest
