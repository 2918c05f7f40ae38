// Package storage defines the persistence interfaces of the curation
// pipeline and shared serialization helpers.
//
// Three stores make up the sink:
//
//   - ItemStore persists content items, both curated and rejected-for-audit,
//     keyed by their content-derived ID. Writes are idempotent: re-ingesting
//     the same source record overwrites the same key instead of duplicating.
//   - FrameStore persists the video frames the vision branch kept.
//   - SnapshotStore persists the similarity index snapshot between runs.
//
// Implementations must be safe for concurrent use. The badger subpackage
// provides the BadgerDB-backed implementation.
package storage
