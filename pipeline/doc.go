// Package pipeline drives a full curation run: fetch targets through the
// ingestion orchestrator, validate the normalized items, screen them against
// the similarity index, tag the survivors and persist everything through the
// storage sink. Validated video items additionally flow through the vision
// branch, whose qualifying frames are stored alongside the items.
//
// Rejected items are persisted too, with their rejection reason, so a run
// can be audited after the fact.
package pipeline
