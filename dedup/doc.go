// Package dedup implements near-duplicate detection over an in-memory
// similarity index.
//
// Each admitted item contributes a weighted term vector; an incoming item is
// compared against existing entries of the same source family using cosine
// similarity, and rejected as a duplicate when its best match meets the
// configured threshold. Candidate lookup goes through per-token posting
// lists, so an item is only compared against entries it shares at least one
// token with.
//
// Admission is serialized by a single mutex covering both the query and the
// insert, which makes the outcome of concurrent admissions well defined: the
// first item to acquire the lock wins, the later near-duplicate is rejected.
//
// The index can be snapshotted to bytes and restored, allowing duplicate
// detection to span pipeline runs.
package dedup
