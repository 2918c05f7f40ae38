// Package core defines the domain model of the curation pipeline: content
// items and their variant payloads, the item lifecycle, validation rules and
// the binary serialization used by the storage sink.
package core
