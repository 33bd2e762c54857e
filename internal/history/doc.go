// Package history persists the ordered batch log that makes organize runs
// reversible.
//
// The log is a single human-readable JSON document. Every mutation reads the
// whole document, applies the change, and rewrites it in full; the store is
// deliberately a last-writer-wins single-instance design. A missing or
// unparsable file loads as an empty history; the recovery is logged and
// exposed via Recovered so callers can tell the user, but it is never an
// error.
//
// Moves recorded within 60 seconds of the newest batch's timestamp join that
// batch; anything later (or any explicit StartBatch) opens a new batch with
// the next id. Batch ids increase strictly from 1.
package history
