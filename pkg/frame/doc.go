// Package frame provides the in-memory columnar table the validation engine
// consumes. A Frame has ordered, named columns of untyped values and 0-based
// positional row indices; nil values (and float NaNs) are null cells.
//
// Frames are immutable from the engine's point of view: checks only read
// columns and rows, and Select produces a new Frame rather than mutating the
// source. CSV input with light per-cell type inference is provided for
// callers that start from files.
package frame
