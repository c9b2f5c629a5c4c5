/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package check defines the unit of validation: a Check evaluates one rule
// against a frame and answers which rows (if any) violate it and what
// message describes the violation.
//
// # Variants
//
// Column-scoped checks target a single named column:
//   - Int, Float, Bool, Datetime: type conformance plus optional bounds
//   - Regex, InSet, NotInSet, Equals: value constraints
//   - NotNull, Exists: presence constraints
//   - ValueFuncCheck: caller-supplied per-value predicate
//
// Table-scoped checks inspect the whole frame:
//   - IsEmpty, NotEmpty, RowCount: cardinality
//   - ColumnsAre, DefinedColumnsOnly: column-set exactness
//   - Unique: row uniqueness under an optional column key
//   - RowFuncCheck: caller-supplied per-row predicate
//   - NoNulls: global null scan over matched columns
//
// # Severity
//
// Every variant carries a WarnOnly flag. Warn-only failures are reported as
// warnings and never affect validity, but their fault rows are still
// recorded so warning-level rows can be recovered.
//
// # Contract
//
// Checks are immutable plain data and produce the same Outcome for the same
// frame. Evaluation never mutates the frame and never panics: a panic in a
// caller-supplied predicate counts as a failing value or row, and
// configuration defects (bad regex, unparseable bound) degrade to failure
// messages.
package check
