/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package schema assembles checks into an ordered CheckSet, runs them
// against a frame, and aggregates their outcomes into a ValidationResult.
//
// # Evaluation
//
// Validate runs every check in insertion order. Nothing short-circuits: the
// goal is a complete report in one pass, not fail-fast. A check targeting a
// column that does not exist degrades to a message (with a nearest-name
// suggestion when one is close) and contributes no row faults. Failures from
// warn-only checks land in the warnings list and never affect validity, but
// their fault rows remain recoverable.
//
// # Building
//
// Builder is an explicit accumulator: declare columns and table rules one at
// a time, then Build an immutable CheckSet.
//
//	set, err := schema.NewBuilder().
//		Column("id").
//		Column("score", schema.Typed(check.KindFloat), schema.Min(0), schema.Max(1)).
//		Unique().
//		OnlyDefinedColumns().
//		Build()
//
// # Persistence
//
// A CheckSet round-trips through a YAML Document in which every check is a
// kind tag plus parameters. Custom predicate checks are restored by name
// from a caller-owned Registry passed explicitly to Load; there is no
// process-wide function registry.
package schema
