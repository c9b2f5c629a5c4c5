/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/framecheck/framecheck/pkg/check"
	"github.com/framecheck/framecheck/pkg/frame"
)

const (
	// APIVersion is the API version for validation results.
	APIVersion = "framecheck.io/v1alpha1"

	// KindValidationResult is the kind for validation results.
	KindValidationResult = "ValidationResult"

	// KindCheckSet is the kind for persisted check set documents.
	KindCheckSet = "CheckSet"
)

// maxSuggestionDistance bounds how far a column name may be from an existing
// one before "did you mean" suggestions are suppressed.
const maxSuggestionDistance = 2

// CheckSet is an ordered, immutable collection of checks. Insertion order is
// preserved and determines the order messages appear in the final report.
type CheckSet struct {
	checks []check.Check
}

// New creates a CheckSet from the given checks, preserving their order.
func New(checks ...check.Check) *CheckSet {
	s := &CheckSet{checks: make([]check.Check, len(checks))}
	copy(s.checks, checks)
	return s
}

// Len returns the number of checks in the set.
func (s *CheckSet) Len() int {
	return len(s.checks)
}

// Checks returns a copy of the checks in insertion order.
func (s *CheckSet) Checks() []check.Check {
	out := make([]check.Check, len(s.checks))
	copy(out, s.checks)
	return out
}

// evaluation statuses for metrics
const (
	statusPassed  = "passed"
	statusFailed  = "failed"
	statusWarned  = "warned"
	statusSkipped = "skipped"
)

// Validate runs every check in insertion order against the frame and merges
// their outcomes into one ValidationResult. All checks run regardless of
// earlier failures; a check targeting a nonexistent column degrades to a
// message and is skipped for row-fault purposes. Neither the checks nor the
// frame are mutated.
func (s *CheckSet) Validate(ctx context.Context, f *frame.Frame) (*ValidationResult, error) {
	start := time.Now()

	if f == nil {
		return nil, fmt.Errorf("frame cannot be nil")
	}

	result := newValidationResult()

	for _, c := range s.checks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		status := evaluateCheck(c, f, result)
		checksEvaluatedTotal.WithLabelValues(status).Inc()
	}

	validateDuration.Observe(time.Since(start).Seconds())

	slog.Debug("validation completed",
		"checks", len(s.checks),
		"errors", len(result.errors),
		"warnings", len(result.warnings),
		"valid", result.IsValid(),
		"duration", time.Since(start))

	return result, nil
}

// evaluateCheck evaluates a single check and folds its outcome into the
// result, returning the metrics status.
func evaluateCheck(c check.Check, f *frame.Frame, result *ValidationResult) string {
	if cs, ok := c.(check.ColumnScoped); ok && !f.HasColumn(cs.ColumnName()) {
		msg := missingColumnMessage(cs.ColumnName(), c.Kind(), f.Columns())
		if c.Severity().IsWarning() {
			result.warnings = append(result.warnings, msg)
		} else {
			result.errors = append(result.errors, msg)
		}
		slog.Warn("skipping check - column not found",
			"column", cs.ColumnName(),
			"kind", c.Kind())
		return statusSkipped
	}

	out := c.Evaluate(f)
	if len(out.Messages) == 0 {
		return statusPassed
	}

	if c.Severity().IsWarning() {
		result.warnings = append(result.warnings, out.Messages...)
		result.warningRows.Union(out.Rows)
		return statusWarned
	}

	result.errors = append(result.errors, out.Messages...)
	result.errorRows.Union(out.Rows)
	return statusFailed
}

// missingColumnMessage describes a check whose target column is absent,
// suggesting the nearest existing column when one is close enough.
func missingColumnMessage(name string, kind check.Kind, columns []string) string {
	msg := fmt.Sprintf("Column '%s' does not exist in table.", name)
	if kind == check.KindExists {
		msg = fmt.Sprintf("Column '%s' is missing.", name)
	}

	if nearest, ok := nearestColumn(name, columns); ok {
		msg += fmt.Sprintf(" Did you mean '%s'?", nearest)
	}
	return msg
}

// nearestColumn finds the existing column closest to name by edit distance.
func nearestColumn(name string, columns []string) (string, bool) {
	best := ""
	bestDistance := maxSuggestionDistance + 1

	for _, candidate := range columns {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	return best, best != ""
}
