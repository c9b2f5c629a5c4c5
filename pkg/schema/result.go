/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"
	"strings"

	"github.com/framecheck/framecheck/pkg/check"
	"github.com/framecheck/framecheck/pkg/frame"
	"github.com/framecheck/framecheck/pkg/header"
)

// ValidationResult is the aggregated outcome of running a CheckSet against a
// frame: ordered error and warning messages plus the per-severity row-fault
// sets needed to recover offending rows. It is constructed once per Validate
// call and immutable afterwards.
type ValidationResult struct {
	errors   []string
	warnings []string

	errorRows   check.RowSet
	warningRows check.RowSet
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		errorRows:   check.NewRowSet(),
		warningRows: check.NewRowSet(),
	}
}

// IsValid reports whether validation passed. Warnings never affect validity.
func (r *ValidationResult) IsValid() bool {
	return len(r.errors) == 0
}

// Errors returns the error messages in evaluation order.
func (r *ValidationResult) Errors() []string {
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// Warnings returns the warning messages in evaluation order.
func (r *ValidationResult) Warnings() []string {
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Summary returns the line-oriented text report:
//
//	Validation PASSED|FAILED
//	<n> error(s), <m> warning(s)
//	Errors:
//	  - ...
//	Warnings:
//	  - ...
func (r *ValidationResult) Summary() string {
	verdict := "PASSED"
	if !r.IsValid() {
		verdict = "FAILED"
	}

	lines := []string{
		fmt.Sprintf("Validation %s", verdict),
		fmt.Sprintf("%d error(s), %d warning(s)", len(r.errors), len(r.warnings)),
	}
	if len(r.errors) > 0 {
		lines = append(lines, "Errors:")
		for _, e := range r.errors {
			lines = append(lines, "  - "+e)
		}
	}
	if len(r.warnings) > 0 {
		lines = append(lines, "Warnings:")
		for _, w := range r.warnings {
			lines = append(lines, "  - "+w)
		}
	}
	return strings.Join(lines, "\n")
}

// InvalidRows returns the subset of the frame's rows flagged by any
// error-severity check, plus warning-severity rows when includeWarnings is
// set. Row order is preserved from the original frame. The frame must be
// the one used during validation; indices outside it are an error.
func (r *ValidationResult) InvalidRows(f *frame.Frame, includeWarnings bool) (*frame.Frame, error) {
	if f == nil {
		return nil, fmt.Errorf("frame cannot be nil")
	}

	faults := check.NewRowSet()
	faults.Union(r.errorRows)
	if includeWarnings {
		faults.Union(r.warningRows)
	}

	sub, err := f.Select(faults.Sorted())
	if err != nil {
		return nil, fmt.Errorf("failing indices not found in provided frame, "+
			"make sure it is the frame used during validation: %w", err)
	}
	return sub, nil
}

// Err returns nil when validation passed, or one aggregated error carrying
// the completed error list. It never fires mid-evaluation; callers wanting
// fail-fast behavior check it after Validate returns.
func (r *ValidationResult) Err() error {
	if r.IsValid() {
		return nil
	}
	return fmt.Errorf("validation failed with %d error(s):\n  - %s",
		len(r.errors), strings.Join(r.errors, "\n  - "))
}

// Report is the structured, serializable view of a ValidationResult.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	IsValid      bool     `json:"is_valid" yaml:"is_valid"`
	ErrorCount   int      `json:"error_count" yaml:"error_count"`
	WarningCount int      `json:"warning_count" yaml:"warning_count"`
	Errors       []string `json:"errors" yaml:"errors"`
	Warnings     []string `json:"warnings" yaml:"warnings"`
}

// Report returns the structured view of the result.
func (r *ValidationResult) Report() *Report {
	rep := &Report{
		IsValid:      r.IsValid(),
		ErrorCount:   len(r.errors),
		WarningCount: len(r.warnings),
		Errors:       r.Errors(),
		Warnings:     r.Warnings(),
	}
	rep.Header.Set(KindValidationResult)
	return rep
}

// Summary renders the report in the same line-oriented format as
// ValidationResult.Summary.
func (rep *Report) Summary() string {
	r := &ValidationResult{errors: rep.Errors, warnings: rep.Warnings}
	return r.Summary()
}
