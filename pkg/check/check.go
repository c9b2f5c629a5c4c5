/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package check

import (
	"sort"

	"github.com/framecheck/framecheck/pkg/frame"
)

// Severity classifies a check's failures as validity-breaking errors or
// report-only warnings.
type Severity string

const (
	// SeverityError marks failures that make the table invalid.
	SeverityError Severity = "error"

	// SeverityWarning marks failures that are reported but do not affect
	// validity.
	SeverityWarning Severity = "warning"
)

// IsWarning reports whether the severity is warning-level.
func (s Severity) IsWarning() bool {
	return s == SeverityWarning
}

// Kind identifies a check variant. Kinds double as the tag used when a
// check is persisted to a document.
type Kind string

const (
	KindInt                Kind = "int"
	KindFloat              Kind = "float"
	KindBool               Kind = "bool"
	KindDatetime           Kind = "datetime"
	KindRegex              Kind = "regex"
	KindInSet              Kind = "in_set"
	KindNotInSet           Kind = "not_in_set"
	KindEquals             Kind = "equals"
	KindNotNull            Kind = "not_null"
	KindExists             Kind = "exists"
	KindValueFunc          Kind = "function"
	KindIsEmpty            Kind = "is_empty"
	KindNotEmpty           Kind = "not_empty"
	KindRowCount           Kind = "row_count"
	KindColumnsAre         Kind = "columns_are"
	KindDefinedColumnsOnly Kind = "only_defined_columns"
	KindUnique             Kind = "unique"
	KindRowFunc            Kind = "custom"
	KindNoNulls            Kind = "no_nulls"
)

// ValueFunc is a caller-supplied predicate over a single cell value.
// A panic during evaluation is treated as a failing value.
type ValueFunc func(v any) bool

// RowFunc is a caller-supplied predicate over a full row.
// A panic during evaluation is treated as a failing row.
type RowFunc func(row frame.Row) bool

// RowSet is a set of positional row indices flagged by a check.
type RowSet map[int]struct{}

// NewRowSet creates a RowSet holding the given indices.
func NewRowSet(indices ...int) RowSet {
	s := make(RowSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Add inserts an index into the set.
func (s RowSet) Add(i int) {
	s[i] = struct{}{}
}

// Union inserts every index from other into the set.
func (s RowSet) Union(other RowSet) {
	for i := range other {
		s[i] = struct{}{}
	}
}

// Has reports whether the index is in the set.
func (s RowSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Len returns the number of indices in the set.
func (s RowSet) Len() int {
	return len(s)
}

// Sorted returns the indices in ascending order.
func (s RowSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Outcome is the result of evaluating one check against one frame: zero or
// more human-readable failure messages plus the exact set of rows at fault.
// Table-wide defects (cardinality, column-set mismatches) carry messages
// with an empty row set.
type Outcome struct {
	Messages []string
	Rows     RowSet
}

// Check is the unit of validation. Implementations are immutable plain data
// and produce the same Outcome for the same frame; evaluation never mutates
// the frame.
type Check interface {
	Kind() Kind
	Severity() Severity
	Evaluate(f *frame.Frame) Outcome
}

// ColumnScoped is implemented by checks that target a single named column.
// The CheckSet uses it to report missing columns without evaluating.
type ColumnScoped interface {
	Check
	ColumnName() string
}

// severity maps the warn-only flag carried by every variant to a Severity.
func severity(warnOnly bool) Severity {
	if warnOnly {
		return SeverityWarning
	}
	return SeverityError
}
