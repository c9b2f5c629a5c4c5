/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package check

import (
	"fmt"
	"sort"

	"github.com/framecheck/framecheck/pkg/frame"
)

// IsEmpty validates that the table has no rows. On failure every row is at
// fault, since the defect is the rows themselves.
type IsEmpty struct {
	WarnOnly bool
}

func (c IsEmpty) Kind() Kind         { return KindIsEmpty }
func (c IsEmpty) Severity() Severity { return severity(c.WarnOnly) }

func (c IsEmpty) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	if f.Len() > 0 {
		out.Messages = append(out.Messages, "Table is unexpectedly non-empty.")
		for i := 0; i < f.Len(); i++ {
			out.Rows.Add(i)
		}
	}
	return out
}

// NotEmpty validates that the table has at least one row. An empty table
// has no rows to attribute, so failure is message-only.
type NotEmpty struct {
	WarnOnly bool
}

func (c NotEmpty) Kind() Kind         { return KindNotEmpty }
func (c NotEmpty) Severity() Severity { return severity(c.WarnOnly) }

func (c NotEmpty) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	if f.Len() == 0 {
		out.Messages = append(out.Messages, "Table is unexpectedly empty.")
	}
	return out
}

// RowCount validates the table's cardinality: an exact row count, or
// inclusive Min/Max bounds. The defect is the count, not identifiable rows,
// so failures never attribute rows.
type RowCount struct {
	Exact    *int
	Min      *int
	Max      *int
	WarnOnly bool
}

func (c RowCount) Kind() Kind         { return KindRowCount }
func (c RowCount) Severity() Severity { return severity(c.WarnOnly) }

func (c RowCount) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	n := f.Len()

	switch {
	case c.Exact != nil && n != *c.Exact:
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Table has %d rows, expected exactly %d.", n, *c.Exact))
	case c.Exact == nil:
		if c.Min != nil && n < *c.Min {
			out.Messages = append(out.Messages, fmt.Sprintf(
				"Table has %d rows, expected at least %d.", n, *c.Min))
		}
		if c.Max != nil && n > *c.Max {
			out.Messages = append(out.Messages, fmt.Sprintf(
				"Table has %d rows, expected at most %d.", n, *c.Max))
		}
	}
	return out
}

// ColumnsAre validates the table's column names against an expected list.
// With Ordered set, a correct set in the wrong sequence is reported as an
// order mismatch distinct from missing/extra columns.
type ColumnsAre struct {
	Columns  []string
	Ordered  bool
	WarnOnly bool
}

func (c ColumnsAre) Kind() Kind         { return KindColumnsAre }
func (c ColumnsAre) Severity() Severity { return severity(c.WarnOnly) }

func (c ColumnsAre) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	actual := f.Columns()

	expected := make(map[string]struct{}, len(c.Columns))
	for _, name := range c.Columns {
		expected[name] = struct{}{}
	}
	present := make(map[string]struct{}, len(actual))
	for _, name := range actual {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range c.Columns {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	var extra []string
	for _, name := range actual {
		if _, ok := expected[name]; !ok {
			extra = append(extra, name)
		}
	}

	if len(missing) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf("Missing columns: %v.", missing))
	}
	if len(extra) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf("Unexpected columns: %v.", extra))
	}

	// Same set, wrong sequence.
	if c.Ordered && len(missing) == 0 && len(extra) == 0 && !equalSequence(actual, c.Columns) {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Columns are not in the expected order: got %v, want %v.", actual, c.Columns))
	}
	return out
}

func equalSequence(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DefinedColumnsOnly validates that the table has no columns beyond the
// declared set. Table-wide message only; no rows are at fault.
type DefinedColumnsOnly struct {
	Columns  []string
	WarnOnly bool
}

func (c DefinedColumnsOnly) Kind() Kind         { return KindDefinedColumnsOnly }
func (c DefinedColumnsOnly) Severity() Severity { return severity(c.WarnOnly) }

func (c DefinedColumnsOnly) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	declared := make(map[string]struct{}, len(c.Columns))
	for _, name := range c.Columns {
		declared[name] = struct{}{}
	}

	var extra []string
	for _, name := range f.Columns() {
		if _, ok := declared[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Unexpected columns in table: %v.", extra))
	}
	return out
}

// Unique validates that rows are distinct under a key of the given columns,
// or whole rows when Columns is empty. Every row belonging to a duplicate
// group is flagged, including the first occurrence: the goal is inspection,
// not filtering down to one canonical survivor.
type Unique struct {
	Columns  []string
	WarnOnly bool
}

func (c Unique) Kind() Kind         { return KindUnique }
func (c Unique) Severity() Severity { return severity(c.WarnOnly) }

func (c Unique) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	key := c.Columns
	if len(key) == 0 {
		key = f.Columns()
	}

	var missing []string
	for _, name := range key {
		if !f.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Missing columns for uniqueness check: %v.", missing))
		return out
	}

	cols := make([][]any, len(key))
	for i, name := range key {
		cols[i], _ = f.Column(name)
	}

	groups := make(map[string][]int)
	order := make([]string, 0)
	tuple := make([]any, len(key))
	for row := 0; row < f.Len(); row++ {
		for i := range cols {
			tuple[i] = cols[i][row]
		}
		k := rowKey(tuple)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}

	duplicated := false
	for _, k := range order {
		rows := groups[k]
		if len(rows) > 1 {
			duplicated = true
			for _, row := range rows {
				out.Rows.Add(row)
			}
		}
	}

	if duplicated {
		if len(c.Columns) > 0 {
			out.Messages = append(out.Messages, fmt.Sprintf(
				"Rows are not unique based on columns: %v.", c.Columns))
		} else {
			out.Messages = append(out.Messages, "Table contains duplicate rows.")
		}
	}
	return out
}

// RowFuncCheck applies a caller-supplied predicate to every full row.
// Name identifies the predicate in a registry so the check can be
// persisted; Description prefixes the failure message.
type RowFuncCheck struct {
	Func        RowFunc
	Name        string
	Description string
	WarnOnly    bool
}

func (c RowFuncCheck) Kind() Kind         { return KindRowFunc }
func (c RowFuncCheck) Severity() Severity { return severity(c.WarnOnly) }

func (c RowFuncCheck) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	if c.Func == nil {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"%s: check has no function.", c.description()))
		return out
	}

	for i := 0; i < f.Len(); i++ {
		row, err := f.Row(i)
		if err != nil {
			continue
		}
		if !safeRow(c.Func, row) {
			out.Rows.Add(i)
		}
	}

	if out.Rows.Len() > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"%s (failed on %d row(s))", c.description(), out.Rows.Len()))
	}
	return out
}

func (c RowFuncCheck) description() string {
	if c.Description != "" {
		return c.Description
	}
	return "Custom check failed"
}

// NoNulls validates that no cell is null across the matched columns.
// Columns accepts exact names or wildcard patterns (see frame.MatchColumns);
// empty means every column. The fault set is the union of the per-column
// null row sets.
type NoNulls struct {
	Columns  []string
	WarnOnly bool
}

func (c NoNulls) Kind() Kind         { return KindNoNulls }
func (c NoNulls) Severity() Severity { return severity(c.WarnOnly) }

func (c NoNulls) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	targets := f.Columns()
	if len(c.Columns) > 0 {
		targets = f.MatchColumns(c.Columns...)
	}

	var affected []string
	for _, name := range targets {
		values, err := f.Column(name)
		if err != nil {
			continue
		}
		found := false
		for i, v := range values {
			if frame.IsNull(v) {
				found = true
				out.Rows.Add(i)
			}
		}
		if found {
			affected = append(affected, name)
		}
	}

	if len(affected) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Null values found in columns: %v.", affected))
	}
	return out
}
