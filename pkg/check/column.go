/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package check

import (
	"fmt"
	"regexp"
	"time"

	"github.com/framecheck/framecheck/pkg/frame"
)

// column returns the named column or nil when it does not exist. Missing
// columns are reported by the CheckSet before evaluation, so evaluating a
// check against a frame without its column yields an empty outcome.
func column(f *frame.Frame, name string) []any {
	values, err := f.Column(name)
	if err != nil {
		return nil
	}
	return values
}

// Int validates that every non-null value in a column is integer-like,
// optionally within inclusive [Min, Max] bounds. Values with a non-zero
// fractional part fail the type test even when numeric.
type Int struct {
	Column   string
	Min      *float64
	Max      *float64
	WarnOnly bool
}

func (c Int) Kind() Kind         { return KindInt }
func (c Int) ColumnName() string { return c.Column }
func (c Int) Severity() Severity { return severity(c.WarnOnly) }

func (c Int) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	values := column(f, c.Column)

	var bad sampler
	for i, v := range values {
		if frame.IsNull(v) || isIntegerLike(v) {
			continue
		}
		bad.add(v)
		out.Rows.Add(i)
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' contains values that are not integer-like (e.g., decimals or strings): %s.",
			c.Column, bad.String()))
	}

	// Bound checks run even when type issues exist.
	evaluateBounds(&out, values, c.Column, c.Min, c.Max)
	return out
}

// Float validates that every non-null value in a column is numeric,
// optionally within inclusive [Min, Max] bounds.
type Float struct {
	Column   string
	Min      *float64
	Max      *float64
	WarnOnly bool
}

func (c Float) Kind() Kind         { return KindFloat }
func (c Float) ColumnName() string { return c.Column }
func (c Float) Severity() Severity { return severity(c.WarnOnly) }

func (c Float) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	values := column(f, c.Column)

	var bad sampler
	for i, v := range values {
		if frame.IsNull(v) {
			continue
		}
		if _, ok := asFloat(v); !ok {
			bad.add(v)
			out.Rows.Add(i)
		}
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' contains values that are not numeric: %s.",
			c.Column, bad.String()))
	}

	evaluateBounds(&out, values, c.Column, c.Min, c.Max)
	return out
}

// evaluateBounds appends one message per violated bound side, each with
// example offending values. Non-numeric values are excluded; they are
// already reported by the type test.
func evaluateBounds(out *Outcome, values []any, name string, min, max *float64) {
	var below, above sampler
	belowRows, aboveRows := NewRowSet(), NewRowSet()

	for i, v := range values {
		fv, ok := asFloat(v)
		if !ok || frame.IsNull(v) {
			continue
		}
		if min != nil && fv < *min {
			below.add(v)
			belowRows.Add(i)
		}
		if max != nil && fv > *max {
			above.add(v)
			aboveRows.Add(i)
		}
	}

	if len(below.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' has values less than %v: %s.", name, *min, below.String()))
		out.Rows.Union(belowRows)
	}
	if len(above.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' has values greater than %v: %s.", name, *max, above.String()))
		out.Rows.Union(aboveRows)
	}
}

// Bool validates that every non-null value in a column is a boolean.
type Bool struct {
	Column   string
	WarnOnly bool
}

func (c Bool) Kind() Kind         { return KindBool }
func (c Bool) ColumnName() string { return c.Column }
func (c Bool) Severity() Severity { return severity(c.WarnOnly) }

func (c Bool) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	var bad sampler
	for i, v := range column(f, c.Column) {
		if frame.IsNull(v) {
			continue
		}
		if _, ok := v.(bool); !ok {
			bad.add(v)
			out.Rows.Add(i)
		}
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' contains non-boolean values: %s.", c.Column, bad.String()))
	}
	return out
}

// Datetime validates that every non-null value in a column is a valid
// datetime, optionally constrained by inclusive Min/Max and exclusive
// Before/After bounds. Bounds accept the relative aliases "today", "now",
// "yesterday" and "tomorrow"; Format, when set, is the time layout used to
// parse both values and bounds.
type Datetime struct {
	Column   string
	Min      string
	Max      string
	Before   string
	After    string
	Format   string
	WarnOnly bool
}

func (c Datetime) Kind() Kind         { return KindDatetime }
func (c Datetime) ColumnName() string { return c.Column }
func (c Datetime) Severity() Severity { return severity(c.WarnOnly) }

func (c Datetime) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	values := column(f, c.Column)

	times := make([]time.Time, len(values))
	valid := make([]bool, len(values))

	var bad sampler
	for i, v := range values {
		if frame.IsNull(v) {
			continue
		}
		t, ok := asTime(v, c.Format)
		if !ok {
			bad.add(v)
			out.Rows.Add(i)
			continue
		}
		times[i] = t
		valid[i] = true
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' contains values that are not valid dates: %s.",
			c.Column, bad.String()))
	}

	bounds := []struct {
		label   string
		expr    string
		violate func(t, bound time.Time) bool
	}{
		{"min", c.Min, func(t, b time.Time) bool { return t.Before(b) }},
		{"max", c.Max, func(t, b time.Time) bool { return t.After(b) }},
		{"before", c.Before, func(t, b time.Time) bool { return !t.Before(b) }},
		{"after", c.After, func(t, b time.Time) bool { return !t.After(b) }},
	}

	for _, bound := range bounds {
		if bound.expr == "" {
			continue
		}
		b, err := resolveTimeBound(bound.expr, c.Format, bound.label)
		if err != nil {
			out.Messages = append(out.Messages, fmt.Sprintf(
				"Column '%s' has an invalid '%s' bound: %v.", c.Column, bound.label, err))
			continue
		}

		violated := false
		for i := range values {
			if valid[i] && bound.violate(times[i], b) {
				violated = true
				out.Rows.Add(i)
			}
		}
		if violated {
			out.Messages = append(out.Messages, fmt.Sprintf(
				"Column '%s' violates '%s' constraint: %s.",
				c.Column, bound.label, b.Format("2006-01-02")))
		}
	}

	return out
}

// Regex validates that every non-null value matches a pattern using search
// semantics: the pattern may match anywhere in the value unless it anchors
// itself. Non-string values are matched against their string form.
type Regex struct {
	Column   string
	Pattern  string
	WarnOnly bool
}

func (c Regex) Kind() Kind         { return KindRegex }
func (c Regex) ColumnName() string { return c.Column }
func (c Regex) Severity() Severity { return severity(c.WarnOnly) }

func (c Regex) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' has an invalid regex '%s': %v.", c.Column, c.Pattern, err))
		return out
	}

	var bad sampler
	for i, v := range column(f, c.Column) {
		if frame.IsNull(v) {
			continue
		}
		if !re.MatchString(fmt.Sprintf("%v", v)) {
			bad.add(v)
			out.Rows.Add(i)
		}
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' has values not matching regex '%s': %s.",
			c.Column, c.Pattern, bad.String()))
	}
	return out
}

// InSet validates that every non-null value is a member of an allowed set.
// Numeric members compare by value, not by Go type.
type InSet struct {
	Column   string
	Values   []any
	WarnOnly bool
}

func (c InSet) Kind() Kind         { return KindInSet }
func (c InSet) ColumnName() string { return c.Column }
func (c InSet) Severity() Severity { return severity(c.WarnOnly) }

func (c InSet) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	allowed := keySet(c.Values)

	var bad sampler
	for i, v := range column(f, c.Column) {
		if frame.IsNull(v) {
			continue
		}
		if _, ok := allowed[valueKey(v)]; !ok {
			bad.add(v)
			out.Rows.Add(i)
		}
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' contains unexpected values: %s.", c.Column, bad.String()))
	}
	return out
}

// NotInSet validates that no value is a member of a forbidden set.
type NotInSet struct {
	Column   string
	Values   []any
	WarnOnly bool
}

func (c NotInSet) Kind() Kind         { return KindNotInSet }
func (c NotInSet) ColumnName() string { return c.Column }
func (c NotInSet) Severity() Severity { return severity(c.WarnOnly) }

func (c NotInSet) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}
	forbidden := keySet(c.Values)

	var bad sampler
	for i, v := range column(f, c.Column) {
		if frame.IsNull(v) {
			continue
		}
		if _, ok := forbidden[valueKey(v)]; ok {
			bad.add(v)
			out.Rows.Add(i)
		}
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' contains disallowed values: %s.", c.Column, bad.String()))
	}
	return out
}

func keySet(values []any) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[valueKey(v)] = struct{}{}
	}
	return set
}

// Equals validates that every non-null value equals a single literal.
type Equals struct {
	Column   string
	Value    any
	WarnOnly bool
}

func (c Equals) Kind() Kind         { return KindEquals }
func (c Equals) ColumnName() string { return c.Column }
func (c Equals) Severity() Severity { return severity(c.WarnOnly) }

func (c Equals) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	var bad sampler
	for i, v := range column(f, c.Column) {
		if frame.IsNull(v) {
			continue
		}
		if !valuesEqual(v, c.Value) {
			bad.add(v)
			out.Rows.Add(i)
		}
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' has values not equal to '%v': %s.", c.Column, c.Value, bad.String()))
	}
	return out
}

// NotNull validates that a column has no null cells.
type NotNull struct {
	Column   string
	WarnOnly bool
}

func (c NotNull) Kind() Kind         { return KindNotNull }
func (c NotNull) ColumnName() string { return c.Column }
func (c NotNull) Severity() Severity { return severity(c.WarnOnly) }

func (c NotNull) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	for i, v := range column(f, c.Column) {
		if frame.IsNull(v) {
			out.Rows.Add(i)
		}
	}
	if out.Rows.Len() > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Column '%s' contains null values in %d row(s).", c.Column, out.Rows.Len()))
	}
	return out
}

// Exists asserts that a column is present. The CheckSet reports the missing
// column itself, so evaluation always passes.
type Exists struct {
	Column   string
	WarnOnly bool
}

func (c Exists) Kind() Kind         { return KindExists }
func (c Exists) ColumnName() string { return c.Column }
func (c Exists) Severity() Severity { return severity(c.WarnOnly) }

func (c Exists) Evaluate(_ *frame.Frame) Outcome {
	return Outcome{Rows: NewRowSet()}
}

// ValueFuncCheck applies a caller-supplied predicate to every non-null value
// in a column. Name identifies the predicate in a registry so the check can
// be persisted; Description is used as the failure message prefix.
type ValueFuncCheck struct {
	Column      string
	Func        ValueFunc
	Name        string
	Description string
	WarnOnly    bool
}

func (c ValueFuncCheck) Kind() Kind         { return KindValueFunc }
func (c ValueFuncCheck) ColumnName() string { return c.Column }
func (c ValueFuncCheck) Severity() Severity { return severity(c.WarnOnly) }

func (c ValueFuncCheck) Evaluate(f *frame.Frame) Outcome {
	out := Outcome{Rows: NewRowSet()}

	if c.Func == nil {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"Custom check on column '%s' has no function.", c.Column))
		return out
	}

	var bad sampler
	for i, v := range column(f, c.Column) {
		if frame.IsNull(v) {
			continue
		}
		if !safeValue(c.Func, v) {
			bad.add(v)
			out.Rows.Add(i)
		}
	}
	if len(bad.values) > 0 {
		out.Messages = append(out.Messages, fmt.Sprintf(
			"%s failed on column '%s' for values: %s.",
			c.description(), c.Column, bad.String()))
	}
	return out
}

func (c ValueFuncCheck) description() string {
	if c.Description != "" {
		return c.Description
	}
	return "Custom function check"
}
