/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"

	"github.com/framecheck/framecheck/pkg/check"
)

// Builder accumulates an ordered list of check declarations and finalizes
// them into an immutable CheckSet. Methods return the Builder for chaining;
// misuse (e.g. declaring a column after OnlyDefinedColumns) is recorded and
// surfaced by Build.
type Builder struct {
	checks      []check.Check
	declared    []string
	declaredSet map[string]struct{}
	onlyDefined bool
	finalized   bool
	err         error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{declaredSet: make(map[string]struct{})}
}

// columnSpec collects the per-column constraints declared in one Column call.
type columnSpec struct {
	typ         check.Kind
	min, max    *float64
	minTime     string
	maxTime     string
	before      string
	after       string
	format      string
	regex       string
	inSet       []any
	notInSet    []any
	equals      any
	hasEquals   bool
	fn          check.ValueFunc
	fnName      string
	description string
	notNull     bool
	warnOnly    bool
}

// ColumnOption declares one constraint on a column.
type ColumnOption func(*columnSpec)

// Typed constrains the column's values to a semantic type: check.KindInt,
// check.KindFloat, check.KindBool or check.KindDatetime.
func Typed(kind check.Kind) ColumnOption {
	return func(s *columnSpec) { s.typ = kind }
}

// Min sets the inclusive numeric lower bound.
func Min(v float64) ColumnOption {
	return func(s *columnSpec) { s.min = &v }
}

// Max sets the inclusive numeric upper bound.
func Max(v float64) ColumnOption {
	return func(s *columnSpec) { s.max = &v }
}

// MinTime sets the inclusive temporal lower bound for datetime columns.
func MinTime(expr string) ColumnOption {
	return func(s *columnSpec) { s.minTime = expr }
}

// MaxTime sets the inclusive temporal upper bound for datetime columns.
func MaxTime(expr string) ColumnOption {
	return func(s *columnSpec) { s.maxTime = expr }
}

// Before requires every datetime value to be strictly before the bound.
func Before(expr string) ColumnOption {
	return func(s *columnSpec) { s.before = expr }
}

// After requires every datetime value to be strictly after the bound.
func After(expr string) ColumnOption {
	return func(s *columnSpec) { s.after = expr }
}

// TimeFormat sets the layout used to parse datetime values and bounds.
func TimeFormat(layout string) ColumnOption {
	return func(s *columnSpec) { s.format = layout }
}

// Pattern requires every value to match the regex using search semantics.
func Pattern(regex string) ColumnOption {
	return func(s *columnSpec) { s.regex = regex }
}

// In requires every value to be a member of the allowed set.
func In(values ...any) ColumnOption {
	return func(s *columnSpec) { s.inSet = values }
}

// NotIn forbids every value of the given set.
func NotIn(values ...any) ColumnOption {
	return func(s *columnSpec) { s.notInSet = values }
}

// EqualTo requires every value to equal the single literal.
func EqualTo(v any) ColumnOption {
	return func(s *columnSpec) {
		s.equals = v
		s.hasEquals = true
	}
}

// Func applies a named caller-supplied predicate to every non-null value.
func Func(name string, fn check.ValueFunc) ColumnOption {
	return func(s *columnSpec) {
		s.fnName = name
		s.fn = fn
	}
}

// Described sets the failure message prefix for predicate checks.
func Described(description string) ColumnOption {
	return func(s *columnSpec) { s.description = description }
}

// NotNull forbids null cells in the column.
func NotNull() ColumnOption {
	return func(s *columnSpec) { s.notNull = true }
}

// WarnOnly downgrades every check declared for this column to a warning.
func WarnOnly() ColumnOption {
	return func(s *columnSpec) { s.warnOnly = true }
}

// Column declares checks for a named column. With no options the column is
// only required to exist.
func (b *Builder) Column(name string, opts ...ColumnOption) *Builder {
	if b.finalized {
		b.fail(fmt.Errorf("cannot declare column %q after OnlyDefinedColumns, move column declarations above", name))
		return b
	}

	var spec columnSpec
	for _, opt := range opts {
		opt(&spec)
	}

	b.declare(name)

	constrained := false
	switch spec.typ {
	case check.KindInt:
		b.checks = append(b.checks, check.Int{Column: name, Min: spec.min, Max: spec.max, WarnOnly: spec.warnOnly})
		constrained = true
	case check.KindFloat:
		b.checks = append(b.checks, check.Float{Column: name, Min: spec.min, Max: spec.max, WarnOnly: spec.warnOnly})
		constrained = true
	case check.KindBool:
		b.checks = append(b.checks, check.Bool{Column: name, WarnOnly: spec.warnOnly})
		constrained = true
	case check.KindDatetime:
		b.checks = append(b.checks, check.Datetime{
			Column: name,
			Min:    spec.minTime, Max: spec.maxTime,
			Before: spec.before, After: spec.after,
			Format:   spec.format,
			WarnOnly: spec.warnOnly,
		})
		constrained = true
	case "":
		// no type constraint
	default:
		b.fail(fmt.Errorf("unknown column type %q for column %q", spec.typ, name))
		return b
	}

	if spec.regex != "" {
		b.checks = append(b.checks, check.Regex{Column: name, Pattern: spec.regex, WarnOnly: spec.warnOnly})
		constrained = true
	}
	if len(spec.inSet) > 0 {
		b.checks = append(b.checks, check.InSet{Column: name, Values: spec.inSet, WarnOnly: spec.warnOnly})
		constrained = true
	}
	if len(spec.notInSet) > 0 {
		b.checks = append(b.checks, check.NotInSet{Column: name, Values: spec.notInSet, WarnOnly: spec.warnOnly})
		constrained = true
	}
	if spec.hasEquals {
		b.checks = append(b.checks, check.Equals{Column: name, Value: spec.equals, WarnOnly: spec.warnOnly})
		constrained = true
	}
	if spec.fn != nil || spec.fnName != "" {
		b.checks = append(b.checks, check.ValueFuncCheck{
			Column: name,
			Func:   spec.fn, Name: spec.fnName,
			Description: spec.description,
			WarnOnly:    spec.warnOnly,
		})
		constrained = true
	}
	if spec.notNull {
		b.checks = append(b.checks, check.NotNull{Column: name, WarnOnly: spec.warnOnly})
		constrained = true
	}

	if !constrained {
		b.checks = append(b.checks, check.Exists{Column: name, WarnOnly: spec.warnOnly})
	}
	return b
}

// checkOpts carries options common to table-level declarations.
type checkOpts struct {
	warnOnly bool
}

// CheckOption modifies a table-level check declaration.
type CheckOption func(*checkOpts)

// AsWarning downgrades the declared check to a warning.
func AsWarning() CheckOption {
	return func(o *checkOpts) { o.warnOnly = true }
}

func tableOpts(opts []CheckOption) checkOpts {
	var o checkOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Empty requires the table to have no rows.
func (b *Builder) Empty(opts ...CheckOption) *Builder {
	o := tableOpts(opts)
	b.checks = append(b.checks, check.IsEmpty{WarnOnly: o.warnOnly})
	return b
}

// NotEmpty requires the table to have at least one row.
func (b *Builder) NotEmpty(opts ...CheckOption) *Builder {
	o := tableOpts(opts)
	b.checks = append(b.checks, check.NotEmpty{WarnOnly: o.warnOnly})
	return b
}

// RowCount requires the table to have exactly n rows.
func (b *Builder) RowCount(n int, opts ...CheckOption) *Builder {
	o := tableOpts(opts)
	b.checks = append(b.checks, check.RowCount{Exact: &n, WarnOnly: o.warnOnly})
	return b
}

// RowCountBetween requires the row count to fall within inclusive bounds.
// A negative bound leaves that side open.
func (b *Builder) RowCountBetween(min, max int, opts ...CheckOption) *Builder {
	o := tableOpts(opts)
	rc := check.RowCount{WarnOnly: o.warnOnly}
	if min >= 0 {
		rc.Min = &min
	}
	if max >= 0 {
		rc.Max = &max
	}
	b.checks = append(b.checks, rc)
	return b
}

// ColumnsAre requires the table's column set to exactly match the given
// names; with ordered set, the sequence must match too.
func (b *Builder) ColumnsAre(columns []string, ordered bool, opts ...CheckOption) *Builder {
	o := tableOpts(opts)
	b.checks = append(b.checks, check.ColumnsAre{Columns: columns, Ordered: ordered, WarnOnly: o.warnOnly})
	return b
}

// Unique requires rows to be distinct under the given column key, or as
// whole rows when no columns are given.
func (b *Builder) Unique(columns ...string) *Builder {
	b.checks = append(b.checks, check.Unique{Columns: columns})
	return b
}

// Custom applies a named caller-supplied predicate to every row.
func (b *Builder) Custom(description, name string, fn check.RowFunc, opts ...CheckOption) *Builder {
	o := tableOpts(opts)
	b.checks = append(b.checks, check.RowFuncCheck{
		Func: fn, Name: name,
		Description: description,
		WarnOnly:    o.warnOnly,
	})
	return b
}

// NoNulls forbids null cells across the matched columns (exact names or
// wildcard patterns); with no arguments every column is covered.
func (b *Builder) NoNulls(patterns ...string) *Builder {
	b.checks = append(b.checks, check.NoNulls{Columns: patterns})
	return b
}

// Add appends an already-constructed check.
func (b *Builder) Add(c check.Check) *Builder {
	if cs, ok := c.(check.ColumnScoped); ok {
		b.declare(cs.ColumnName())
	}
	b.checks = append(b.checks, c)
	return b
}

// OnlyDefinedColumns forbids table columns beyond those declared via Column.
// It finalizes the column list; later Column calls are an error.
func (b *Builder) OnlyDefinedColumns() *Builder {
	b.onlyDefined = true
	b.finalized = true
	return b
}

// Build finalizes the accumulated declarations into an immutable CheckSet.
func (b *Builder) Build() (*CheckSet, error) {
	if b.err != nil {
		return nil, b.err
	}

	checks := b.checks
	if b.onlyDefined {
		declared := make([]string, len(b.declared))
		copy(declared, b.declared)
		checks = append(checks, check.DefinedColumnsOnly{Columns: declared})
	}

	return New(checks...), nil
}

func (b *Builder) declare(name string) {
	if _, ok := b.declaredSet[name]; ok {
		return
	}
	b.declaredSet[name] = struct{}{}
	b.declared = append(b.declared, name)
}

// fail records the first builder misuse; Build reports it.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
