/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/framecheck/framecheck/pkg/check"
	"github.com/framecheck/framecheck/pkg/header"
)

// Document is the persisted form of a CheckSet: a header envelope plus one
// Spec per check, in insertion order.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Checks []Spec `json:"checks" yaml:"checks"`
}

// Spec records one check as plain data: a kind tag plus the variant's
// parameters. Every check variant is fully recoverable from its Spec;
// predicate checks are recoverable given a Registry holding their function.
type Spec struct {
	Kind        check.Kind `json:"kind" yaml:"kind"`
	Column      string     `json:"column,omitempty" yaml:"column,omitempty"`
	Columns     []string   `json:"columns,omitempty" yaml:"columns,omitempty"`
	WarnOnly    bool       `json:"warn_only,omitempty" yaml:"warn_only,omitempty"`
	Min         *float64   `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64   `json:"max,omitempty" yaml:"max,omitempty"`
	MinTime     string     `json:"min_time,omitempty" yaml:"min_time,omitempty"`
	MaxTime     string     `json:"max_time,omitempty" yaml:"max_time,omitempty"`
	Before      string     `json:"before,omitempty" yaml:"before,omitempty"`
	After       string     `json:"after,omitempty" yaml:"after,omitempty"`
	Format      string     `json:"format,omitempty" yaml:"format,omitempty"`
	Regex       string     `json:"regex,omitempty" yaml:"regex,omitempty"`
	In          []any      `json:"in,omitempty" yaml:"in,omitempty"`
	NotIn       []any      `json:"not_in,omitempty" yaml:"not_in,omitempty"`
	Equals      any        `json:"equals,omitempty" yaml:"equals,omitempty"`
	Exact       *int       `json:"exact,omitempty" yaml:"exact,omitempty"`
	MinRows     *int       `json:"min_rows,omitempty" yaml:"min_rows,omitempty"`
	MaxRows     *int       `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`
	Ordered     bool       `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Function    string     `json:"function,omitempty" yaml:"function,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// Document converts the CheckSet into its persisted form. Predicate checks
// must carry a registry name; anonymous functions are not representable.
func (s *CheckSet) Document() (*Document, error) {
	doc := &Document{Checks: make([]Spec, 0, len(s.checks))}
	doc.Header.Set(KindCheckSet)

	for i, c := range s.checks {
		spec, err := specFromCheck(c)
		if err != nil {
			return nil, fmt.Errorf("check %d (%s): %w", i, c.Kind(), err)
		}
		doc.Checks = append(doc.Checks, spec)
	}
	return doc, nil
}

// Marshal renders the CheckSet as a YAML document.
func (s *CheckSet) Marshal() ([]byte, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal check set: %w", err)
	}
	return data, nil
}

// Load restores a CheckSet from a Document. Predicate checks resolve their
// function by name from the provided Registry; a nil Registry restores every
// non-predicate variant and fails on predicate specs.
func Load(doc *Document, reg *Registry) (*CheckSet, error) {
	if doc == nil {
		return nil, fmt.Errorf("document cannot be nil")
	}

	checks := make([]check.Check, 0, len(doc.Checks))
	for i, spec := range doc.Checks {
		c, err := checkFromSpec(spec, reg)
		if err != nil {
			return nil, fmt.Errorf("check %d: %w", i, err)
		}
		checks = append(checks, c)
	}
	return New(checks...), nil
}

// Parse unmarshals a YAML document and restores the CheckSet from it.
func Parse(data []byte, reg *Registry) (*CheckSet, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse check set document: %w", err)
	}
	return Load(&doc, reg)
}

func specFromCheck(c check.Check) (Spec, error) {
	spec := Spec{Kind: c.Kind(), WarnOnly: c.Severity().IsWarning()}

	switch x := c.(type) {
	case check.Int:
		spec.Column, spec.Min, spec.Max = x.Column, x.Min, x.Max
	case check.Float:
		spec.Column, spec.Min, spec.Max = x.Column, x.Min, x.Max
	case check.Bool:
		spec.Column = x.Column
	case check.Datetime:
		spec.Column = x.Column
		spec.MinTime, spec.MaxTime = x.Min, x.Max
		spec.Before, spec.After = x.Before, x.After
		spec.Format = x.Format
	case check.Regex:
		spec.Column, spec.Regex = x.Column, x.Pattern
	case check.InSet:
		spec.Column, spec.In = x.Column, x.Values
	case check.NotInSet:
		spec.Column, spec.NotIn = x.Column, x.Values
	case check.Equals:
		spec.Column, spec.Equals = x.Column, x.Value
	case check.NotNull:
		spec.Column = x.Column
	case check.Exists:
		spec.Column = x.Column
	case check.ValueFuncCheck:
		if x.Name == "" {
			return Spec{}, fmt.Errorf("custom value check on column %q has no registry name", x.Column)
		}
		spec.Column, spec.Function, spec.Description = x.Column, x.Name, x.Description
	case check.IsEmpty, check.NotEmpty:
		// kind tag only
	case check.RowCount:
		spec.Exact, spec.MinRows, spec.MaxRows = x.Exact, x.Min, x.Max
	case check.ColumnsAre:
		spec.Columns, spec.Ordered = x.Columns, x.Ordered
	case check.DefinedColumnsOnly:
		spec.Columns = x.Columns
	case check.Unique:
		spec.Columns = x.Columns
	case check.RowFuncCheck:
		if x.Name == "" {
			return Spec{}, fmt.Errorf("custom row check has no registry name")
		}
		spec.Function, spec.Description = x.Name, x.Description
	case check.NoNulls:
		spec.Columns = x.Columns
	default:
		return Spec{}, fmt.Errorf("unsupported check type %T", c)
	}

	return spec, nil
}

func checkFromSpec(spec Spec, reg *Registry) (check.Check, error) {
	w := spec.WarnOnly

	switch spec.Kind {
	case check.KindInt:
		return check.Int{Column: spec.Column, Min: spec.Min, Max: spec.Max, WarnOnly: w}, nil
	case check.KindFloat:
		return check.Float{Column: spec.Column, Min: spec.Min, Max: spec.Max, WarnOnly: w}, nil
	case check.KindBool:
		return check.Bool{Column: spec.Column, WarnOnly: w}, nil
	case check.KindDatetime:
		return check.Datetime{
			Column: spec.Column,
			Min:    spec.MinTime, Max: spec.MaxTime,
			Before: spec.Before, After: spec.After,
			Format:   spec.Format,
			WarnOnly: w,
		}, nil
	case check.KindRegex:
		return check.Regex{Column: spec.Column, Pattern: spec.Regex, WarnOnly: w}, nil
	case check.KindInSet:
		return check.InSet{Column: spec.Column, Values: spec.In, WarnOnly: w}, nil
	case check.KindNotInSet:
		return check.NotInSet{Column: spec.Column, Values: spec.NotIn, WarnOnly: w}, nil
	case check.KindEquals:
		return check.Equals{Column: spec.Column, Value: spec.Equals, WarnOnly: w}, nil
	case check.KindNotNull:
		return check.NotNull{Column: spec.Column, WarnOnly: w}, nil
	case check.KindExists:
		return check.Exists{Column: spec.Column, WarnOnly: w}, nil
	case check.KindValueFunc:
		fn, ok := reg.ValueFunc(spec.Function)
		if !ok {
			return nil, fmt.Errorf("custom value function %q is not registered", spec.Function)
		}
		return check.ValueFuncCheck{
			Column: spec.Column,
			Func:   fn, Name: spec.Function,
			Description: spec.Description,
			WarnOnly:    w,
		}, nil
	case check.KindIsEmpty:
		return check.IsEmpty{WarnOnly: w}, nil
	case check.KindNotEmpty:
		return check.NotEmpty{WarnOnly: w}, nil
	case check.KindRowCount:
		return check.RowCount{Exact: spec.Exact, Min: spec.MinRows, Max: spec.MaxRows, WarnOnly: w}, nil
	case check.KindColumnsAre:
		return check.ColumnsAre{Columns: spec.Columns, Ordered: spec.Ordered, WarnOnly: w}, nil
	case check.KindDefinedColumnsOnly:
		return check.DefinedColumnsOnly{Columns: spec.Columns, WarnOnly: w}, nil
	case check.KindUnique:
		return check.Unique{Columns: spec.Columns, WarnOnly: w}, nil
	case check.KindRowFunc:
		fn, ok := reg.RowFunc(spec.Function)
		if !ok {
			return nil, fmt.Errorf("custom row function %q is not registered", spec.Function)
		}
		return check.RowFuncCheck{
			Func: fn, Name: spec.Function,
			Description: spec.Description,
			WarnOnly:    w,
		}, nil
	case check.KindNoNulls:
		return check.NoNulls{Columns: spec.Columns, WarnOnly: w}, nil
	default:
		return nil, fmt.Errorf("unknown check kind %q", spec.Kind)
	}
}
