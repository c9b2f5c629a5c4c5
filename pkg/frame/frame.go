/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package frame

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when a frame is constructed with two
	// columns of the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRaggedColumns is returned when columns of differing lengths are
	// combined into one frame.
	ErrRaggedColumns = errors.New("columns have differing lengths")

	// ErrRowOutOfRange is returned when a row index is outside the frame.
	ErrRowOutOfRange = errors.New("row index out of range")
)

// Row is a single row viewed as a column-name to value mapping.
type Row map[string]any

// Column pairs a name with its values for frame construction.
type Column struct {
	Name   string
	Values []any
}

// Frame is an in-memory columnar table with ordered, named columns and
// positional (0-based) row indices. A nil value, or a float NaN, is a null
// cell. Frames are not mutated by validation; all accessors return copies
// or read-only views.
type Frame struct {
	names []string
	cols  map[string][]any
	nrows int
}

// New creates a Frame from ordered columns. All columns must have the same
// length and distinct names.
func New(columns ...Column) (*Frame, error) {
	f := &Frame{cols: make(map[string][]any, len(columns))}

	for i, c := range columns {
		if _, ok := f.cols[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		if i == 0 {
			f.nrows = len(c.Values)
		} else if len(c.Values) != f.nrows {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d",
				ErrRaggedColumns, c.Name, len(c.Values), f.nrows)
		}
		f.names = append(f.names, c.Name)
		f.cols[c.Name] = c.Values
	}

	return f, nil
}

// FromRecords creates a Frame from row-oriented data. Each record must have
// exactly one value per column. Short records are an error.
func FromRecords(columns []string, records [][]any) (*Frame, error) {
	cols := make([]Column, len(columns))
	for i, name := range columns {
		cols[i] = Column{Name: name, Values: make([]any, len(records))}
	}

	for r, rec := range records {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("record %d has %d values, want %d", r, len(rec), len(columns))
		}
		for c := range columns {
			cols[c].Values[r] = rec[c]
		}
	}

	return New(cols...)
}

// Columns returns the column names in declaration order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.nrows
}

// HasColumn reports whether a column with the given name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the values of the named column. The returned slice must be
// treated as read-only.
func (f *Frame) Column(name string) ([]any, error) {
	values, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return values, nil
}

// Value returns the cell at the given row in the named column.
func (f *Frame) Value(row int, column string) (any, error) {
	values, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= f.nrows {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	return values[row], nil
}

// Row returns the row at the given index as a name-to-value mapping.
func (f *Frame) Row(i int) (Row, error) {
	if i < 0 || i >= f.nrows {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}

	row := make(Row, len(f.names))
	for _, name := range f.names {
		row[name] = f.cols[name][i]
	}
	return row, nil
}

// Select returns a new Frame holding only the given rows, in the order
// provided. Indices outside the frame are an error.
func (f *Frame) Select(indices []int) (*Frame, error) {
	cols := make([]Column, len(f.names))
	for c, name := range f.names {
		cols[c] = Column{Name: name, Values: make([]any, len(indices))}
	}

	for out, i := range indices {
		if i < 0 || i >= f.nrows {
			return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
		}
		for c, name := range f.names {
			cols[c].Values[out] = f.cols[name][i]
		}
	}

	return New(cols...)
}

// Records returns the frame as row-oriented data in column order.
func (f *Frame) Records() [][]any {
	records := make([][]any, f.nrows)
	for i := range records {
		rec := make([]any, len(f.names))
		for c, name := range f.names {
			rec[c] = f.cols[name][i]
		}
		records[i] = rec
	}
	return records
}

// IsNull reports whether a cell value counts as null. Nil values and float
// NaNs are null; everything else, including empty strings, is not.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}
