package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads a CSV document into a Frame. The first record is the header.
// Cell values are inferred per cell: integers, floats, and booleans are
// parsed; empty cells become null; everything else stays a string.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: strings.TrimSpace(name)}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		for i := range cols {
			cols[i].Values = append(cols[i].Values, inferValue(record[i]))
		}
	}

	return New(cols...)
}

// FromStringRecords builds a Frame from a header row and raw string records,
// applying the same per-cell type inference as ReadCSV. Records shorter than
// the header are padded with nulls.
func FromStringRecords(columns []string, records [][]string) (*Frame, error) {
	cols := make([]Column, len(columns))
	for i, name := range columns {
		cols[i] = Column{Name: strings.TrimSpace(name)}
	}

	for _, record := range records {
		for i := range cols {
			if i < len(record) {
				cols[i].Values = append(cols[i].Values, inferValue(record[i]))
			} else {
				cols[i].Values = append(cols[i].Values, nil)
			}
		}
	}

	return New(cols...)
}

// WriteCSV writes the frame as CSV with a header record. Null cells are
// written as empty strings.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(f.names); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(f.names))
	for i := 0; i < f.nrows; i++ {
		for c, name := range f.names {
			v := f.cols[name][i]
			if IsNull(v) {
				record[c] = ""
			} else {
				record[c] = fmt.Sprintf("%v", v)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// inferValue parses a raw CSV cell into the narrowest sensible type.
func inferValue(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		return fl
	}
	switch s {
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	}
	return s
}
