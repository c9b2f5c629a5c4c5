/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/framecheck/framecheck/pkg/frame"
	"github.com/framecheck/framecheck/pkg/schema"
)

// loadCheckSet reads a check set document from a YAML or JSON file. Custom
// predicate checks need a caller-side registry and cannot be restored here,
// so documents containing them are rejected.
func loadCheckSet(path string) (*schema.CheckSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read check set %q: %w", path, err)
	}

	set, err := schema.Parse(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse check set %q: %w", path, err)
	}
	return set, nil
}

// loadTable reads a table file into a Frame, dispatching on the file
// extension. Excel workbooks go through excelize; everything else is
// treated as CSV.
func loadTable(path string) (*frame.Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open table %q: %w", path, err)
		}
		defer func() { _ = f.Close() }()

		return frame.ReadCSV(f)
	}
}

// loadWorkbook reads the first sheet of an Excel workbook into a Frame.
func loadWorkbook(path string) (*frame.Frame, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %q: %w", path, err)
	}
	defer func() { _ = book.Close() }()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", path)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return frame.New()
	}

	return frame.FromStringRecords(rows[0], rows[1:])
}
