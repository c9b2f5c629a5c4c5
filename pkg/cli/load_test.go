/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTableCSV(t *testing.T) {
	path := writeFile(t, "data.csv", "id,name\n1,a\n2,b\n")

	f, err := loadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"id", "name"}, f.Columns())

	v, err := f.Value(0, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := loadTable(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoadTableWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	require.NoError(t, book.SetSheetRow(sheet, "A1", &[]any{"id", "name"}))
	require.NoError(t, book.SetSheetRow(sheet, "A2", &[]any{1, "a"}))
	require.NoError(t, book.SetSheetRow(sheet, "A3", &[]any{2, "b"}))
	require.NoError(t, book.SaveAs(path))
	require.NoError(t, book.Close())

	f, err := loadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"id", "name"}, f.Columns())

	v, err := f.Value(1, "name")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestLoadCheckSet(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		path := writeFile(t, "checks.yaml", `
kind: CheckSet
checks:
  - kind: int
    column: age
    min: 18
  - kind: not_empty
`)
		set, err := loadCheckSet(path)
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())
	})

	t.Run("custom checks are rejected without a registry", func(t *testing.T) {
		path := writeFile(t, "checks.yaml", `
checks:
  - kind: function
    column: age
    function: my_func
`)
		_, err := loadCheckSet(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadCheckSet(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
