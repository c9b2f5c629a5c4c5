/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/framecheck/framecheck/pkg/serializer"
)

const testChecks = `
kind: CheckSet
checks:
  - kind: int
    column: age
    min: 18
    max: 99
  - kind: regex
    column: email
    regex: "@"
    warn_only: true
`

const testTable = "age,email\n25,a@x.io\n17,bogus\n101,b@x.io\n"

func runValidate(t *testing.T, args ...string) error {
	t.Helper()
	cmd := New()
	return cmd.Run(context.Background(), append([]string{"framecheck", "validate"}, args...))
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	checksPath := filepath.Join(dir, "checks.yaml")
	tablePath := filepath.Join(dir, "data.csv")
	outPath := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(checksPath, []byte(testChecks), 0o644))
	require.NoError(t, os.WriteFile(tablePath, []byte(testTable), 0o644))

	err := runValidate(t,
		"--checks", checksPath,
		"--format", "json",
		"--output", outPath,
		tablePath,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var report struct {
		IsValid      bool     `json:"is_valid"`
		ErrorCount   int      `json:"error_count"`
		WarningCount int      `json:"warning_count"`
		Errors       []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.False(t, report.IsValid)
	assert.Equal(t, 2, report.ErrorCount)
	assert.Equal(t, 1, report.WarningCount)
}

func TestValidateCommandFailOnError(t *testing.T) {
	dir := t.TempDir()
	checksPath := filepath.Join(dir, "checks.yaml")
	tablePath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(checksPath, []byte(testChecks), 0o644))
	require.NoError(t, os.WriteFile(tablePath, []byte(testTable), 0o644))

	err := runValidate(t,
		"--checks", checksPath,
		"--output", filepath.Join(dir, "report.txt"),
		"--fail-on-error",
		tablePath,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateCommandInvalidRows(t *testing.T) {
	dir := t.TempDir()
	checksPath := filepath.Join(dir, "checks.yaml")
	tablePath := filepath.Join(dir, "data.csv")
	badPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(checksPath, []byte(testChecks), 0o644))
	require.NoError(t, os.WriteFile(tablePath, []byte(testTable), 0o644))

	err := runValidate(t,
		"--checks", checksPath,
		"--output", filepath.Join(dir, "report.txt"),
		"--invalid-rows", badPath,
		tablePath,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(badPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus the two error rows; the warning row is excluded by default.
	require.Len(t, lines, 3)
	assert.Equal(t, "age,email", lines[0])
	assert.Equal(t, "17,bogus", lines[1])
	assert.Equal(t, "101,b@x.io", lines[2])
}

func TestValidateCommandMultipleTables(t *testing.T) {
	dir := t.TempDir()
	checksPath := filepath.Join(dir, "checks.yaml")
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	outPath := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(checksPath, []byte(testChecks), 0o644))
	require.NoError(t, os.WriteFile(first, []byte("age,email\n25,a@x.io\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(testTable), 0o644))

	err := runValidate(t,
		"--checks", checksPath,
		"--format", "json",
		"--output", outPath,
		first, second,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var reports []struct {
		File    string `json:"file"`
		IsValid bool   `json:"is_valid"`
	}
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, first, reports[0].File)
	assert.True(t, reports[0].IsValid)
	assert.False(t, reports[1].IsValid)
}

func TestValidateCommandArgErrors(t *testing.T) {
	dir := t.TempDir()
	checksPath := filepath.Join(dir, "checks.yaml")
	tablePath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(checksPath, []byte(testChecks), 0o644))
	require.NoError(t, os.WriteFile(tablePath, []byte(testTable), 0o644))

	t.Run("no table files", func(t *testing.T) {
		err := runValidate(t, "--checks", checksPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one table file")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := runValidate(t, "--checks", checksPath, "--format", "xml", tablePath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})

	t.Run("invalid-rows with multiple tables", func(t *testing.T) {
		err := runValidate(t, "--checks", checksPath,
			"--invalid-rows", filepath.Join(dir, "bad.csv"),
			tablePath, tablePath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single table file")
	})
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    serializer.Format
		wantErr bool
	}{
		{format: "json", want: serializer.FormatJSON},
		{format: "yaml", want: serializer.FormatYAML},
		{format: "text", want: serializer.FormatText},
		{format: "table", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var got serializer.Format
			var gotErr error

			testCmd := &cli.Command{
				Name:  "test",
				Flags: []cli.Flag{&cli.StringFlag{Name: "format"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					got, gotErr = parseOutputFormat(cmd)
					return nil
				},
			}
			require.NoError(t, testCmd.Run(context.Background(), []string{"test", "--format", tt.format}))

			if tt.wantErr {
				assert.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
