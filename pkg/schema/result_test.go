/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecheck/framecheck/pkg/check"
	"github.com/framecheck/framecheck/pkg/frame"
)

func TestSummaryPassed(t *testing.T) {
	f := newFrame(t, frame.Column{Name: "id", Values: []any{int64(1)}})

	result, err := New(check.NotNull{Column: "id"}).Validate(context.Background(), f)
	require.NoError(t, err)

	want := "Validation PASSED\n0 error(s), 0 warning(s)"
	assert.Equal(t, want, result.Summary())
}

func TestSummaryFailed(t *testing.T) {
	f := newFrame(t,
		frame.Column{Name: "id", Values: []any{int64(1), nil}},
		frame.Column{Name: "email", Values: []any{"a@x", "bogus"}},
	)

	s := New(
		check.NotNull{Column: "id"},
		check.Regex{Column: "email", Pattern: "@", WarnOnly: true},
	)

	result, err := s.Validate(context.Background(), f)
	require.NoError(t, err)

	want := "Validation FAILED\n" +
		"1 error(s), 1 warning(s)\n" +
		"Errors:\n" +
		"  - Column 'id' contains null values in 1 row(s).\n" +
		"Warnings:\n" +
		"  - Column 'email' has values not matching regex '@': [bogus]."
	assert.Equal(t, want, result.Summary())
}

func TestInvalidRows(t *testing.T) {
	f := newFrame(t,
		frame.Column{Name: "age", Values: []any{int64(25), int64(17), int64(101), int64(30)}},
		frame.Column{Name: "email", Values: []any{"bogus", "a@x", "b@x", "c@x"}},
	)

	s := New(
		check.Int{Column: "age", Min: fptr(18), Max: fptr(99)},
		check.Regex{Column: "email", Pattern: "@", WarnOnly: true},
	)

	result, err := s.Validate(context.Background(), f)
	require.NoError(t, err)

	t.Run("errors only", func(t *testing.T) {
		invalid, err := result.InvalidRows(f, false)
		require.NoError(t, err)

		require.Equal(t, 2, invalid.Len())
		// Original row order is preserved.
		v, _ := invalid.Value(0, "age")
		assert.Equal(t, int64(17), v)
		v, _ = invalid.Value(1, "age")
		assert.Equal(t, int64(101), v)
	})

	t.Run("including warnings is a superset", func(t *testing.T) {
		invalid, err := result.InvalidRows(f, true)
		require.NoError(t, err)

		require.Equal(t, 3, invalid.Len())
		v, _ := invalid.Value(0, "email")
		assert.Equal(t, "bogus", v)
	})

	t.Run("nil frame", func(t *testing.T) {
		_, err := result.InvalidRows(nil, false)
		assert.Error(t, err)
	})

	t.Run("smaller frame rejects out-of-range faults", func(t *testing.T) {
		tiny := newFrame(t,
			frame.Column{Name: "age", Values: []any{int64(17)}},
			frame.Column{Name: "email", Values: []any{"a@x"}},
		)
		_, err := result.InvalidRows(tiny, false)
		assert.Error(t, err)
	})
}

func TestErr(t *testing.T) {
	f := newFrame(t, frame.Column{Name: "id", Values: []any{int64(1), nil}})

	t.Run("nil when valid", func(t *testing.T) {
		result, err := New().Validate(context.Background(), f)
		require.NoError(t, err)
		assert.NoError(t, result.Err())
	})

	t.Run("aggregates every error", func(t *testing.T) {
		s := New(
			check.NotNull{Column: "id"},
			check.RowCount{Exact: intPtr(5)},
		)
		result, err := s.Validate(context.Background(), f)
		require.NoError(t, err)

		verr := result.Err()
		require.Error(t, verr)
		assert.Contains(t, verr.Error(), "validation failed with 2 error(s)")
		assert.Contains(t, verr.Error(), "Column 'id' contains null values in 1 row(s).")
		assert.Contains(t, verr.Error(), "Table has 2 rows, expected exactly 5.")
	})

	t.Run("warnings never produce an error", func(t *testing.T) {
		s := New(check.NotNull{Column: "id", WarnOnly: true})
		result, err := s.Validate(context.Background(), f)
		require.NoError(t, err)
		assert.NoError(t, result.Err())
	})
}

func TestReport(t *testing.T) {
	f := newFrame(t, frame.Column{Name: "id", Values: []any{nil}})

	result, err := New(check.NotNull{Column: "id"}).Validate(context.Background(), f)
	require.NoError(t, err)

	rep := result.Report()
	assert.Equal(t, KindValidationResult, rep.Kind)
	assert.Equal(t, "validationresult.framecheck.io/v1", rep.APIVersion)
	assert.False(t, rep.IsValid)
	assert.Equal(t, 1, rep.ErrorCount)
	assert.Equal(t, 0, rep.WarningCount)
	require.Len(t, rep.Errors, 1)

	// The report renders the same text summary as the result.
	assert.Equal(t, result.Summary(), rep.Summary())
}
