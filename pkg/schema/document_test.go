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

func TestDocumentRoundTrip(t *testing.T) {
	s, err := NewBuilder().
		Column("age", Typed(check.KindInt), Min(18), Max(99)).
		Column("email", Pattern("@"), NotNull(), WarnOnly()).
		Column("status", In("open", "closed")).
		NotEmpty().
		Unique("email").
		OnlyDefinedColumns().
		Build()
	require.NoError(t, err)

	data, err := s.Marshal()
	require.NoError(t, err)

	restored, err := Parse(data, nil)
	require.NoError(t, err)
	require.Equal(t, s.Len(), restored.Len())

	// Kinds and order survive the round trip.
	for i, c := range s.Checks() {
		assert.Equal(t, c.Kind(), restored.Checks()[i].Kind())
		assert.Equal(t, c.Severity(), restored.Checks()[i].Severity())
	}

	// Both sets agree on a concrete table.
	f := newFrame(t,
		frame.Column{Name: "age", Values: []any{int64(17), int64(30)}},
		frame.Column{Name: "email", Values: []any{"bogus", "a@x"}},
		frame.Column{Name: "status", Values: []any{"open", "weird"}},
	)

	want, err := s.Validate(context.Background(), f)
	require.NoError(t, err)
	got, err := restored.Validate(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, want.Errors(), got.Errors())
	assert.Equal(t, want.Warnings(), got.Warnings())
}

func TestDocumentHeader(t *testing.T) {
	s := New(check.NotEmpty{})

	doc, err := s.Document()
	require.NoError(t, err)

	assert.Equal(t, KindCheckSet, doc.Kind)
	assert.Equal(t, "checkset.framecheck.io/v1", doc.APIVersion)
	require.Len(t, doc.Checks, 1)
	assert.Equal(t, check.KindNotEmpty, doc.Checks[0].Kind)
}

func TestDocumentCustomChecks(t *testing.T) {
	positive := func(v any) bool {
		i, ok := v.(int64)
		return ok && i > 0
	}

	t.Run("anonymous predicate is not serializable", func(t *testing.T) {
		s := New(check.ValueFuncCheck{Column: "n", Func: positive})
		_, err := s.Document()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no registry name")
	})

	t.Run("named predicate round trips through a registry", func(t *testing.T) {
		s := New(check.ValueFuncCheck{
			Column: "n", Func: positive, Name: "positive", Description: "Positive check",
		})

		data, err := s.Marshal()
		require.NoError(t, err)

		reg := NewRegistry()
		reg.RegisterValueFunc("positive", positive)

		restored, err := Parse(data, reg)
		require.NoError(t, err)

		f := newFrame(t, frame.Column{Name: "n", Values: []any{int64(1), int64(-2)}})
		result, err := restored.Validate(context.Background(), f)
		require.NoError(t, err)
		require.Len(t, result.Errors(), 1)
		assert.Equal(t, "Positive check failed on column 'n' for values: [-2].", result.Errors()[0])
	})

	t.Run("unregistered predicate fails to load", func(t *testing.T) {
		s := New(check.ValueFuncCheck{Column: "n", Func: positive, Name: "positive"})

		data, err := s.Marshal()
		require.NoError(t, err)

		_, err = Parse(data, NewRegistry())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered")

		// A nil registry fails the same way.
		_, err = Parse(data, nil)
		assert.Error(t, err)
	})

	t.Run("row predicate round trips", func(t *testing.T) {
		sane := func(row frame.Row) bool { return row["n"] != nil }
		s := New(check.RowFuncCheck{Func: sane, Name: "sane", Description: "Row sanity"})

		data, err := s.Marshal()
		require.NoError(t, err)

		reg := NewRegistry()
		reg.RegisterRowFunc("sane", sane)

		restored, err := Parse(data, reg)
		require.NoError(t, err)
		assert.Equal(t, check.KindRowFunc, restored.Checks()[0].Kind())
	})
}

func TestLoadNilDocument(t *testing.T) {
	_, err := Load(nil, nil)
	assert.Error(t, err)
}

func TestParseYAMLDocument(t *testing.T) {
	doc := `
kind: CheckSet
apiVersion: checkset.framecheck.io/v1
checks:
  - kind: int
    column: age
    min: 18
    max: 99
  - kind: regex
    column: email
    regex: "@"
    warn_only: true
  - kind: row_count
    min_rows: 1
    max_rows: 100
  - kind: unique
    columns: [email]
`

	s, err := Parse([]byte(doc), nil)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())

	ic, ok := s.Checks()[0].(check.Int)
	require.True(t, ok)
	assert.Equal(t, 18.0, *ic.Min)

	assert.Equal(t, check.SeverityWarning, s.Checks()[1].Severity())

	rc, ok := s.Checks()[2].(check.RowCount)
	require.True(t, ok)
	assert.Equal(t, 1, *rc.Min)

	uc, ok := s.Checks()[3].(check.Unique)
	require.True(t, ok)
	assert.Equal(t, []string{"email"}, uc.Columns)
}

func TestParseUnknownKind(t *testing.T) {
	_, err := Parse([]byte("checks:\n  - kind: bogus\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown check kind")
}
