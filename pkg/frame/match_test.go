/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package frame

import (
	"reflect"
	"testing"
)

func TestMatchColumns(t *testing.T) {
	f, err := New(
		Column{Name: "user_id"},
		Column{Name: "user_name"},
		Column{Name: "created_at"},
		Column{Name: "updated_at"},
		Column{Name: "score"},
	)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "exact match",
			patterns: []string{"score"},
			want:     []string{"score"},
		},
		{
			name:     "prefix wildcard",
			patterns: []string{"user_*"},
			want:     []string{"user_id", "user_name"},
		},
		{
			name:     "suffix wildcard",
			patterns: []string{"*_at"},
			want:     []string{"created_at", "updated_at"},
		},
		{
			name:     "contains wildcard",
			patterns: []string{"*ser*"},
			want:     []string{"user_id", "user_name"},
		},
		{
			name:     "multiple patterns preserve declaration order",
			patterns: []string{"score", "user_*"},
			want:     []string{"user_id", "user_name", "score"},
		},
		{
			name:     "no match",
			patterns: []string{"missing"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.MatchColumns(tt.patterns...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchColumns(%v) = %v, want %v", tt.patterns, got, tt.want)
			}
		})
	}
}
