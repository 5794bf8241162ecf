// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{5, 3, 0}, []float64{5, 3, 0}, 1},
		{"scaled", []float64{1, 2}, []float64{2, 4}, 1},
		{"orthogonal", []float64{5, 0}, []float64{0, 3}, 0},
		{"opposite", []float64{1, -1}, []float64{-1, 1}, -1},
		{"zero vector", []float64{0, 0, 0}, []float64{1, 2, 3}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
		{"partial overlap", []float64{5, 3, 0}, []float64{5, 3, 4}, 34 / (math.Sqrt(34) * math.Sqrt(50))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosine_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2][]float64{
		{{5, 3, 0, 1}, {4, 0, 2, 2}},
		{{0.1, 0.7, 3.3}, {9, 0.25, 1}},
		{{1, 0}, {0, 0}},
	}
	for _, p := range pairs {
		if ab, ba := Cosine(p[0], p[1]), Cosine(p[1], p[0]); ab != ba {
			t.Errorf("Cosine not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestCosineSparse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b TermVector
		want float64
	}{
		{"identical", TermVector{"crime": 0.4, "drama": 0.2}, TermVector{"crime": 0.4, "drama": 0.2}, 1},
		{"disjoint", TermVector{"crime": 1}, TermVector{"comedy": 1}, 0},
		{"empty", TermVector{}, TermVector{"comedy": 1}, 0},
		{"nil", nil, nil, 0},
		{"zero weights", TermVector{"crime": 0}, TermVector{"crime": 1}, 0},
		{"partial", TermVector{"a": 1, "b": 1}, TermVector{"a": 1}, 1 / math.Sqrt(2)},
		{"negative weight", TermVector{"a": -1}, TermVector{"a": 1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CosineSparse(tt.a, tt.b)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("CosineSparse = %v, want %v", got, tt.want)
			}
			if rev := CosineSparse(tt.b, tt.a); rev != got {
				t.Errorf("CosineSparse not symmetric: %v vs %v", got, rev)
			}
		})
	}
}
