// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Cosine returns the cosine similarity of two dense vectors. It returns 0
// when the lengths differ, when either vector is empty, or when either
// norm is zero. The raw value is returned, so it may be negative.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	return floats.Dot(a, b) / (normA * normB)
}

// CosineSparse returns the cosine similarity of two term vectors over the
// union of their keys. Terms are visited in sorted order so the result is
// bit-for-bit reproducible and symmetric.
func CosineSparse(a, b TermVector) float64 {
	keysA := sortedTerms(a)
	keysB := sortedTerms(b)

	var dot, sumA, sumB float64
	for _, k := range keysA {
		sumA += a[k] * a[k]
	}
	for _, k := range keysB {
		sumB += b[k] * b[k]
	}
	if sumA == 0 || sumB == 0 {
		return 0
	}

	// Merge walk: only shared terms contribute to the dot product.
	i, j := 0, 0
	for i < len(keysA) && j < len(keysB) {
		switch {
		case keysA[i] < keysB[j]:
			i++
		case keysA[i] > keysB[j]:
			j++
		default:
			dot += a[keysA[i]] * b[keysB[j]]
			i++
			j++
		}
	}

	return dot / (math.Sqrt(sumA) * math.Sqrt(sumB))
}

func sortedTerms(v TermVector) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
