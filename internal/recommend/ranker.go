// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import "sort"

// Scored pairs an item with its score.
type Scored[T any] struct {
	Item  T
	Score float64
}

// TopK returns the k highest-scoring entries in descending score order.
// Entries with equal scores keep their input order. k <= 0 yields an empty
// slice and k larger than the input returns every entry. The input is not
// modified.
func TopK[T any](entries []Scored[T], k int) []Scored[T] {
	if k <= 0 || len(entries) == 0 {
		return []Scored[T]{}
	}

	ranked := make([]Scored[T], len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
