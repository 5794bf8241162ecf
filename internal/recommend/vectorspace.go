// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// RatingIndex assigns stable positions to the distinct users and titles
// of a rating batch. Both key lists are sorted lexicographically.
type RatingIndex struct {
	users    []string
	titles   []string
	userPos  map[string]int
	titlePos map[string]int
}

// NewRatingIndex indexes the users and titles that appear in ratings.
func NewRatingIndex(ratings []Rating) *RatingIndex {
	userSet := make(map[string]struct{})
	titleSet := make(map[string]struct{})
	for _, r := range ratings {
		userSet[r.User] = struct{}{}
		titleSet[r.Title] = struct{}{}
	}

	ix := &RatingIndex{
		users:  sortedKeys(userSet),
		titles: sortedKeys(titleSet),
	}
	ix.userPos = positions(ix.users)
	ix.titlePos = positions(ix.titles)
	return ix
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func positions(keys []string) map[string]int {
	pos := make(map[string]int, len(keys))
	for i, k := range keys {
		pos[k] = i
	}
	return pos
}

// Users returns the sorted user identifiers. The slice must not be modified.
func (ix *RatingIndex) Users() []string { return ix.users }

// Titles returns the sorted title identifiers. The slice must not be modified.
func (ix *RatingIndex) Titles() []string { return ix.titles }

// UserPosition returns the row of user.
func (ix *RatingIndex) UserPosition(user string) (int, bool) {
	p, ok := ix.userPos[user]
	return p, ok
}

// TitlePosition returns the column of title.
func (ix *RatingIndex) TitlePosition(title string) (int, bool) {
	p, ok := ix.titlePos[title]
	return p, ok
}

// RatingMatrix is a dense users x titles matrix. A zero cell means the
// user has not rated the title. Rows are stored contiguously.
type RatingMatrix struct {
	index  *RatingIndex
	cells  []float64
	stride int
}

// BuildRatingMatrix indexes ratings and fills the matrix. When a
// (user, title) pair appears more than once the last rating wins.
func BuildRatingMatrix(ratings []Rating) *RatingMatrix {
	ix := NewRatingIndex(ratings)
	m := &RatingMatrix{
		index:  ix,
		cells:  make([]float64, len(ix.users)*len(ix.titles)),
		stride: len(ix.titles),
	}
	for _, r := range ratings {
		u := ix.userPos[r.User]
		t := ix.titlePos[r.Title]
		m.cells[u*m.stride+t] = r.Value
	}
	return m
}

// Index returns the index the matrix was built with.
func (m *RatingMatrix) Index() *RatingIndex { return m.index }

// Dims returns (users, titles).
func (m *RatingMatrix) Dims() (int, int) {
	return len(m.index.users), len(m.index.titles)
}

// Row returns the ratings of user u. The slice aliases matrix storage.
func (m *RatingMatrix) Row(u int) []float64 {
	return m.cells[u*m.stride : (u+1)*m.stride : (u+1)*m.stride]
}

// At returns the rating of user u for title t.
func (m *RatingMatrix) At(u, t int) float64 {
	return m.cells[u*m.stride+t]
}

// Tokenize lowercases text, removes every character that is not an ASCII
// letter, digit or whitespace, and splits on whitespace runs.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, strings.ToLower(text))
	return strings.Fields(cleaned)
}

// TermVector is a sparse term -> weight mapping. Missing terms weigh 0.
type TermVector map[string]float64

// BuildTFIDF computes a TF-IDF vector for every document in the batch.
//
// tf is the term count divided by the document length and idf is
// ln(N / (1 + df)) where N is the batch size. idf is not clamped, so a
// term present in at least N-1 documents gets a zero or negative weight.
// An empty document yields an empty vector.
func BuildTFIDF(docs [][]string) []TermVector {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	vectors := make([]TermVector, len(docs))
	for i, doc := range docs {
		vec := make(TermVector, len(doc))
		if len(doc) > 0 {
			counts := make(map[string]int, len(doc))
			for _, term := range doc {
				counts[term]++
			}
			length := float64(len(doc))
			for term, c := range counts {
				tf := float64(c) / length
				idf := math.Log(n / float64(1+df[term]))
				vec[term] = tf * idf
			}
		}
		vectors[i] = vec
	}
	return vectors
}
