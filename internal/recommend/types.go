// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when the anchor of a query (a user) does not
// exist in the snapshot. It is always wrapped with the missing identifier.
var ErrNotFound = errors.New("not found")

// ErrKTooLarge is returned when a requested k exceeds Limits.MaxK.
var ErrKTooLarge = errors.New("k exceeds the configured maximum")

// Recommendation kinds, used for logging and metrics labels.
const (
	KindCollaborative = "collaborative"
	KindContent       = "content"
	KindPreference    = "preference"
)

// Rating is one user's rating of one title. Zero is reserved for
// "unrated" inside the matrix, so ingestion only accepts positive values.
type Rating struct {
	User  string  `json:"user" validate:"required"`
	Title string  `json:"title" validate:"required"`
	Value float64 `json:"value" validate:"gt=0,finite"`
}

// Show is one catalog row.
type Show struct {
	// Platform is the streaming service the catalog file belongs to.
	Platform string `json:"platform"`

	Title string `json:"title"`

	// Genre is the raw comma-separated category text ("listed_in").
	Genre string `json:"genre"`

	// Language is the raw language/country text.
	Language string `json:"language"`

	Description string `json:"description,omitempty"`

	ReleaseYear string `json:"release_year,omitempty"`
}

// String renders "[platform] title | Genres: genre | Languages: language".
func (s *Show) String() string {
	return fmt.Sprintf("[%s] %s | Genres: %s | Languages: %s", s.Platform, s.Title, s.Genre, s.Language)
}

// ShowInfo is the enrichment record for a title.
type ShowInfo struct {
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	ReleaseYear string `json:"release_year"`
	Genres      string `json:"genres"`
}

// ScoredTitle is a collaborative prediction for a title.
type ScoredTitle struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// ScoredShow is a catalog show with its content or preference score.
type ScoredShow struct {
	Show  Show    `json:"show"`
	Score float64 `json:"score"`
}

// Recommendation is one entry of a Response. Collaborative results carry
// Info when the title is present in the metadata table; content and
// preference results carry the originating Show.
type Recommendation struct {
	Title string    `json:"title"`
	Score float64   `json:"score"`
	Show  *Show     `json:"show,omitempty"`
	Info  *ShowInfo `json:"info,omitempty"`
}

// Display renders the recommendation for terminal output.
func (r Recommendation) Display() string {
	switch {
	case r.Info != nil:
		return r.Info.String()
	case r.Show != nil:
		return r.Show.String()
	default:
		return r.Title
	}
}

// Response is an ordered recommendation list.
type Response struct {
	// Items is ordered by descending score. Never nil.
	Items []Recommendation `json:"items"`

	// TotalCandidates is the number of titles or shows that were scored.
	TotalCandidates int `json:"total_candidates"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID string    `json:"request_id,omitempty"`
	Kind      string    `json:"kind"`
	K         int       `json:"k"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`

	// Cached is set when the items came from the collaborative result cache.
	Cached bool `json:"cached,omitempty"`
}

// ContentQuery describes a content-based request. Empty filters match
// every show; an empty mood scores every candidate 0.
type ContentQuery struct {
	Genre    string `json:"genre" validate:"max=256"`
	Language string `json:"language" validate:"max=256"`
	Mood     string `json:"mood" validate:"max=4096"`

	// K is the result size. k <= 0 yields an empty list.
	K int `json:"k" validate:"min=0"`
}

// Preferences is the keyword profile consumed by the preference scorer.
// All entries are expected lowercased and trimmed.
type Preferences struct {
	Genres    []string `json:"genres"`
	Languages []string `json:"languages"`
	Moods     []string `json:"moods"`
	Platforms []string `json:"platforms"`
}

// SnapshotStats summarizes a loaded snapshot.
type SnapshotStats struct {
	Ratings  int       `json:"ratings"`
	Users    int       `json:"users"`
	Titles   int       `json:"titles"`
	Shows    int       `json:"shows"`
	Metadata int       `json:"metadata"`
	LoadedAt time.Time `json:"loaded_at"`
}
