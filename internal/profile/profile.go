// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

// Package profile stores viewer preference profiles and serves
// keyword-based recommendations from them.
//
// A profile holds lowercased keyword sets (favorite genres, languages,
// mood words and platforms), the last non-empty recommendation list and a
// timestamped history of every list served. Profiles are persisted in
// BadgerDB as JSON.
package profile

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/tomtom215/showrec/internal/recommend"
)

// ErrProfileNotFound is returned when no profile exists for a username.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a stored viewer profile.
type Profile struct {
	Username          string   `json:"username"`
	FavoriteGenres    []string `json:"favorite_genres"`
	FavoriteLanguages []string `json:"favorite_languages"`
	MoodKeywords      []string `json:"mood_keywords"`
	Platforms         []string `json:"platforms"`

	// OldRecommendations is the last non-empty list served; it is returned
	// again when the current preferences match nothing.
	OldRecommendations []recommend.Recommendation `json:"old_recommendations"`

	History []HistoryEntry `json:"history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry records one served recommendation list.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Titles    []string  `json:"titles"`
}

// Preferences converts the profile keywords to engine preferences.
func (p *Profile) Preferences() recommend.Preferences {
	return recommend.Preferences{
		Genres:    p.FavoriteGenres,
		Languages: p.FavoriteLanguages,
		Moods:     p.MoodKeywords,
		Platforms: p.Platforms,
	}
}

// UpdateRequest replaces a profile's preferences. Each entry may itself be
// a comma-separated list.
type UpdateRequest struct {
	Genres    []string `json:"genres" validate:"max=64,dive,max=256"`
	Languages []string `json:"languages" validate:"max=64,dive,max=256"`
	Moods     []string `json:"moods" validate:"max=64,dive,max=256"`
	Platforms []string `json:"platforms" validate:"max=64,dive,max=256"`
}

// NormalizeUsername trims and lowercases a username so lookups are
// case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ParseList splits comma-separated keyword text into a lowercased,
// trimmed, deduplicated list in first-seen order.
//
//	ParseList("Drama, crime,,drama") // ["drama" "crime"]
func ParseList(values ...string) []string {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Split(v, ",")...)
	}
	return lo.Uniq(lo.Compact(lo.Map(parts, func(p string, _ int) string {
		return strings.ToLower(strings.TrimSpace(p))
	})))
}
