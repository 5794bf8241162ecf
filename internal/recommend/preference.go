// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// PreferenceEngine ranks catalog shows by keyword overlap with a profile.
type PreferenceEngine struct {
	shows  []Show
	logger zerolog.Logger
}

// NewPreferenceEngine creates a preference engine over a catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPreferenceEngine(shows []Show, logger zerolog.Logger) *PreferenceEngine {
	return &PreferenceEngine{
		shows:  shows,
		logger: logger.With().Str("engine", KindPreference).Logger(),
	}
}

// Recommend scores every show and returns up to k with a positive score.
func (p *PreferenceEngine) Recommend(ctx context.Context, prefs Preferences, k int) ([]ScoredShow, int, error) {
	prefs = normalizePreferences(prefs)

	scored := make([]Scored[int], 0, len(p.shows))
	for i := range p.shows {
		if score := ScorePreferences(&p.shows[i], prefs); score > 0 {
			scored = append(scored, Scored[int]{Item: i, Score: score})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	top := TopK(scored, k)
	results := make([]ScoredShow, len(top))
	for i, s := range top {
		results[i] = ScoredShow{Show: p.shows[s.Item], Score: s.Score}
	}

	p.logger.Debug().
		Int("matched", len(scored)).
		Int("returned", len(results)).
		Msg("preference scoring complete")

	return results, len(scored), nil
}

// ScorePreferences counts keyword hits: one point per genre found in the
// show's genre text, per language found in its language text, per mood
// keyword found in its description, plus one when the platform list holds
// the show's platform or "all".
// prefs must already be lowercased.
func ScorePreferences(s *Show, prefs Preferences) float64 {
	genre := strings.ToLower(s.Genre)
	language := strings.ToLower(s.Language)
	description := strings.ToLower(s.Description)

	var score float64
	score += countContained(genre, prefs.Genres)
	score += countContained(language, prefs.Languages)
	score += countContained(description, prefs.Moods)
	if platformMatches(s.Platform, prefs.Platforms) {
		score++
	}
	return score
}

func countContained(text string, keywords []string) float64 {
	var n float64
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// platformMatches is true when platforms holds "all" or the show's
// platform. An empty list matches nothing.
func platformMatches(platform string, platforms []string) bool {
	platform = strings.ToLower(platform)
	for _, p := range platforms {
		if p == "all" || p == platform {
			return true
		}
	}
	return false
}

func normalizePreferences(prefs Preferences) Preferences {
	return Preferences{
		Genres:    lowerAll(prefs.Genres),
		Languages: lowerAll(prefs.Languages),
		Moods:     lowerAll(prefs.Moods),
		Platforms: lowerAll(prefs.Platforms),
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
