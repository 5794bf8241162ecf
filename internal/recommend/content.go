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

// ContentEngine scores catalog shows against a free-text mood using TF-IDF
// vectors built over the filtered candidates plus the query.
type ContentEngine struct {
	shows              []Show
	includeDescription bool
	logger             zerolog.Logger
}

// NewContentEngine creates a content engine over a catalog. The catalog
// slice is retained and must not be modified afterwards.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContentEngine(shows []Show, cfg ContentConfig, logger zerolog.Logger) *ContentEngine {
	return &ContentEngine{
		shows:              shows,
		includeDescription: cfg.IncludeDescription,
		logger:             logger.With().Str("engine", KindContent).Logger(),
	}
}

// Recommend returns up to k shows matching the genre and language filters,
// ordered by similarity to the mood. Ties keep catalog order. k is used as
// given; callers resolve defaults. No matching shows is not an error.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (c *ContentEngine) Recommend(ctx context.Context, q ContentQuery, k int) ([]ScoredShow, int, error) {
	candidates := FilterShows(c.shows, q.Genre, q.Language)
	if len(candidates) == 0 {
		c.logger.Debug().
			Str("genre", q.Genre).
			Str("language", q.Language).
			Msg("no shows match filters")
		return []ScoredShow{}, 0, nil
	}

	// The query document goes last so it shares the candidates' idf.
	docs := make([][]string, 0, len(candidates)+1)
	for i := range candidates {
		docs = append(docs, Tokenize(c.document(&candidates[i])))
	}
	docs = append(docs, Tokenize(q.Mood))

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	vectors := BuildTFIDF(docs)
	query := vectors[len(vectors)-1]

	scored := make([]Scored[int], len(candidates))
	for i := range candidates {
		scored[i] = Scored[int]{Item: i, Score: CosineSparse(vectors[i], query)}
	}

	top := TopK(scored, k)
	results := make([]ScoredShow, len(top))
	for i, s := range top {
		results[i] = ScoredShow{Show: candidates[s.Item], Score: s.Score}
	}
	return results, len(candidates), nil
}

func (c *ContentEngine) document(s *Show) string {
	parts := []string{s.Genre, s.Language}
	if c.includeDescription && s.Description != "" {
		parts = append(parts, s.Description)
	}
	return strings.Join(parts, " ")
}

// FilterShows keeps shows whose genre and language contain the given
// filters, case-insensitively. A blank filter matches every show.
func FilterShows(shows []Show, genre, language string) []Show {
	genre = strings.ToLower(strings.TrimSpace(genre))
	language = strings.ToLower(strings.TrimSpace(language))

	matched := make([]Show, 0, len(shows))
	for i := range shows {
		if genre != "" && !strings.Contains(strings.ToLower(shows[i].Genre), genre) {
			continue
		}
		if language != "" && !strings.Contains(strings.ToLower(shows[i].Language), language) {
			continue
		}
		matched = append(matched, shows[i])
	}
	return matched
}
