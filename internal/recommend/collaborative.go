// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// CollaborativeEngine predicts ratings for titles a user has not rated
// from the ratings of similar users.
//
// The rating matrix is built once and only read afterwards. Similarities
// and predictions are computed per call, so concurrent calls are safe.
type CollaborativeEngine struct {
	matrix  *RatingMatrix
	workers int
	logger  zerolog.Logger
}

// NewCollaborativeEngine builds the rating matrix for ratings.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborativeEngine(ratings []Rating, cfg CollaborativeConfig, logger zerolog.Logger) *CollaborativeEngine {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &CollaborativeEngine{
		matrix:  BuildRatingMatrix(ratings),
		workers: workers,
		logger:  logger.With().Str("engine", KindCollaborative).Logger(),
	}
}

// Matrix returns the underlying rating matrix.
func (c *CollaborativeEngine) Matrix() *RatingMatrix { return c.matrix }

// Recommend returns up to k titles the user has not rated, ordered by
// predicted rating. Titles no similar user has rated are never returned.
// An unknown user yields an error wrapping ErrNotFound.
func (c *CollaborativeEngine) Recommend(ctx context.Context, user string, k int) ([]ScoredTitle, int, error) {
	target, ok := c.matrix.Index().UserPosition(user)
	if !ok {
		return nil, 0, fmt.Errorf("user %q: %w", user, ErrNotFound)
	}

	sims, err := c.similarities(ctx, target)
	if err != nil {
		return nil, 0, err
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	predictions := c.predict(target, sims)
	top := TopK(predictions, k)

	results := make([]ScoredTitle, len(top))
	for i, p := range top {
		results[i] = ScoredTitle{Title: p.Item, Score: p.Score}
	}

	c.logger.Debug().
		Str("user", user).
		Int("candidates", len(predictions)).
		Int("returned", len(results)).
		Msg("collaborative prediction complete")

	return results, len(predictions), nil
}

// similarities returns the cosine similarity of every user to target,
// indexed by user position. The target slot is left at zero and must be
// skipped by callers. With more than one worker the rows are split into
// contiguous chunks; each goroutine writes only its own slots.
func (c *CollaborativeEngine) similarities(ctx context.Context, target int) ([]float64, error) {
	users, _ := c.matrix.Dims()
	sims := make([]float64, users)
	targetRow := c.matrix.Row(target)

	fill := func(start, end int) {
		for u := start; u < end; u++ {
			if u == target {
				continue
			}
			sims[u] = Cosine(targetRow, c.matrix.Row(u))
		}
	}

	workers := c.workers
	if workers > users {
		workers = users
	}
	if workers <= 1 {
		fill(0, users)
		return sims, ctx.Err()
	}

	var wg sync.WaitGroup
	chunkSize := (users + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > users {
			end = users
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fill(start, end)
		}(start, end)
	}
	wg.Wait()

	return sims, ctx.Err()
}

// predict computes sum(sim*rating)/sum(sim) over the other users who rated
// each title the target has not rated. Negative similarities are kept.
// Titles whose similarity total is exactly zero are omitted. Output is in
// title index order, which the ranker uses to break ties.
func (c *CollaborativeEngine) predict(target int, sims []float64) []Scored[string] {
	users, titles := c.matrix.Dims()
	targetRow := c.matrix.Row(target)
	titleNames := c.matrix.Index().Titles()

	predictions := make([]Scored[string], 0, titles)
	for t := 0; t < titles; t++ {
		if targetRow[t] != 0 {
			continue
		}

		var weightedSum, simTotal float64
		for u := 0; u < users; u++ {
			if u == target {
				continue
			}
			rating := c.matrix.At(u, t)
			if rating == 0 {
				continue
			}
			weightedSum += sims[u] * rating
			simTotal += sims[u]
		}

		if simTotal != 0 {
			predictions = append(predictions, Scored[string]{
				Item:  titleNames[t],
				Score: weightedSum / simTotal,
			})
		}
	}
	return predictions
}
