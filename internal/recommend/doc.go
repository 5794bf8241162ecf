// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

// Package recommend implements the Showrec recommendation engines.
//
// # Architecture
//
// Three scorers share one vector-space layer and one ranker:
//
//   - Collaborative: user-user cosine similarity over a dense rating matrix,
//     predicting unrated titles as a similarity-weighted average of the
//     ratings given by other users.
//   - Content: TF-IDF over each show's genre and language text, scored by
//     cosine similarity against a free-text mood query.
//   - Preference: keyword overlap between a stored viewer profile and the
//     catalog.
//
// All query state (similarity arrays, predictions, TF-IDF vectors) is built
// per request from an immutable Snapshot. Nothing is cached between
// requests, so an Engine is safe for concurrent use.
//
// # Usage
//
//	engine, err := recommend.NewEngine(snapshot, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.RecommendForUser(ctx, "u1", 5)
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // unknown user
//	}
//
// # Determinism
//
// Users and titles are indexed in lexicographic order and the ranker is
// stable, so equal scores keep their index order (titles) or catalog order
// (shows). The same snapshot and query always yield the same list.
package recommend
