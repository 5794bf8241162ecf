// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showrec/internal/cache"
	"github.com/tomtom215/showrec/internal/logging"
	"github.com/tomtom215/showrec/internal/metrics"
)

// Snapshot is the immutable corpus the engines are built from.
type Snapshot struct {
	Ratings  []Rating
	Shows    []Show
	Metadata *MetadataTable
	LoadedAt time.Time
}

// Engine serves every recommendation kind from one snapshot.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	collaborative *CollaborativeEngine
	content       *ContentEngine
	preference    *PreferenceEngine
	metadata      *MetadataTable

	// userCache is nil when caching is disabled.
	userCache *cache.LRU[userResult]

	stats SnapshotStats
}

// userResult is a cached collaborative list.
type userResult struct {
	items      []Recommendation
	candidates int
}

func userCacheKey(user string, k int) string {
	return user + "\x00" + strconv.Itoa(k)
}

// NewEngine validates cfg and builds the per-kind engines for snap.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(snap *Snapshot, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if snap == nil {
		return nil, errors.New("snapshot is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger = logger.With().Str("component", "recommend").Logger()

	e := &Engine{
		config:        cfg,
		logger:        logger,
		collaborative: NewCollaborativeEngine(snap.Ratings, cfg.Collaborative, logger),
		content:       NewContentEngine(snap.Shows, cfg.Content, logger),
		preference:    NewPreferenceEngine(snap.Shows, logger),
		metadata:      snap.Metadata,
	}
	if cfg.Cache.MaxEntries > 0 {
		e.userCache = cache.NewLRU[userResult](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	users, titles := e.collaborative.Matrix().Dims()
	e.stats = SnapshotStats{
		Ratings:  len(snap.Ratings),
		Users:    users,
		Titles:   titles,
		Shows:    len(snap.Shows),
		Metadata: snap.Metadata.Len(),
		LoadedAt: snap.LoadedAt,
	}

	metrics.SetSnapshotSize("ratings", e.stats.Ratings)
	metrics.SetSnapshotSize("users", users)
	metrics.SetSnapshotSize("titles", titles)
	metrics.SetSnapshotSize("shows", e.stats.Shows)
	metrics.SetSnapshotSize("metadata", e.stats.Metadata)

	logger.Info().
		Int("ratings", e.stats.Ratings).
		Int("users", users).
		Int("titles", titles).
		Int("shows", e.stats.Shows).
		Int("metadata", e.stats.Metadata).
		Int("workers", cfg.Collaborative.Workers).
		Msg("recommendation engine ready")

	return e, nil
}

// Stats returns counts describing the loaded snapshot.
func (e *Engine) Stats() SnapshotStats {
	return e.stats
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// DefaultK returns the configured k for kind, for requests that omit it.
func (e *Engine) DefaultK(kind string) int {
	return e.config.DefaultK(kind)
}

// RecommendForUser returns collaborative recommendations for user. k is
// used as given: k <= 0 yields an empty list and k above Limits.MaxK is
// rejected with ErrKTooLarge. Titles found in the metadata table carry
// their ShowInfo.
func (e *Engine) RecommendForUser(ctx context.Context, user string, k int) (*Response, error) {
	start := time.Now()
	logger := e.requestLogger(ctx, KindCollaborative)
	if err := e.config.checkK(k); err != nil {
		e.recordFailure(KindCollaborative, start, err)
		return nil, err
	}

	key := userCacheKey(user, k)
	if e.userCache != nil {
		cached, ok := e.userCache.Get(key)
		metrics.RecordCacheLookup(ok)
		if ok {
			resp := e.finish(ctx, KindCollaborative, k, cloneRecommendations(cached.items), cached.candidates, start)
			resp.Metadata.Cached = true
			return resp, nil
		}
	}

	titles, candidates, err := e.collaborative.Recommend(ctx, user, k)
	if err != nil {
		e.recordFailure(KindCollaborative, start, err)
		if errors.Is(err, ErrNotFound) {
			logger.Debug().Str("user", user).Msg("unknown user")
		}
		return nil, err
	}

	items := make([]Recommendation, len(titles))
	for i, t := range titles {
		items[i] = Recommendation{Title: t.Title, Score: t.Score}
		if info, ok := e.metadata.Lookup(t.Title); ok {
			items[i].Info = &info
		}
	}

	if e.userCache != nil {
		e.userCache.Add(key, userResult{items: cloneRecommendations(items), candidates: candidates})
	}

	return e.finish(ctx, KindCollaborative, k, items, candidates, start), nil
}

// RecommendByContent returns content-based recommendations for q.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (e *Engine) RecommendByContent(ctx context.Context, q ContentQuery) (*Response, error) {
	start := time.Now()
	k := q.K
	if err := e.config.checkK(k); err != nil {
		e.recordFailure(KindContent, start, err)
		return nil, err
	}

	shows, candidates, err := e.content.Recommend(ctx, q, k)
	if err != nil {
		e.recordFailure(KindContent, start, err)
		return nil, err
	}

	return e.finish(ctx, KindContent, k, showItems(shows), candidates, start), nil
}

// RecommendByPreferences returns keyword-overlap recommendations for prefs.
func (e *Engine) RecommendByPreferences(ctx context.Context, prefs Preferences, k int) (*Response, error) {
	start := time.Now()
	if err := e.config.checkK(k); err != nil {
		e.recordFailure(KindPreference, start, err)
		return nil, err
	}

	shows, candidates, err := e.preference.Recommend(ctx, prefs, k)
	if err != nil {
		e.recordFailure(KindPreference, start, err)
		return nil, err
	}

	return e.finish(ctx, KindPreference, k, showItems(shows), candidates, start), nil
}

func showItems(shows []ScoredShow) []Recommendation {
	items := make([]Recommendation, len(shows))
	for i := range shows {
		show := shows[i].Show
		items[i] = Recommendation{Title: show.Title, Score: shows[i].Score, Show: &show}
	}
	return items
}

// cloneRecommendations copies items and their ShowInfo so cached lists
// never share memory with served responses.
func cloneRecommendations(items []Recommendation) []Recommendation {
	out := slices.Clone(items)
	for i := range out {
		if out[i].Info != nil {
			info := *out[i].Info
			out[i].Info = &info
		}
	}
	return out
}

func (e *Engine) finish(ctx context.Context, kind string, k int, items []Recommendation, candidates int, start time.Time) *Response {
	latency := time.Since(start)

	outcome := metrics.OutcomeOK
	if len(items) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(kind, outcome, latency, candidates, len(items))

	logger := e.requestLogger(ctx, kind)
	logger.Debug().
		Int("k", k).
		Int("candidates", candidates).
		Int("returned", len(items)).
		Dur("latency", latency).
		Msg("recommendation complete")

	return &Response{
		Items:           items,
		TotalCandidates: candidates,
		Metadata: ResponseMetadata{
			RequestID: logging.RequestIDFromContext(ctx),
			Kind:      kind,
			K:         k,
			LatencyMS: latency.Milliseconds(),
			Timestamp: time.Now(),
		},
	}
}

func (e *Engine) recordFailure(kind string, start time.Time, err error) {
	outcome := metrics.OutcomeError
	if errors.Is(err, ErrNotFound) {
		outcome = metrics.OutcomeNotFound
	}
	metrics.RecordRecommendation(kind, outcome, time.Since(start), 0, 0)
}

func (e *Engine) requestLogger(ctx context.Context, kind string) zerolog.Logger {
	logCtx := e.logger.With().Str("kind", kind)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	return logCtx.Logger()
}
