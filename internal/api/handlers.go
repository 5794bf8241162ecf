// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showrec/internal/profile"
	"github.com/tomtom215/showrec/internal/recommend"
)

// defaultRequestTimeout bounds a single recommendation request.
const defaultRequestTimeout = 10 * time.Second

// Recommender is the engine surface used by the handlers.
type Recommender interface {
	RecommendForUser(ctx context.Context, user string, k int) (*recommend.Response, error)
	RecommendByContent(ctx context.Context, q recommend.ContentQuery) (*recommend.Response, error)
	DefaultK(kind string) int
	Stats() recommend.SnapshotStats
}

// ProfileService is the profile surface used by the handlers.
type ProfileService interface {
	Get(ctx context.Context, username string) (*profile.Profile, error)
	UpdatePreferences(ctx context.Context, username string, req *profile.UpdateRequest) (*profile.Profile, error)
	Recommend(ctx context.Context, username string, k int) (*profile.Result, error)
	History(ctx context.Context, username string) ([]profile.HistoryEntry, error)
	Count(ctx context.Context) (int, error)
}

// Handler serves the API endpoints.
type Handler struct {
	engine         Recommender
	profiles       ProfileService
	logger         zerolog.Logger
	startTime      time.Time
	requestTimeout time.Duration
}

// NewHandler creates a Handler. profiles may be nil, in which case the
// profile endpoints answer 503.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine Recommender, profiles ProfileService, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:         engine,
		profiles:       profiles,
		logger:         logger.With().Str("component", "api").Logger(),
		startTime:      time.Now(),
		requestTimeout: defaultRequestTimeout,
	}
}

// SetRequestTimeout bounds how long a single recommendation request may run.
// Non-positive values are ignored.
func (h *Handler) SetRequestTimeout(d time.Duration) {
	if d > 0 {
		h.requestTimeout = d
	}
}
