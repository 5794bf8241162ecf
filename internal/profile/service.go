// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/tomtom215/showrec/internal/metrics"
	"github.com/tomtom215/showrec/internal/recommend"
	"github.com/tomtom215/showrec/internal/validation"
)

// Profile operations, used as metrics labels.
const (
	OpGet       = "get"
	OpUpdate    = "update"
	OpRecommend = "recommend"
	OpHistory   = "history"
)

// Recommender scores a keyword profile against the catalog.
type Recommender interface {
	RecommendByPreferences(ctx context.Context, prefs recommend.Preferences, k int) (*recommend.Response, error)
}

// Result is the outcome of Service.Recommend.
type Result struct {
	Username        string                     `json:"username"`
	Recommendations []recommend.Recommendation `json:"recommendations"`

	// FromHistory is set when the current preferences matched nothing and
	// the previous list was returned instead.
	FromHistory bool `json:"from_history"`

	History []HistoryEntry `json:"history"`
}

// Service manages profiles and their recommendation history.
type Service struct {
	store        Store
	recommender  Recommender
	historyLimit int
	logger       zerolog.Logger
	now          func() time.Time
}

// NewService creates a profile service. historyLimit caps the stored
// history per profile; 0 keeps every entry.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(store Store, recommender Recommender, historyLimit int, logger zerolog.Logger) *Service {
	return &Service{
		store:        store,
		recommender:  recommender,
		historyLimit: historyLimit,
		logger:       logger.With().Str("component", "profile").Logger(),
		now:          time.Now,
	}
}

// Get returns the stored profile for username.
func (s *Service) Get(ctx context.Context, username string) (*Profile, error) {
	p, err := s.store.Get(ctx, NormalizeUsername(username))
	metrics.RecordProfileOperation(OpGet, ignoreNotFound(err))
	return p, err
}

// UpdatePreferences creates the profile if needed and replaces its
// keyword sets. Recommendation history is kept.
func (s *Service) UpdatePreferences(ctx context.Context, username string, req *UpdateRequest) (*Profile, error) {
	p, err := s.update(ctx, NormalizeUsername(username), req)
	metrics.RecordProfileOperation(OpUpdate, err)
	return p, err
}

func (s *Service) update(ctx context.Context, username string, req *UpdateRequest) (*Profile, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}

	p, err := s.store.Update(ctx, username, true, func(p *Profile) error {
		now := s.now()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.FavoriteGenres = ParseList(req.Genres...)
		p.FavoriteLanguages = ParseList(req.Languages...)
		p.MoodKeywords = ParseList(req.Moods...)
		p.Platforms = ParseList(req.Platforms...)
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save profile %q: %w", username, err)
	}

	s.logger.Info().
		Str("username", username).
		Strs("genres", p.FavoriteGenres).
		Strs("platforms", p.Platforms).
		Msg("profile preferences updated")
	return p, nil
}

// Recommend scores the profile's preferences. A non-empty list is stored
// as the profile's latest recommendations and appended to its history;
// an empty list falls back to the previously stored recommendations.
// Scoring and the history write run in one store transaction.
func (s *Service) Recommend(ctx context.Context, username string, k int) (*Result, error) {
	res, err := s.recommend(ctx, NormalizeUsername(username), k)
	metrics.RecordProfileOperation(OpRecommend, ignoreNotFound(err))
	return res, err
}

func (s *Service) recommend(ctx context.Context, username string, k int) (*Result, error) {
	var result *Result

	_, err := s.store.Update(ctx, username, false, func(p *Profile) error {
		resp, err := s.recommender.RecommendByPreferences(ctx, p.Preferences(), k)
		if err != nil {
			return fmt.Errorf("recommend for profile %q: %w", username, err)
		}

		result = &Result{Username: username}
		if len(resp.Items) == 0 {
			result.Recommendations = p.OldRecommendations
			result.FromHistory = true
			result.History = p.History
			return ErrUnchanged
		}

		p.OldRecommendations = resp.Items
		p.History = append(p.History, HistoryEntry{
			Timestamp: s.now(),
			Titles: lo.Map(resp.Items, func(r recommend.Recommendation, _ int) string {
				return r.Title
			}),
		})
		if s.historyLimit > 0 && len(p.History) > s.historyLimit {
			p.History = p.History[len(p.History)-s.historyLimit:]
		}
		p.UpdatedAt = s.now()

		result.Recommendations = resp.Items
		result.History = p.History
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.FromHistory {
		metrics.RecordProfileFallback()
		s.logger.Debug().Str("username", username).Int("previous", len(result.Recommendations)).
			Msg("no matches for current preferences, serving previous recommendations")
		if result.Recommendations == nil {
			result.Recommendations = []recommend.Recommendation{}
		}
	}
	return result, nil
}

// History returns the stored recommendation history, oldest first.
func (s *Service) History(ctx context.Context, username string) ([]HistoryEntry, error) {
	p, err := s.store.Get(ctx, NormalizeUsername(username))
	metrics.RecordProfileOperation(OpHistory, ignoreNotFound(err))
	if err != nil {
		return nil, err
	}
	if p.History == nil {
		return []HistoryEntry{}, nil
	}
	return p.History, nil
}

// Count returns the number of stored profiles.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// ignoreNotFound keeps lookups of absent profiles out of the error series.
func ignoreNotFound(err error) error {
	if errors.Is(err, ErrProfileNotFound) {
		return nil
	}
	return err
}
