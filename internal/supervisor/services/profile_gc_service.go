// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/showrec/internal/metrics"
)

// gcDiscardRatio is the fraction of a value log file that must be stale
// before badger rewrites it.
const gcDiscardRatio = 0.5

// ValueLogCollector is satisfied by *badger.DB.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// ProfileGCService periodically reclaims value log space in the profile
// store. Every profile update rewrites the whole record, so stale versions
// accumulate quickly for active users.
type ProfileGCService struct {
	db       ValueLogCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewProfileGCService creates the GC loop for db.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewProfileGCService(db ValueLogCollector, interval time.Duration, logger zerolog.Logger) *ProfileGCService {
	return &ProfileGCService{
		db:       db,
		interval: interval,
		logger:   logger.With().Str("service", "profile-gc").Logger(),
		name:     "profile-gc",
	}
}

// Serve implements suture.Service. A failed cycle is logged and retried on
// the next tick; a disabled interval or an in-memory store stops the service
// without a restart.
func (s *ProfileGCService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("profile GC disabled")
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Dur("interval", s.interval).Msg("profile GC service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("profile GC service shutting down")
			return ctx.Err()

		case <-ticker.C:
			rewrites, err := s.collect(ctx)
			switch {
			case errors.Is(err, badger.ErrGCInMemoryMode):
				s.logger.Info().Msg("profile store is in memory, GC not needed")
				return suture.ErrDoNotRestart
			case errors.Is(err, context.Canceled):
				return ctx.Err()
			case err != nil:
				s.logger.Warn().Err(err).Msg("profile GC cycle failed")
			default:
				s.logger.Debug().Int("rewrites", rewrites).Msg("profile GC cycle complete")
			}
		}
	}
}

// collect rewrites value log files until badger reports nothing left to do.
func (s *ProfileGCService) collect(ctx context.Context) (rewrites int, err error) {
	start := time.Now()
	defer func() {
		if !errors.Is(err, badger.ErrGCInMemoryMode) {
			metrics.RecordProfileGC(time.Since(start), err)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return rewrites, err
		}
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return rewrites, nil
		}
		if err != nil {
			if errors.Is(err, badger.ErrGCInMemoryMode) {
				return rewrites, err
			}
			return rewrites, fmt.Errorf("run value log GC: %w", err)
		}
		rewrites++
	}
}

// String identifies the service in supervisor events.
func (s *ProfileGCService) String() string {
	return s.name
}
