// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package dataset

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showrec/internal/config"
	"github.com/tomtom215/showrec/internal/metrics"
	"github.com/tomtom215/showrec/internal/recommend"
	"github.com/tomtom215/showrec/internal/validation"
)

// Dataset names used for logging and metrics labels.
const (
	DatasetRatings  = "ratings"
	DatasetCatalog  = "catalog"
	DatasetMetadata = "metadata"
)

// LoadStats counts the rows of one dataset.
type LoadStats struct {
	Dataset  string        `json:"dataset"`
	Files    int           `json:"files"`
	Loaded   int           `json:"loaded"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

func (s *LoadStats) record() {
	metrics.RecordDatasetLoad(s.Dataset, s.Loaded, s.Skipped, s.Duration)
}

// Loader turns CSV files into recommendation inputs.
type Loader struct {
	reader *Reader
	logger zerolog.Logger
}

// NewLoader creates a Loader with its own DuckDB connection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(logger zerolog.Logger) (*Loader, error) {
	logger = logger.With().Str("component", "dataset").Logger()
	reader, err := NewReader(logger)
	if err != nil {
		return nil, err
	}
	return &Loader{reader: reader, logger: logger}, nil
}

// Close releases the DuckDB connection.
func (l *Loader) Close() error {
	return l.reader.Close()
}

// LoadRatings reads user ratings. Rows with a missing user or title or a
// rating that is not a positive finite number are skipped.
func (l *Loader) LoadRatings(ctx context.Context, path string, cols config.RatingColumns) ([]recommend.Rating, LoadStats, error) {
	start := time.Now()
	stats := LoadStats{Dataset: DatasetRatings, Files: 1}

	var ratings []recommend.Rating
	proj := Projection{
		Names:    []string{cols.User, cols.Title, cols.Rating},
		Required: []bool{true, true, true},
	}
	line := 1 // header
	rejected, err := l.reader.ReadRows(ctx, path, proj, func(v []string) error {
		line++
		value, perr := strconv.ParseFloat(v[2], 64)
		if perr != nil {
			stats.Skipped++
			l.logger.Debug().Str("file", path).Int("row", line).Str("rating", v[2]).Msg("unparsable rating, row skipped")
			return nil
		}
		r := recommend.Rating{User: v[0], Title: v[1], Value: value}
		if verr := validation.ValidateStruct(&r); verr != nil {
			stats.Skipped++
			l.logger.Debug().Str("file", path).Int("row", line).Str("reason", verr.Error()).Msg("invalid rating, row skipped")
			return nil
		}
		ratings = append(ratings, r)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("load ratings: %w", err)
	}
	stats.Skipped += rejected

	stats.Loaded = len(ratings)
	stats.Duration = time.Since(start)
	stats.record()
	l.logStats(&stats)
	return ratings, stats, nil
}

// LoadCatalog reads every catalog source in order. A source with a
// platform overrides the platform column of its file. Rows without a
// title, genre or language are skipped.
func (l *Loader) LoadCatalog(ctx context.Context, sources []config.CatalogSource, cols config.CatalogColumns) ([]recommend.Show, LoadStats, error) {
	start := time.Now()
	stats := LoadStats{Dataset: DatasetCatalog, Files: len(sources)}

	var shows []recommend.Show
	proj := showProjection(cols)
	for _, src := range sources {
		rejected, err := l.reader.ReadRows(ctx, src.Path, proj, func(v []string) error {
			show := showFromRow(v)
			if src.Platform != "" {
				show.Platform = src.Platform
			}
			if show.Title == "" || show.Genre == "" || show.Language == "" {
				stats.Skipped++
				return nil
			}
			shows = append(shows, show)
			return nil
		})
		if err != nil {
			return nil, stats, fmt.Errorf("load catalog: %w", err)
		}
		stats.Skipped += rejected
	}

	stats.Loaded = len(shows)
	stats.Duration = time.Since(start)
	stats.record()
	l.logStats(&stats)
	return shows, stats, nil
}

// LoadMetadata reads the enrichment table. Only rows without a title are skipped.
func (l *Loader) LoadMetadata(ctx context.Context, path string, cols config.CatalogColumns) (*recommend.MetadataTable, LoadStats, error) {
	start := time.Now()
	stats := LoadStats{Dataset: DatasetMetadata, Files: 1}

	var infos []recommend.ShowInfo
	rejected, err := l.reader.ReadRows(ctx, path, showProjection(cols), func(v []string) error {
		show := showFromRow(v)
		if show.Title == "" {
			stats.Skipped++
			return nil
		}
		infos = append(infos, recommend.ShowInfo{
			Title:       show.Title,
			Platform:    show.Platform,
			ReleaseYear: show.ReleaseYear,
			Genres:      show.Genre,
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("load metadata: %w", err)
	}
	stats.Skipped += rejected

	stats.Loaded = len(infos)
	stats.Duration = time.Since(start)
	stats.record()
	l.logStats(&stats)
	return recommend.NewMetadataTable(infos), stats, nil
}

func showProjection(cols config.CatalogColumns) Projection {
	return Projection{
		Names:    []string{cols.Title, cols.Platform, cols.Genre, cols.Language, cols.Description, cols.ReleaseYear},
		Required: []bool{true, false, false, false, false, false},
	}
}

func showFromRow(v []string) recommend.Show {
	return recommend.Show{
		Title:       v[0],
		Platform:    v[1],
		Genre:       v[2],
		Language:    v[3],
		Description: v[4],
		ReleaseYear: v[5],
	}
}

func (l *Loader) logStats(s *LoadStats) {
	event := l.logger.Info()
	if s.Skipped > 0 {
		event = l.logger.Warn()
	}
	event.
		Str("dataset", s.Dataset).
		Int("files", s.Files).
		Int("loaded", s.Loaded).
		Int("skipped", s.Skipped).
		Dur("duration", s.Duration).
		Msg("dataset loaded")
}

// LoadSnapshot loads every configured input. Unset paths produce empty
// datasets rather than errors.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadSnapshot(ctx context.Context, cfg *config.DataConfig, logger zerolog.Logger) (*recommend.Snapshot, []LoadStats, error) {
	loader, err := NewLoader(logger)
	if err != nil {
		return nil, nil, err
	}
	defer loader.Close() //nolint:errcheck // in-memory connection

	snap := &recommend.Snapshot{}
	var all []LoadStats

	if cfg.RatingsPath != "" {
		ratings, stats, err := loader.LoadRatings(ctx, cfg.RatingsPath, cfg.RatingColumns)
		if err != nil {
			return nil, nil, err
		}
		snap.Ratings = ratings
		all = append(all, stats)
	}

	if sources := cfg.CatalogSources(); len(sources) > 0 {
		shows, stats, err := loader.LoadCatalog(ctx, sources, cfg.CatalogColumns)
		if err != nil {
			return nil, nil, err
		}
		snap.Shows = shows
		all = append(all, stats)
	}

	if cfg.MetadataPath != "" {
		table, stats, err := loader.LoadMetadata(ctx, cfg.MetadataPath, cfg.MetadataColumns)
		if err != nil {
			return nil, nil, err
		}
		snap.Metadata = table
		all = append(all, stats)
	}

	snap.LoadedAt = time.Now()
	return snap, all, nil
}
