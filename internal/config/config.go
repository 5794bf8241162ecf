// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

// Package config loads Showrec configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
//
// Environment Variables:
//   - RATINGS_PATH, METADATA_PATH: rating and enrichment CSV files
//   - CATALOG_PATHS: comma-separated catalog files, optionally "Platform=path"
//   - RECOMMEND_WORKERS, CONTENT_DEFAULT_K, PREFERENCE_DEFAULT_K, MAX_K
//   - PROFILE_STORE_PATH, PROFILE_STORE_IN_MEMORY, PROFILE_HISTORY_LIMIT
//   - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
//   - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//   - CONFIG_PATH: explicit YAML file location
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/showrec/internal/recommend"
)

// Config is the complete Showrec configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Profiles  ProfilesConfig  `koanf:"profiles"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the CSV inputs and names their columns.
type DataConfig struct {
	RatingsPath  string   `koanf:"ratings_path"`
	MetadataPath string   `koanf:"metadata_path"`
	CatalogPaths []string `koanf:"catalog_paths"`

	RatingColumns   RatingColumns  `koanf:"rating_columns"`
	CatalogColumns  CatalogColumns `koanf:"catalog_columns"`
	MetadataColumns CatalogColumns `koanf:"metadata_columns"`
}

// RatingColumns names the header fields of the ratings file.
type RatingColumns struct {
	User   string `koanf:"user"`
	Title  string `koanf:"title"`
	Rating string `koanf:"rating"`
}

// CatalogColumns names the header fields of a catalog or metadata file.
// Only Title is required to exist; other missing columns read as empty.
type CatalogColumns struct {
	Title       string `koanf:"title"`
	Platform    string `koanf:"platform"`
	Genre       string `koanf:"genre"`
	Language    string `koanf:"language"`
	Description string `koanf:"description"`
	ReleaseYear string `koanf:"release_year"`
}

// CatalogSource is one parsed entry of DataConfig.CatalogPaths.
type CatalogSource struct {
	Platform string
	Path     string
}

// CatalogSources parses CatalogPaths. An entry is either "Platform=path"
// or a bare path; for a bare path the platform column of the file is used.
func (d *DataConfig) CatalogSources() []CatalogSource {
	sources := make([]CatalogSource, 0, len(d.CatalogPaths))
	for _, entry := range d.CatalogPaths {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if platform, path, ok := strings.Cut(entry, "="); ok {
			sources = append(sources, CatalogSource{
				Platform: strings.TrimSpace(platform),
				Path:     filepath.Clean(strings.TrimSpace(path)),
			})
			continue
		}
		sources = append(sources, CatalogSource{Path: filepath.Clean(entry)})
	}
	return sources
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	CollaborativeDefaultK int  `koanf:"collaborative_default_k"`
	Workers               int  `koanf:"workers"`
	ContentDefaultK       int  `koanf:"content_default_k"`
	IncludeDescription    bool `koanf:"include_description"`
	PreferenceDefaultK    int  `koanf:"preference_default_k"`
	MaxK                  int  `koanf:"max_k"`

	// CacheSize bounds the collaborative result cache; 0 disables it.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// EngineConfig converts the settings to the engine's configuration type.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Collaborative: recommend.CollaborativeConfig{
			DefaultK: r.CollaborativeDefaultK,
			Workers:  r.Workers,
		},
		Content: recommend.ContentConfig{
			DefaultK:           r.ContentDefaultK,
			IncludeDescription: r.IncludeDescription,
		},
		Preference: recommend.PreferenceConfig{DefaultK: r.PreferenceDefaultK},
		Limits:     recommend.LimitsConfig{MaxK: r.MaxK},
		Cache:      recommend.CacheConfig{MaxEntries: r.CacheSize, TTL: r.CacheTTL},
	}
}

// ProfilesConfig holds the BadgerDB profile store settings.
type ProfilesConfig struct {
	StorePath string `koanf:"store_path"`
	InMemory  bool   `koanf:"in_memory"`

	// HistoryLimit caps stored history entries per profile; 0 keeps all.
	HistoryLimit int `koanf:"history_limit"`

	// GCInterval is how often the value log is garbage collected; 0 disables it.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"loglevel"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
