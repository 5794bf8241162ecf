// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"showrec.yaml",
	"showrec.yml",
	"/etc/showrec/config.yaml",
	"/etc/showrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	catalogColumns := CatalogColumns{
		Title:       "title",
		Platform:    "platform",
		Genre:       "listed_in",
		Language:    "country",
		Description: "description",
		ReleaseYear: "release_year",
	}

	return &Config{
		Data: DataConfig{
			RatingsPath:  "data/user_ratings.csv",
			MetadataPath: "data/master_ott.csv",
			CatalogPaths: []string{
				"Netflix=data/netflix_titles.csv",
				"Amazon=data/amazon_prime_titles.csv",
				"Disney=data/disney_plus_titles.csv",
			},
			RatingColumns: RatingColumns{
				User:   "user",
				Title:  "title",
				Rating: "rating",
			},
			CatalogColumns:  catalogColumns,
			MetadataColumns: catalogColumns,
		},
		Recommend: RecommendConfig{
			CollaborativeDefaultK: 5,
			Workers:               1, // sequential; results are identical for any value
			ContentDefaultK:       5,
			IncludeDescription:    false,
			PreferenceDefaultK:    10,
			MaxK:                  100,
			CacheSize:             1024,
			CacheTTL:              10 * time.Minute,
		},
		Profiles: ProfilesConfig{
			StorePath:    "/data/profiles",
			InMemory:     false,
			HistoryLimit: 50,
			GCInterval:   10 * time.Minute,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like LoadWithKoanf but reads the YAML file at path when
// path is not empty. A missing explicit file is an error.
func LoadFrom(path string) (*Config, error) {
	return LoadFromWithOverrides(path, nil)
}

// LoadFromWithOverrides adds a final layer above the environment. Keys are
// config paths ("data.ratings_path"); empty values are ignored. The CLI uses
// it for command-line flags.
func LoadFromWithOverrides(path string, overrides map[string]string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: explicit overrides
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"data.catalog_paths",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := lo.Compact(lo.Map(strings.Split(strVal, ","), func(p string, _ int) string {
			return strings.TrimSpace(p)
		}))
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	// Data
	"ratings_path":      "data.ratings_path",
	"metadata_path":     "data.metadata_path",
	"catalog_paths":     "data.catalog_paths",
	"ratings_user_col":  "data.rating_columns.user",
	"ratings_title_col": "data.rating_columns.title",
	"ratings_value_col": "data.rating_columns.rating",

	// Recommendation engine
	"collaborative_default_k":     "recommend.collaborative_default_k",
	"recommend_workers":           "recommend.workers",
	"content_default_k":           "recommend.content_default_k",
	"content_include_description": "recommend.include_description",
	"preference_default_k":        "recommend.preference_default_k",
	"max_k":                       "recommend.max_k",
	"recommend_cache_size":        "recommend.cache_size",
	"recommend_cache_ttl":         "recommend.cache_ttl",

	// Profiles
	"profile_store_path":      "profiles.store_path",
	"profile_store_in_memory": "profiles.in_memory",
	"profile_history_limit":   "profiles.history_limit",
	"profile_gc_interval":     "profiles.gc_interval",

	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// variables never leak into the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
