// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engines.
type Config struct {
	Collaborative CollaborativeConfig `json:"collaborative" koanf:"collaborative"`
	Content       ContentConfig       `json:"content" koanf:"content"`
	Preference    PreferenceConfig    `json:"preference" koanf:"preference"`
	Limits        LimitsConfig        `json:"limits" koanf:"limits"`
	Cache         CacheConfig         `json:"cache" koanf:"cache"`
}

// CollaborativeConfig contains parameters for user-based collaborative filtering.
type CollaborativeConfig struct {
	// DefaultK is used when a request does not specify k.
	// Default: 5.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// Workers splits the similarity pass across goroutines.
	// 1 runs sequentially. Results do not depend on this value.
	// Default: 1.
	Workers int `json:"workers" koanf:"workers"`
}

// ContentConfig contains parameters for TF-IDF content scoring.
type ContentConfig struct {
	// DefaultK is used when a query does not specify k.
	// Default: 5.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// IncludeDescription appends the show description to its document,
	// which otherwise holds only genre and language.
	// Default: false.
	IncludeDescription bool `json:"include_description" koanf:"include_description"`
}

// PreferenceConfig contains parameters for profile keyword scoring.
type PreferenceConfig struct {
	// DefaultK is the number of shows returned per profile request.
	// Default: 10.
	DefaultK int `json:"default_k" koanf:"default_k"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// MaxK is the largest k a query may ask for. Default: 100.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// CacheConfig controls the collaborative result cache.
type CacheConfig struct {
	// MaxEntries bounds the cache; 0 disables caching.
	// Default: 1024.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`

	// TTL is how long a cached list is served.
	// Default: 10m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Collaborative: CollaborativeConfig{
			DefaultK: 5,
			Workers:  1,
		},
		Content: ContentConfig{
			DefaultK:           5,
			IncludeDescription: false,
		},
		Preference: PreferenceConfig{
			DefaultK: 10,
		},
		Limits: LimitsConfig{
			MaxK: 100,
		},
		Cache: CacheConfig{
			MaxEntries: 1024,
			TTL:        10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Collaborative.DefaultK < 1 {
		return fmt.Errorf("collaborative.default_k must be positive, got %d", c.Collaborative.DefaultK)
	}
	if c.Collaborative.Workers < 1 {
		return fmt.Errorf("collaborative.workers must be positive, got %d", c.Collaborative.Workers)
	}
	if c.Content.DefaultK < 1 {
		return fmt.Errorf("content.default_k must be positive, got %d", c.Content.DefaultK)
	}
	if c.Preference.DefaultK < 1 {
		return fmt.Errorf("preference.default_k must be positive, got %d", c.Preference.DefaultK)
	}

	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be non-negative, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.MaxEntries > 0 && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %v", c.Cache.TTL)
	}

	for name, k := range map[string]int{
		"collaborative.default_k": c.Collaborative.DefaultK,
		"content.default_k":       c.Content.DefaultK,
		"preference.default_k":    c.Preference.DefaultK,
	} {
		if c.Limits.MaxK < k {
			return fmt.Errorf("limits.max_k must be >= %s, got %d < %d", name, c.Limits.MaxK, k)
		}
	}

	return nil
}

// DefaultK returns the configured default k for a recommendation kind.
// Callers use it when a request leaves k unset.
func (c *Config) DefaultK(kind string) int {
	switch kind {
	case KindCollaborative:
		return c.Collaborative.DefaultK
	case KindContent:
		return c.Content.DefaultK
	default:
		return c.Preference.DefaultK
	}
}

// checkK rejects k above MaxK. Non-positive values are allowed and yield
// an empty list.
func (c *Config) checkK(k int) error {
	if k > c.Limits.MaxK {
		return fmt.Errorf("%w: %d > %d", ErrKTooLarge, k, c.Limits.MaxK)
	}
	return nil
}
