// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/showrec/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if err := c.validateProfiles(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateData() error {
	if c.Data.RatingsPath == "" && len(c.Data.CatalogPaths) == 0 {
		return errors.New("at least one of RATINGS_PATH or CATALOG_PATHS must be set")
	}
	cols := c.Data.RatingColumns
	if c.Data.RatingsPath != "" && (cols.User == "" || cols.Title == "" || cols.Rating == "") {
		return errors.New("data.rating_columns: user, title and rating column names are required")
	}
	if c.Data.CatalogColumns.Title == "" {
		return errors.New("data.catalog_columns.title is required")
	}
	if c.Data.MetadataPath != "" && c.Data.MetadataColumns.Title == "" {
		return errors.New("data.metadata_columns.title is required")
	}
	return nil
}

func (c *Config) validateProfiles() error {
	if !c.Profiles.InMemory && c.Profiles.StorePath == "" {
		return errors.New("PROFILE_STORE_PATH is required unless PROFILE_STORE_IN_MEMORY=true")
	}
	if c.Profiles.HistoryLimit < 0 {
		return fmt.Errorf("PROFILE_HISTORY_LIMIT must be non-negative, got %d", c.Profiles.HistoryLimit)
	}
	if c.Profiles.GCInterval < 0 {
		return fmt.Errorf("PROFILE_GC_INTERVAL must be non-negative, got %v", c.Profiles.GCInterval)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if verr := validation.ValidateStruct(&c.Logging); verr != nil {
		return fmt.Errorf("logging: %w", verr)
	}
	return nil
}
