// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/showrec/internal/api"
	"github.com/tomtom215/showrec/internal/config"
	"github.com/tomtom215/showrec/internal/dataset"
	"github.com/tomtom215/showrec/internal/logging"
	"github.com/tomtom215/showrec/internal/profile"
	"github.com/tomtom215/showrec/internal/recommend"
	"github.com/tomtom215/showrec/internal/supervisor"
	"github.com/tomtom215/showrec/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("ratings_path", cfg.Data.RatingsPath).
		Strs("catalog_paths", cfg.Data.CatalogPaths).
		Str("metadata_path", cfg.Data.MetadataPath).
		Msg("Starting Showrec")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, _, err := dataset.LoadSnapshot(ctx, &cfg.Data, logging.WithComponent("dataset"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load datasets")
	}

	engine, err := recommend.NewEngine(snap, cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}
	stats := engine.Stats()
	logging.Info().
		Int("ratings", stats.Ratings).
		Int("users", stats.Users).
		Int("titles", stats.Titles).
		Int("shows", stats.Shows).
		Msg("Recommendation engine ready")

	db, err := profile.OpenBadger(cfg.Profiles.StorePath, cfg.Profiles.InMemory)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open profile store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing profile store")
		}
	}()
	if cfg.Profiles.InMemory {
		logging.Warn().Msg("Profile store is in memory; profiles are lost on restart")
	}

	profiles := profile.NewService(
		profile.NewBadgerStore(db),
		engine,
		cfg.Profiles.HistoryLimit,
		logging.WithComponent("profile"),
	)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(engine, profiles, logging.Logger())
	handler.SetRequestTimeout(cfg.Server.Timeout)
	router := api.NewRouter(handler, api.MiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if !cfg.Profiles.InMemory && cfg.Profiles.GCInterval > 0 {
		tree.AddDataService(services.NewProfileGCService(db, cfg.Profiles.GCInterval, logging.WithComponent("supervisor")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("supervisor")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to get unstopped service report")
	} else if len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	logging.Info().Msg("Showrec stopped")
}
