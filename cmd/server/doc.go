// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

/*
Package main is the entry point for the Showrec recommendation server.

Showrec loads a ratings table and one or more platform catalogs from CSV,
builds an immutable snapshot, and serves collaborative, content-based and
profile-based recommendations over a JSON API.

# Startup

 1. Configuration: koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Datasets: CSV files read through DuckDB's read_csv into a snapshot
 4. Engine: rating matrix, TF-IDF catalog and preference scorer
 5. Profiles: BadgerDB store under PROFILE_STORE_PATH
 6. Supervisor tree: suture v4 with a data layer and an API layer

The supervisor tree:

	RootSupervisor ("showrec")
	├── DataSupervisor ("data-layer")
	│   └── ProfileGCService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

	RATINGS_PATH=data/ratings.csv
	CATALOG_PATHS=Netflix=data/netflix_titles.csv,Hulu=data/hulu_titles.csv
	METADATA_PATH=data/metadata.csv
	PROFILE_STORE_PATH=/data/profiles
	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json

A YAML file named by CONFIG_PATH (or showrec.yaml in the working directory)
is read before the environment, so environment variables win.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT, then the profile store is closed.
*/
package main
