// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

/*
Package dataset reads the Showrec CSV inputs into a recommend.Snapshot.

Files are scanned with DuckDB's read_csv table function on an in-memory
connection, so quoting, embedded commas and ragged rows are handled by the
CSV sniffer rather than by hand. Every column is read as text and converted
here; malformed rows are skipped, logged and counted, and never reach the
recommendation engines.

Inputs:

  - ratings: user, title, rating (configurable column names)
  - catalogs: one file per platform, or a combined file with a platform column
  - metadata: optional enrichment table keyed by title

Usage:

	snap, stats, err := dataset.LoadSnapshot(ctx, &cfg.Data, logger)
*/
package dataset
