// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// DuckDB driver - read_csv does the CSV parsing
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"
)

// ErrMissingColumn is returned when a required column is absent from a file header.
var ErrMissingColumn = errors.New("missing column")

// Reader scans CSV files through an in-memory DuckDB connection.
type Reader struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewReader opens an in-memory DuckDB connection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReader(logger zerolog.Logger) (*Reader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// A single connection keeps the in-memory catalog consistent.
	db.SetMaxOpenConns(1)

	return &Reader{db: db, logger: logger}, nil
}

// Close closes the DuckDB connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// csvSource renders the read_csv call for path. All columns are read as
// VARCHAR and short rows are padded with NULL. Header reads drop
// unparsable lines; row scans keep them in the reject_errors table so they
// can be counted.
func csvSource(path string, storeRejects bool) string {
	errorOpt := "ignore_errors = true"
	if storeRejects {
		errorOpt = "store_rejects = true"
	}
	return fmt.Sprintf(
		"read_csv(%s, header = true, all_varchar = true, null_padding = true, %s)",
		quoteLiteral(path), errorOpt,
	)
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Columns returns the header of the CSV file at path.
func (r *Reader) Columns(ctx context.Context, path string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+csvSource(path, false)+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	defer rows.Close() //nolint:errcheck // read-only query

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	return cols, nil
}

// Projection maps output positions to header names. An empty or absent
// optional name yields an empty string for every row.
type Projection struct {
	Names    []string
	Required []bool
}

// ReadRows scans the requested columns of path in file order and calls fn
// once per row with values aligned to p.Names. NULL reads as "". Lines
// DuckDB cannot parse are not passed to fn; their count is returned.
func (r *Reader) ReadRows(ctx context.Context, path string, p Projection, fn func(values []string) error) (int, error) {
	header, err := r.Columns(ctx, path)
	if err != nil {
		return 0, err
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	selects := make([]string, len(p.Names))
	for i, name := range p.Names {
		switch {
		case name != "" && present[name]:
			selects[i] = quoteIdent(name)
		case p.Required[i]:
			return 0, fmt.Errorf("%s: %w %q", path, ErrMissingColumn, name)
		default:
			selects[i] = "NULL"
		}
	}

	// Rejects from an earlier file must not be counted again.
	for _, table := range []string{"reject_errors", "reject_scans"} {
		if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return 0, fmt.Errorf("reset %s: %w", table, err)
		}
	}

	if err := r.scan(ctx, path, "SELECT "+strings.Join(selects, ", ")+" FROM "+csvSource(path, true), fn); err != nil {
		return 0, err
	}
	return r.rejected(ctx, path), nil
}

func (r *Reader) scan(ctx context.Context, path, query string, fn func(values []string) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close() //nolint:errcheck // read-only query

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("query %s: %w", path, err)
	}
	raw := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	values := make([]string, len(cols))

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
		for i := range raw {
			values[i] = strings.TrimSpace(raw[i].String)
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", path, err)
	}
	return nil
}

// rejected logs and counts the lines of the last scan that DuckDB could
// not parse. A line with several errors counts once.
func (r *Reader) rejected(ctx context.Context, path string) int {
	rows, err := r.db.QueryContext(ctx,
		"SELECT line, string_agg(error_message, '; ') FROM reject_errors GROUP BY line ORDER BY line")
	if err != nil {
		r.logger.Warn().Err(err).Str("file", path).Msg("rejected lines unavailable")
		return 0
	}
	defer rows.Close() //nolint:errcheck // read-only query

	count := 0
	for rows.Next() {
		var (
			line    int64
			message sql.NullString
		)
		if err := rows.Scan(&line, &message); err != nil {
			r.logger.Warn().Err(err).Str("file", path).Msg("rejected lines unavailable")
			return count
		}
		count++
		r.logger.Debug().Str("file", path).Int64("line", line).Str("reason", message.String).Msg("malformed line, row skipped")
	}
	return count
}
