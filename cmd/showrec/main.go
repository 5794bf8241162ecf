// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

// Command showrec prints recommendations from the configured datasets
// without starting the server.
//
//	showrec collab -user u42 -k 5 -out data/collab_output.txt
//	showrec content -genre comedy -language english -mood "dark crime thriller"
//
// Dataset paths come from the same configuration as the server
// (CONFIG_PATH, RATINGS_PATH, CATALOG_PATHS, METADATA_PATH); the -ratings,
// -catalog and -metadata flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tomtom215/showrec/internal/config"
	"github.com/tomtom215/showrec/internal/dataset"
	"github.com/tomtom215/showrec/internal/logging"
	"github.com/tomtom215/showrec/internal/recommend"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	configPath string
	ratings    string
	catalog    string
	metadata   string
	logLevel   string
	k          int
	kSet       bool
	out        string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.ratings, "ratings", "", "ratings CSV (overrides RATINGS_PATH)")
	fs.StringVar(&c.catalog, "catalog", "", "comma-separated Platform=path catalog CSVs (overrides CATALOG_PATHS)")
	fs.StringVar(&c.metadata, "metadata", "", "metadata CSV (overrides METADATA_PATH)")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level")
	fs.IntVar(&c.k, "k", 0, "number of recommendations (omit for the configured default)")
	fs.StringVar(&c.out, "out", "", "write recommendations to this file instead of stdout")
}

func (c *commonFlags) load() (*config.Config, error) {
	return config.LoadFromWithOverrides(c.configPath, map[string]string{
		"data.ratings_path":  c.ratings,
		"data.catalog_paths": c.catalog,
		"data.metadata_path": c.metadata,
		"logging.level":      c.logLevel,
	})
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: showrec <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  collab   collaborative recommendations for -user")
	fmt.Fprintln(w, "  content  catalog recommendations for -genre, -language and -mood")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "run 'showrec <command> -h' for the flags of a command")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	var common commonFlags
	fs := flag.NewFlagSet("showrec "+args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.register(fs)

	var (
		kind  string
		query func(ctx context.Context, e *recommend.Engine, k int) (*recommend.Response, error)
	)

	switch args[0] {
	case "collab":
		user := fs.String("user", "", "target user ID (required)")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		if strings.TrimSpace(*user) == "" {
			fmt.Fprintln(stderr, "showrec collab: -user is required")
			return exitUsage
		}
		kind = recommend.KindCollaborative
		query = func(ctx context.Context, e *recommend.Engine, k int) (*recommend.Response, error) {
			return e.RecommendForUser(ctx, *user, k)
		}

	case "content":
		var q recommend.ContentQuery
		fs.StringVar(&q.Genre, "genre", "", "genre filter (empty = any)")
		fs.StringVar(&q.Language, "language", "", "language filter (empty = any)")
		fs.StringVar(&q.Mood, "mood", "", "mood or description text")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		kind = recommend.KindContent
		query = func(ctx context.Context, e *recommend.Engine, k int) (*recommend.Response, error) {
			q.K = k
			return e.RecommendByContent(ctx, q)
		}

	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK

	default:
		fmt.Fprintf(stderr, "showrec: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "k" {
			common.kSet = true
		}
	})
	if common.k < 0 {
		fmt.Fprintln(stderr, "showrec: -k must not be negative")
		return exitUsage
	}

	cfg, err := common.load()
	if err != nil {
		fmt.Fprintf(stderr, "showrec: %v\n", err)
		return exitError
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    "console",
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})

	snap, _, err := dataset.LoadSnapshot(ctx, &cfg.Data, logging.WithComponent("dataset"))
	if err != nil {
		fmt.Fprintf(stderr, "showrec: %v\n", err)
		return exitError
	}

	engine, err := recommend.NewEngine(snap, cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		fmt.Fprintf(stderr, "showrec: %v\n", err)
		return exitError
	}

	k := common.k
	if !common.kSet {
		k = engine.DefaultK(kind)
	}

	resp, err := query(ctx, engine, k)
	if err != nil {
		if errors.Is(err, recommend.ErrKTooLarge) {
			fmt.Fprintf(stderr, "showrec: -k: %v\n", err)
			return exitUsage
		}
		if errors.Is(err, recommend.ErrNotFound) {
			fmt.Fprintf(stderr, "showrec: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "showrec: recommendation failed: %v\n", err)
		}
		return exitError
	}

	if len(resp.Items) == 0 {
		fmt.Fprintln(stderr, "No recommendations found.")
		return exitOK
	}

	if err := writeRecommendations(resp.Items, common.out, stdout); err != nil {
		fmt.Fprintf(stderr, "showrec: %v\n", err)
		return exitError
	}
	if common.out != "" {
		fmt.Fprintf(stderr, "Top recommendations written to %s\n", common.out)
	}
	return exitOK
}

// writeRecommendations writes one Display line per item to path, or to
// stdout when path is empty.
func writeRecommendations(items []recommend.Recommendation, path string, stdout io.Writer) (err error) {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", path, cerr)
			}
		}()
		w = f
	}

	for _, item := range items {
		if _, err := fmt.Fprintln(w, item.Display()); err != nil {
			return fmt.Errorf("write recommendations: %w", err)
		}
	}
	return nil
}
