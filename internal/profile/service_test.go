// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showrec/internal/recommend"
)

var testShows = []recommend.Show{
	{Platform: "Netflix", Title: "Dark", Genre: "Crime TV Shows, TV Mysteries", Language: "Germany", Description: "A missing child sets four families on a hunt"},
	{Platform: "Netflix", Title: "Sacred Games", Genre: "Crime TV Shows, International TV Shows", Language: "India", Description: "A police officer receives a call"},
	{Platform: "Hulu", Title: "The Office", Genre: "Comedies", Language: "United States", Description: "A mockumentary about office workers"},
}

func newTestService(t *testing.T, historyLimit int) *Service {
	t.Helper()

	engine, err := recommend.NewEngine(&recommend.Snapshot{Shows: testShows}, nil, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	svc := NewService(newTestStore(t), engine, historyLimit, zerolog.New(io.Discard))

	tick := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return svc
}

func TestService_UpdatePreferences(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	p, err := svc.UpdatePreferences(ctx, "alice", &UpdateRequest{
		Genres:    []string{"Crime, Thriller", "crime"},
		Platforms: []string{"Netflix"},
	})
	if err != nil {
		t.Fatalf("UpdatePreferences() error = %v", err)
	}
	if !reflect.DeepEqual(p.FavoriteGenres, []string{"crime", "thriller"}) {
		t.Errorf("FavoriteGenres = %q", p.FavoriteGenres)
	}
	if p.CreatedAt.IsZero() || !p.UpdatedAt.Equal(p.CreatedAt) {
		t.Errorf("expected new profile timestamps, got created=%v updated=%v", p.CreatedAt, p.UpdatedAt)
	}

	// A second update keeps CreatedAt.
	p2, err := svc.UpdatePreferences(ctx, "alice", &UpdateRequest{Genres: []string{"comedies"}})
	if err != nil {
		t.Fatalf("second UpdatePreferences() error = %v", err)
	}
	if !p2.CreatedAt.Equal(p.CreatedAt) || !p2.UpdatedAt.After(p.UpdatedAt) {
		t.Errorf("unexpected timestamps after update: %+v", p2)
	}
	if len(p2.Platforms) != 0 {
		t.Errorf("expected platforms to be replaced, got %q", p2.Platforms)
	}
}

func TestService_UpdatePreferences_Invalid(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	if _, err := svc.UpdatePreferences(ctx, "", &UpdateRequest{}); err == nil {
		t.Error("expected error for empty username")
	}
	long := strings.Repeat("x", 300)
	if _, err := svc.UpdatePreferences(ctx, "bob", &UpdateRequest{Moods: []string{long}}); err == nil {
		t.Error("expected validation error for oversized keyword")
	}
}

func TestService_Recommend(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	if _, err := svc.UpdatePreferences(ctx, "alice", &UpdateRequest{
		Genres:    []string{"crime"},
		Languages: []string{"india"},
		Platforms: []string{"netflix"},
	}); err != nil {
		t.Fatalf("UpdatePreferences() error = %v", err)
	}

	res, err := svc.Recommend(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.FromHistory {
		t.Error("expected fresh recommendations")
	}
	// Sacred Games: crime + india + netflix = 3; Dark: crime + netflix = 2.
	titles := []string{}
	for _, r := range res.Recommendations {
		titles = append(titles, r.Title)
	}
	if !reflect.DeepEqual(titles, []string{"Sacred Games", "Dark"}) {
		t.Errorf("titles = %q, want [Sacred Games Dark]", titles)
	}
	if len(res.History) != 1 || !reflect.DeepEqual(res.History[0].Titles, titles) {
		t.Errorf("unexpected history: %+v", res.History)
	}

	stored, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(stored.OldRecommendations) != 2 {
		t.Errorf("expected stored recommendations, got %+v", stored.OldRecommendations)
	}
}

func TestService_RecommendFallsBackToPrevious(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	if _, err := svc.UpdatePreferences(ctx, "alice", &UpdateRequest{Genres: []string{"comedies"}, Platforms: []string{"hulu"}}); err != nil {
		t.Fatal(err)
	}
	first, err := svc.Recommend(ctx, "alice", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Recommendations) == 0 {
		t.Fatal("expected initial recommendations")
	}

	// Nothing in the catalog is on this platform, so every score is 0.
	if _, err := svc.UpdatePreferences(ctx, "alice", &UpdateRequest{Platforms: []string{"peacock"}}); err != nil {
		t.Fatal(err)
	}
	second, err := svc.Recommend(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.FromHistory {
		t.Error("expected fallback to previous recommendations")
	}
	if len(second.Recommendations) != len(first.Recommendations) || second.Recommendations[0].Title != first.Recommendations[0].Title {
		t.Errorf("fallback = %+v, want %+v", second.Recommendations, first.Recommendations)
	}
	if len(second.History) != 1 {
		t.Errorf("fallback must not add history, got %d entries", len(second.History))
	}
}

func TestService_RecommendEmptyWithoutPrevious(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	if _, err := svc.UpdatePreferences(ctx, "carol", &UpdateRequest{Platforms: []string{"peacock"}}); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Recommend(ctx, "carol", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Recommendations == nil || len(res.Recommendations) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", res.Recommendations)
	}
}

func TestService_HistoryLimit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 2)
	ctx := context.Background()

	if _, err := svc.UpdatePreferences(ctx, "alice", &UpdateRequest{Genres: []string{"crime"}}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if _, err := svc.Recommend(ctx, "alice", 10); err != nil {
			t.Fatalf("Recommend() #%d error = %v", i, err)
		}
	}

	history, err := svc.History(ctx, "alice")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected history capped at 2, got %d", len(history))
	}
	if !history[0].Timestamp.Before(history[1].Timestamp) {
		t.Error("expected history oldest first")
	}
}

func TestService_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Get: expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.Recommend(ctx, "ghost", 10); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Recommend: expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.History(ctx, "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("History: expected ErrProfileNotFound, got %v", err)
	}
}

func TestService_RecommendFallsBackWithoutPlatforms(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	if _, err := svc.UpdatePreferences(ctx, "dave", &UpdateRequest{Genres: []string{"crime"}}); err != nil {
		t.Fatal(err)
	}
	first, err := svc.Recommend(ctx, "dave", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Recommendations) != 2 {
		t.Fatalf("expected the two crime shows, got %+v", first.Recommendations)
	}

	// No platforms stored: a genre nobody carries scores 0 everywhere.
	if _, err := svc.UpdatePreferences(ctx, "dave", &UpdateRequest{Genres: []string{"western"}}); err != nil {
		t.Fatal(err)
	}
	second, err := svc.Recommend(ctx, "dave", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.FromHistory || len(second.Recommendations) != 2 {
		t.Errorf("expected fallback to the previous list, got %+v", second)
	}
}

func TestService_UsernamesAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	p, err := svc.UpdatePreferences(ctx, "  Alice ", &UpdateRequest{Genres: []string{"crime"}})
	if err != nil {
		t.Fatalf("UpdatePreferences() error = %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("Username = %q, want alice", p.Username)
	}

	if _, err := svc.UpdatePreferences(ctx, "ALICE", &UpdateRequest{Genres: []string{"comedies"}}); err != nil {
		t.Fatalf("UpdatePreferences() error = %v", err)
	}
	got, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got.FavoriteGenres, []string{"comedies"}) {
		t.Errorf("expected one shared profile, got genres %q", got.FavoriteGenres)
	}
	if n, _ := svc.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	if _, err := svc.Recommend(ctx, "Alice", 10); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	history, err := svc.History(ctx, "aLiCe")
	if err != nil || len(history) != 1 {
		t.Errorf("History() = %v, %v; want one entry", history, err)
	}
}

func TestService_ConcurrentRecommendKeepsEveryEntry(t *testing.T) {
	t.Parallel()

	engine, err := recommend.NewEngine(&recommend.Snapshot{Shows: testShows}, nil, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	svc := NewService(newTestStore(t), engine, 0, zerolog.New(io.Discard))
	ctx := context.Background()

	if _, err := svc.UpdatePreferences(ctx, "erin", &UpdateRequest{Genres: []string{"crime"}}); err != nil {
		t.Fatal(err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers+1)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Recommend(ctx, "erin", 10); err != nil {
				errs <- err
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := svc.UpdatePreferences(ctx, "erin", &UpdateRequest{
			Genres:    []string{"crime"},
			Languages: []string{"india"},
		}); err != nil {
			errs <- fmt.Errorf("update: %w", err)
		}
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent call failed: %v", err)
	}

	p, err := svc.Get(ctx, "erin")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(p.History) != workers {
		t.Errorf("history has %d entries, want %d", len(p.History), workers)
	}
	if !reflect.DeepEqual(p.FavoriteLanguages, []string{"india"}) {
		t.Errorf("preference update was lost: languages = %q", p.FavoriteLanguages)
	}
}
