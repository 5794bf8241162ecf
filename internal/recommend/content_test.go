// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func testCatalog() []Show {
	return []Show{
		{Platform: "Netflix", Title: "Dark", Genre: "Sci-Fi, Thriller", Language: "German",
			Description: "A missing child sets four families on a frantic hunt for answers"},
		{Platform: "Netflix", Title: "Sacred Games", Genre: "Crime, Thriller", Language: "India",
			Description: "A link in their pasts leads an honest cop to a fugitive gang boss"},
		{Platform: "Netflix", Title: "Money Heist", Genre: "Crime, Thriller", Language: "Spain",
			Description: "Eight thieves take hostages in the Royal Mint of Spain"},
		{Platform: "Netflix", Title: "Mindhunter", Genre: "Crime, Thriller", Language: "United States",
			Description: "FBI agents interview imprisoned serial killers"},
		{Platform: "Hulu", Title: "The Office", Genre: "Comedy", Language: "United States",
			Description: "A mockumentary on a group of office workers"},
	}
}

func showTitles(results []ScoredShow) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Show.Title
	}
	return out
}

func newContent(includeDescription bool) *ContentEngine {
	return NewContentEngine(testCatalog(), ContentConfig{DefaultK: 5, IncludeDescription: includeDescription}, zerolog.Nop())
}

func TestFilterShows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		genre    string
		language string
		want     []string
	}{
		{"genre substring", "thriller", "", []string{"Dark", "Sacred Games", "Money Heist", "Mindhunter"}},
		{"case and whitespace insensitive", "  COMEDY ", "", []string{"The Office"}},
		{"genre and language", "crime", "united", []string{"Mindhunter"}},
		{"empty filters match all", "", "", []string{"Dark", "Sacred Games", "Money Heist", "Mindhunter", "The Office"}},
		{"no match", "anime", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FilterShows(testCatalog(), tt.genre, tt.language)
			titles := make([]string, len(got))
			for i := range got {
				titles[i] = got[i].Title
			}
			if !reflect.DeepEqual(titles, tt.want) {
				t.Errorf("FilterShows(%q, %q) = %v, want %v", tt.genre, tt.language, titles, tt.want)
			}
		})
	}
}

func TestContent_MoodMatchRanksFirst(t *testing.T) {
	t.Parallel()

	// Four candidates plus the query: df(german)=2, idf=ln(5/3) > 0.
	results, candidates, err := newContent(false).Recommend(context.Background(),
		ContentQuery{Genre: "thriller", Mood: "German"}, 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if candidates != 4 {
		t.Errorf("candidates = %d, want 4", candidates)
	}
	if got := showTitles(results); !reflect.DeepEqual(got, []string{"Dark", "Sacred Games"}) {
		t.Errorf("Recommend() = %v, want [Dark Sacred Games]", got)
	}
	if results[0].Score <= 0 {
		t.Errorf("expected positive score for Dark, got %v", results[0].Score)
	}
	if results[1].Score != 0 {
		t.Errorf("expected zero score for non-matching show, got %v", results[1].Score)
	}
}

func TestContent_DescriptionTerms(t *testing.T) {
	t.Parallel()

	results, _, err := newContent(true).Recommend(context.Background(),
		ContentQuery{Genre: "crime", Mood: "serial killers"}, 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(results) != 1 || results[0].Show.Title != "Mindhunter" {
		t.Errorf("Recommend() = %v, want [Mindhunter]", showTitles(results))
	}
}

func TestContent_NoMatchingGenre(t *testing.T) {
	t.Parallel()

	shows := []Show{
		{Title: "Dark", Genre: "Sci-Fi, Thriller", Language: "German"},
		{Title: "Narcos", Genre: "Crime, Drama", Language: "Colombia"},
	}
	engine := NewContentEngine(shows, ContentConfig{DefaultK: 5}, zerolog.Nop())

	results, candidates, err := engine.Recommend(context.Background(), ContentQuery{Genre: "comedy", Mood: "funny"}, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if results == nil || len(results) != 0 || candidates != 0 {
		t.Errorf("expected empty non-nil result, got %#v (%d candidates)", results, candidates)
	}
}

func TestContent_EmptyMood(t *testing.T) {
	t.Parallel()

	results, _, err := newContent(true).Recommend(context.Background(), ContentQuery{Genre: "crime"}, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := showTitles(results); !reflect.DeepEqual(got, []string{"Sacred Games", "Money Heist", "Mindhunter"}) {
		t.Errorf("Recommend() = %v, want catalog order", got)
	}
	for _, r := range results {
		if r.Score != 0 {
			t.Errorf("%s scored %v with empty mood, want 0", r.Show.Title, r.Score)
		}
	}
}

func TestContent_KLimitsResults(t *testing.T) {
	t.Parallel()

	engine := newContent(true)
	for _, k := range []int{0, -2} {
		results, _, err := engine.Recommend(context.Background(), ContentQuery{Mood: "office"}, k)
		if err != nil {
			t.Fatalf("Recommend(k=%d) error = %v", k, err)
		}
		if len(results) != 0 {
			t.Errorf("Recommend(k=%d) returned %d results", k, len(results))
		}
	}

	results, _, err := engine.Recommend(context.Background(), ContentQuery{Mood: "office"}, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
	if results[0].Show.Title != "The Office" {
		t.Errorf("expected The Office first, got %s", results[0].Show.Title)
	}
}
