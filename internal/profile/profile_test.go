// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package profile

import (
	"reflect"
	"testing"
)

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"single", []string{"Drama"}, []string{"drama"}},
		{"comma separated", []string{"Drama, crime ,,DRAMA"}, []string{"drama", "crime"}},
		{"multiple values", []string{"hindi", "English, hindi"}, []string{"hindi", "english"}},
		{"blank", []string{" , "}, []string{}},
		{"none", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseList(tt.input...)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseList(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProfilePreferences(t *testing.T) {
	t.Parallel()

	p := &Profile{
		FavoriteGenres:    []string{"crime"},
		FavoriteLanguages: []string{"india"},
		MoodKeywords:      []string{"police"},
		Platforms:         []string{"netflix"},
	}
	prefs := p.Preferences()
	if prefs.Genres[0] != "crime" || prefs.Languages[0] != "india" || prefs.Moods[0] != "police" || prefs.Platforms[0] != "netflix" {
		t.Errorf("unexpected preferences: %+v", prefs)
	}
}
