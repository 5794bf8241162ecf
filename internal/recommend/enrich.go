// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package recommend

import (
	"fmt"
	"strings"
)

// MetadataTable maps lowercased titles to their enrichment record.
type MetadataTable struct {
	byTitle map[string]ShowInfo
}

// NewMetadataTable indexes infos by lowercased title. Later records
// replace earlier ones with the same title.
func NewMetadataTable(infos []ShowInfo) *MetadataTable {
	t := &MetadataTable{byTitle: make(map[string]ShowInfo, len(infos))}
	for _, info := range infos {
		t.byTitle[strings.ToLower(info.Title)] = info
	}
	return t
}

// Len returns the number of distinct titles.
func (t *MetadataTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byTitle)
}

// Lookup finds the record for title, ignoring case. A nil table finds nothing.
func (t *MetadataTable) Lookup(title string) (ShowInfo, bool) {
	if t == nil {
		return ShowInfo{}, false
	}
	info, ok := t.byTitle[strings.ToLower(title)]
	return info, ok
}

// String renders "title (year) - platform | Genres: genres".
func (s ShowInfo) String() string {
	return fmt.Sprintf("%s (%s) - %s | Genres: %s", s.Title, s.ReleaseYear, s.Platform, s.Genres)
}
