// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package api

// userRequest is the validated path and query of a collaborative request.
type userRequest struct {
	UserID string `json:"user_id" validate:"required,max=256"`
	K      int    `json:"k" validate:"min=0"`
}

// profileRequest is the validated path and query of a profile request.
type profileRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	K        int    `json:"k" validate:"min=0"`
}

// contentRequest is the body of a content request. K is a pointer so an
// omitted k can be told apart from an explicit 0.
type contentRequest struct {
	Genre    string `json:"genre" validate:"max=256"`
	Language string `json:"language" validate:"max=256"`
	Mood     string `json:"mood" validate:"max=4096"`
	K        *int   `json:"k" validate:"omitempty,min=0"`
}
