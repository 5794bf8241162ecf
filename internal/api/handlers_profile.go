// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/showrec/internal/profile"
	"github.com/tomtom215/showrec/internal/recommend"
)

// profileRequestFrom validates the username path parameter and optional k.
func (h *Handler) profileRequestFrom(rw *ResponseWriter, r *http.Request) (profileRequest, bool) {
	if h.profiles == nil {
		rw.ServiceUnavailable("profile store is not configured")
		return profileRequest{}, false
	}

	k, err := h.parseK(r, recommend.KindPreference)
	if err != nil {
		rw.BadRequest(err.Error())
		return profileRequest{}, false
	}
	req := profileRequest{Username: chi.URLParam(r, "username"), K: k}
	if !validateRequest(rw, &req) {
		return profileRequest{}, false
	}
	return req, true
}

// PutProfile handles PUT /api/v1/profiles/{username}.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, ok := h.profileRequestFrom(rw, r)
	if !ok {
		return
	}

	var body profile.UpdateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		rw.BadRequest(err.Error())
		return
	}

	p, err := h.profiles.UpdatePreferences(r.Context(), req.Username, &body)
	if err != nil {
		h.respondError(rw, r, err)
		return
	}
	rw.Success(p)
}

// GetProfile handles GET /api/v1/profiles/{username}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, ok := h.profileRequestFrom(rw, r)
	if !ok {
		return
	}

	p, err := h.profiles.Get(r.Context(), req.Username)
	if err != nil {
		h.respondError(rw, r, err)
		return
	}
	rw.Success(p)
}

// ProfileRecommendations handles GET /api/v1/profiles/{username}/recommendations.
func (h *Handler) ProfileRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, ok := h.profileRequestFrom(rw, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	res, err := h.profiles.Recommend(ctx, req.Username, req.K)
	if err != nil {
		h.respondError(rw, r, err)
		return
	}
	rw.Success(res)
}

// ProfileHistory handles GET /api/v1/profiles/{username}/history.
func (h *Handler) ProfileHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, ok := h.profileRequestFrom(rw, r)
	if !ok {
		return
	}

	history, err := h.profiles.History(r.Context(), req.Username)
	if err != nil {
		h.respondError(rw, r, err)
		return
	}
	rw.Success(history)
}
