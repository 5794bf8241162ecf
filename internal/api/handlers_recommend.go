// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/showrec/internal/logging"
	"github.com/tomtom215/showrec/internal/recommend"
)

// UserRecommendations handles GET /api/v1/recommendations/users/{userID}.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	k, err := h.parseK(r, recommend.KindCollaborative)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := userRequest{UserID: chi.URLParam(r, "userID"), K: k}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.RecommendForUser(ctx, req.UserID, req.K)
	if err != nil {
		h.respondError(rw, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("user", sanitizeLogValue(req.UserID)).
		Int("returned", len(resp.Items)).
		Msg("collaborative recommendations served")
	rw.Success(resp)
}

// ContentRecommendations handles POST /api/v1/recommendations/content.
func (h *Handler) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req contentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	q := recommend.ContentQuery{
		Genre:    req.Genre,
		Language: req.Language,
		Mood:     req.Mood,
		K:        h.engine.DefaultK(recommend.KindContent),
	}
	if req.K != nil {
		q.K = *req.K
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.RecommendByContent(ctx, q)
	if err != nil {
		h.respondError(rw, r, err)
		return
	}

	rw.Success(resp)
}
