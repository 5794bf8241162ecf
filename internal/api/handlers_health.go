// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/showrec/internal/recommend"
)

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status        string                  `json:"status"`
	UptimeSeconds float64                 `json:"uptime_seconds"`
	Snapshot      recommend.SnapshotStats `json:"snapshot"`

	// Profiles is the stored profile count, or -1 when the store is unavailable.
	Profiles int `json:"profiles"`
}

// Health reports liveness and snapshot counts. A failing profile store
// degrades the status but still answers 200.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := HealthStatus{
		Status:        "healthy",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Snapshot:      h.engine.Stats(),
		Profiles:      -1,
	}

	if h.profiles != nil {
		count, err := h.profiles.Count(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("profile store health check failed")
			status.Status = "degraded"
		} else {
			status.Profiles = count
		}
	}

	rw.Success(status)
}
