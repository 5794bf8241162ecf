// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/showrec/internal/logging"
	"github.com/tomtom215/showrec/internal/profile"
	"github.com/tomtom215/showrec/internal/recommend"
	"github.com/tomtom215/showrec/internal/validation"
)

// maxBodyBytes limits JSON request bodies.
const maxBodyBytes = 64 << 10

// sanitizeLogValue removes control characters from strings to prevent log injection.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// parseK reads the optional k query parameter. A missing value selects the
// engine default for kind; an explicit 0 is kept and yields an empty list.
func (h *Handler) parseK(r *http.Request, kind string) (int, error) {
	value := r.URL.Query().Get("k")
	if value == "" {
		return h.engine.DefaultK(kind), nil
	}
	k, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("k must be an integer, got %q", value)
	}
	return k, nil
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close() //nolint:errcheck // request body

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// validateRequest validates v and writes a 400 response on failure.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	if verr := validation.ValidateStruct(v); verr != nil {
		rw.ValidationError(verr)
		return false
	}
	return true
}

// respondError maps domain errors to HTTP responses.
func (h *Handler) respondError(rw *ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError
	switch {
	case errors.Is(err, recommend.ErrNotFound), errors.Is(err, profile.ErrProfileNotFound):
		rw.NotFound(err.Error())
	case errors.As(err, &verr):
		rw.ValidationError(verr)
	case errors.Is(err, recommend.ErrKTooLarge):
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("request timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful can be written.
		logging.Ctx(r.Context()).Debug().Msg("request cancelled")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("request failed")
		rw.InternalError("internal error")
	}
}
