// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

/*
Package api provides the HTTP REST API for Showrec.

Endpoints:

	GET  /api/v1/health                                  liveness and snapshot counts
	GET  /api/v1/recommendations/users/{userID}?k=       collaborative recommendations
	POST /api/v1/recommendations/content                 content recommendations
	PUT  /api/v1/profiles/{username}                     create or replace preferences
	GET  /api/v1/profiles/{username}                     fetch a profile
	GET  /api/v1/profiles/{username}/recommendations?k=  profile recommendations
	GET  /api/v1/profiles/{username}/history             recommendation history
	GET  /metrics                                        Prometheus exposition

Every JSON response uses the envelope {success, data, error, meta}. Unknown
users and profiles map to 404 NOT_FOUND; request validation failures map to
400 VALIDATION_ERROR.

Usage Example:

	handler := api.NewHandler(engine, profiles, logger)
	router := api.NewRouter(handler, api.MiddlewareConfigFromSecurity(&cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.Setup()}
*/
package api
