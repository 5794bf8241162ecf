// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

/*
Package middleware provides the HTTP middleware Showrec adds on top of the
chi ecosystem (chi/middleware, go-chi/cors, go-chi/httprate).

Key Components:

  - RequestID: UUID request IDs propagated through the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - AccessLog: one structured zerolog line per request

All three have the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests by chi route pattern rather than raw path
so that user and profile names do not create unbounded label values.
*/
package middleware
