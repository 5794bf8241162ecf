// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

/*
Package services adapts Showrec components to suture's Serve(ctx) error model.

HTTPServerService wraps *http.Server: ListenAndServe runs in a goroutine and
context cancellation triggers Shutdown with a drain timeout.

ProfileGCService runs badger value log GC on the profile store at a fixed
interval. It stops for good (suture.ErrDoNotRestart) when the interval is
zero or the store is in memory.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
