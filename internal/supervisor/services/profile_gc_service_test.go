// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/showrec/internal/metrics"
)

// fakeCollector returns queued results, then ErrNoRewrite.
type fakeCollector struct {
	mu      sync.Mutex
	results []error
	calls   int
	ratios  []float64
}

func (f *fakeCollector) RunValueLogGC(ratio float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.ratios = append(f.ratios, ratio)
	if len(f.results) == 0 {
		return badger.ErrNoRewrite
	}
	err := f.results[0]
	f.results = f.results[1:]
	return err
}

func (f *fakeCollector) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ suture.Service = (*ProfileGCService)(nil)

func TestProfileGCService_CollectUntilNoRewrite(t *testing.T) {
	t.Parallel()

	db := &fakeCollector{results: []error{nil, nil}}
	svc := NewProfileGCService(db, time.Minute, zerolog.Nop())

	rewrites, err := svc.collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if rewrites != 2 {
		t.Errorf("expected 2 rewrites, got %d", rewrites)
	}
	if db.calls != 3 {
		t.Errorf("expected 3 GC calls, got %d", db.calls)
	}
	for _, r := range db.ratios {
		if r != 0.5 {
			t.Errorf("expected discard ratio 0.5, got %v", r)
		}
	}
}

func TestProfileGCService_CollectError(t *testing.T) {
	t.Parallel()

	lockErr := errors.New("value log locked")
	svc := NewProfileGCService(&fakeCollector{results: []error{lockErr}}, time.Minute, zerolog.Nop())

	before := testutil.ToFloat64(metrics.ProfileGCRuns.WithLabelValues("error"))
	if _, err := svc.collect(context.Background()); !errors.Is(err, lockErr) {
		t.Errorf("expected wrapped lock error, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.ProfileGCRuns.WithLabelValues("error")); got < before+1 {
		t.Errorf("gc error runs = %v, want at least %v", got, before+1)
	}
}

func TestProfileGCService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("runs on every tick until canceled", func(t *testing.T) {
		t.Parallel()

		db := &fakeCollector{}
		svc := NewProfileGCService(db, 10*time.Millisecond, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
		if db.callCount() < 2 {
			t.Errorf("expected several GC cycles, got %d calls", db.callCount())
		}
	})

	t.Run("failed cycle keeps the loop alive", func(t *testing.T) {
		t.Parallel()

		db := &fakeCollector{results: []error{errors.New("transient")}}
		svc := NewProfileGCService(db, 10*time.Millisecond, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
		if db.callCount() < 2 {
			t.Errorf("expected GC to run again after a failure, got %d calls", db.callCount())
		}
	})

	t.Run("disabled interval does not restart", func(t *testing.T) {
		t.Parallel()

		svc := NewProfileGCService(&fakeCollector{}, 0, zerolog.Nop())
		if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("expected ErrDoNotRestart, got %v", err)
		}
	})

	t.Run("in-memory store does not restart", func(t *testing.T) {
		t.Parallel()

		db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
		if err != nil {
			t.Fatalf("open badger: %v", err)
		}
		defer db.Close()

		svc := NewProfileGCService(db, 5*time.Millisecond, zerolog.Nop())
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("expected ErrDoNotRestart, got %v", err)
		}
	})
}
