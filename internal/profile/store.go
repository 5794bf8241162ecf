// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// profileKeyPrefix namespaces profile records in BadgerDB.
const profileKeyPrefix = "profile:"

// maxUpdateAttempts bounds retries of a read-modify-write that lost a
// commit race.
const maxUpdateAttempts = 10

// ErrUnchanged may be returned by an Update callback to finish without
// writing. Update then returns the profile as read and a nil error.
var ErrUnchanged = errors.New("profile unchanged")

// UpdateFunc modifies a profile in place inside a store transaction. It may
// run more than once when the transaction is retried.
type UpdateFunc func(p *Profile) error

// Store persists profiles.
type Store interface {
	Get(ctx context.Context, username string) (*Profile, error)
	Put(ctx context.Context, p *Profile) error
	Update(ctx context.Context, username string, create bool, fn UpdateFunc) (*Profile, error)
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context) (int, error)
}

// OpenBadger opens the profile database at path, or an in-memory database
// when inMemory is set.
func OpenBadger(path string, inMemory bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for profiles: %w", err)
	}
	return db, nil
}

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a store on an open database. The caller owns db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func profileKey(username string) []byte {
	return []byte(profileKeyPrefix + username)
}

// Get retrieves a profile by username.
func (s *BadgerStore) Get(ctx context.Context, username string) (*Profile, error) {
	var p Profile

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Put creates or replaces a profile.
func (s *BadgerStore) Put(ctx context.Context, p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(p.Username), data)
	})
}

// Update reads the profile for username, applies fn and writes the result
// in one transaction. A missing profile is ErrProfileNotFound unless create
// is set, in which case fn receives a new profile holding only the
// username. Transactions that conflict with a concurrent write are retried
// with a fresh read.
func (s *BadgerStore) Update(ctx context.Context, username string, create bool, fn UpdateFunc) (*Profile, error) {
	var (
		p   *Profile
		err error
	)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		p, err = s.update(username, create, fn)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if errors.Is(err, badger.ErrConflict) {
		return nil, fmt.Errorf("update profile %q: %w", username, err)
	}
	return p, err
}

func (s *BadgerStore) update(username string, create bool, fn UpdateFunc) (*Profile, error) {
	var p *Profile

	err := s.db.Update(func(txn *badger.Txn) error {
		key := profileKey(username)

		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			if !create {
				return ErrProfileNotFound
			}
			p = &Profile{Username: username}
		case err != nil:
			return fmt.Errorf("get profile: %w", err)
		default:
			p = &Profile{}
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, p)
			})
			if err != nil {
				return fmt.Errorf("unmarshal profile: %w", err)
			}
		}

		if err := fn(p); err != nil {
			return err
		}

		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		return txn.Set(key, data)
	})
	if errors.Is(err, ErrUnchanged) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a profile. Deleting an absent profile is not an error.
func (s *BadgerStore) Delete(ctx context.Context, username string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(profileKey(username))
	})
}

// Count returns the number of stored profiles.
func (s *BadgerStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(profileKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return count, nil
}
