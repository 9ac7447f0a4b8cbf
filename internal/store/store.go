// Package store is the entity storage layer. Every ledger entity is addressed
// by a deterministic key (internal/addressing) and persisted as JSON. Writes
// go through an explicit transaction so an operation's mutations commit as one
// unit or not at all.
package store

import (
	"errors"

	"github.com/betbot/fluxbet/internal/addressing"
)

// ErrNotExists means no entity is stored under the requested key.
var ErrNotExists = errors.New("store: entity does not exist")

// Txn is a single read-write transaction. Reads observe the transaction's own
// pending writes. A Txn must end with exactly one Commit or Discard.
type Txn interface {
	// Get unmarshals the entity under key into out, or returns ErrNotExists.
	Get(key addressing.Key, out interface{}) error
	// Has reports whether an entity exists under key.
	Has(key addressing.Key) (bool, error)
	// Set stages the entity under key.
	Set(key addressing.Key, v interface{}) error
	// Commit atomically applies all staged writes.
	Commit() error
	// Discard drops staged writes. Safe to call after Commit.
	Discard()
}

// Store opens transactions over an entity keyspace.
type Store interface {
	// Begin starts a transaction. Read-only transactions reject Set.
	Begin(writable bool) Txn
	Close() error
}
