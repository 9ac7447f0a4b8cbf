package store

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/betbot/fluxbet/internal/addressing"
)

// MemStore is an in-memory Store for tests and single-process runs.
type MemStore struct {
	mu   sync.RWMutex
	data map[addressing.Key][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[addressing.Key][]byte)}
}

// Begin starts a buffered transaction over the current state.
func (s *MemStore) Begin(writable bool) Txn {
	return &memTxn{store: s, writable: writable, pending: make(map[addressing.Key][]byte)}
}

func (s *MemStore) Close() error { return nil }

type memTxn struct {
	store    *MemStore
	writable bool
	pending  map[addressing.Key][]byte
	done     bool
}

func (t *memTxn) Get(key addressing.Key, out interface{}) error {
	if b, ok := t.pending[key]; ok {
		return json.Unmarshal(b, out)
	}
	t.store.mu.RLock()
	b, ok := t.store.data[key]
	t.store.mu.RUnlock()
	if !ok {
		return ErrNotExists
	}
	return json.Unmarshal(b, out)
}

func (t *memTxn) Has(key addressing.Key) (bool, error) {
	if _, ok := t.pending[key]; ok {
		return true, nil
	}
	t.store.mu.RLock()
	_, ok := t.store.data[key]
	t.store.mu.RUnlock()
	return ok, nil
}

func (t *memTxn) Set(key addressing.Key, v interface{}) error {
	if !t.writable {
		return errors.New("store: set on read-only transaction")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	t.pending[key] = b
	return nil
}

func (t *memTxn) Commit() error {
	if t.done {
		return errors.New("store: transaction already finished")
	}
	t.done = true
	t.store.mu.Lock()
	for k, v := range t.pending {
		t.store.data[k] = v
	}
	t.store.mu.Unlock()
	return nil
}

func (t *memTxn) Discard() {
	t.done = true
	t.pending = nil
}
