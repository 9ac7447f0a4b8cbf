package store

import (
	"encoding/json"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/betbot/fluxbet/internal/addressing"
)

// BadgerStore is a durable Store backed by Badger.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger-backed store at path.
func OpenBadger(path string) (*BadgerStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: path is required")
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "store: open badger")
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Begin(writable bool) Txn {
	return &badgerTxn{txn: s.db.NewTransaction(writable), writable: writable}
}

func (s *BadgerStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type badgerTxn struct {
	txn      *badger.Txn
	writable bool
}

func (t *badgerTxn) Get(key addressing.Key, out interface{}) error {
	item, err := t.txn.Get(key.Bytes())
	if err == badger.ErrKeyNotFound {
		return ErrNotExists
	}
	if err != nil {
		return errors.Wrap(err, "store: badger get")
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func (t *badgerTxn) Has(key addressing.Key) (bool, error) {
	_, err := t.txn.Get(key.Bytes())
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "store: badger get")
	}
	return true, nil
}

func (t *badgerTxn) Set(key addressing.Key, v interface{}) error {
	if !t.writable {
		return errors.New("store: set on read-only transaction")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "store: marshal entity")
	}
	return errors.Wrap(t.txn.Set(key.Bytes(), b), "store: badger set")
}

func (t *badgerTxn) Commit() error {
	return errors.Wrap(t.txn.Commit(), "store: badger commit")
}

func (t *badgerTxn) Discard() {
	t.txn.Discard()
}
