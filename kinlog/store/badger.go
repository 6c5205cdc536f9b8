package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/wbrown/kinlog/kinlog"
)

// BadgerStore implements FactStore on BadgerDB, so a fact base survives
// across sessions. Only ground base facts are ever persisted; derived
// relations stay computed on demand
//
// Unlike MemoryStore, Match enumerates in key order (relation, then
// arguments lexicographically), not assertion order
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB-backed store at path
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logging is noise at this scale

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Assert writes the fact's key; rewriting an existing key is the
// idempotent no-op the FactStore contract requires
func (s *BadgerStore) Assert(f kinlog.Fact) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(encodeKey(f), nil)
	})
}

// Retract deletes the fact's key, failing if it was never asserted
func (s *BadgerStore) Retract(f kinlog.Fact) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := encodeKey(f)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", kinlog.ErrNotFound, f)
			}
			return err
		}
		return txn.Delete(key)
	})
}

// Match scans by key prefix: the relation plus any leading bound
// arguments narrow the scan, remaining bound positions filter.
// Results are materialized inside the read transaction so the returned
// iterator does not hold Badger resources
func (s *BadgerStore) Match(relation string, pattern []*kinlog.Atom) (Iterator, error) {
	if err := checkPattern(relation, pattern); err != nil {
		return nil, err
	}

	prefix := []byte(relation)
	prefix = append(prefix, 0)
	for _, p := range pattern {
		if p == nil {
			break
		}
		prefix = append(prefix, []byte(*p)...)
		prefix = append(prefix, 0)
	}

	var facts []kinlog.Fact
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			f, err := decodeKey(it.Item().Key())
			if err != nil {
				return err
			}
			if matches(f, relation, pattern) {
				facts = append(facts, f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sliceIterator{facts: facts, pos: -1}, nil
}

// All returns every stored fact, in key order
func (s *BadgerStore) All() ([]kinlog.Fact, error) {
	var facts []kinlog.Fact
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			f, err := decodeKey(it.Item().Key())
			if err != nil {
				return err
			}
			facts = append(facts, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return facts, nil
}

// Close releases the underlying database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
