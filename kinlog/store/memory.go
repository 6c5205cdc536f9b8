package store

import (
	"fmt"

	"github.com/wbrown/kinlog/kinlog"
)

// MemoryStore holds facts in memory, in assertion order
// Match enumerates in that order, which makes resolution deterministic
type MemoryStore struct {
	facts   []kinlog.Fact
	present map[string]struct{}
}

// NewMemoryStore creates an empty in-memory fact store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{present: make(map[string]struct{})}
}

// Assert adds a fact; asserting a fact already present is a no-op
func (s *MemoryStore) Assert(f kinlog.Fact) error {
	if err := f.Validate(); err != nil {
		return err
	}
	key := string(encodeKey(f))
	if _, ok := s.present[key]; ok {
		return nil
	}
	s.present[key] = struct{}{}
	s.facts = append(s.facts, f)
	return nil
}

// Retract removes a fact, preserving the order of the remainder
func (s *MemoryStore) Retract(f kinlog.Fact) error {
	if err := f.Validate(); err != nil {
		return err
	}
	key := string(encodeKey(f))
	if _, ok := s.present[key]; !ok {
		return fmt.Errorf("%w: %s", kinlog.ErrNotFound, f)
	}
	delete(s.present, key)
	for i := range s.facts {
		if s.facts[i].Equal(f) {
			s.facts = append(s.facts[:i], s.facts[i+1:]...)
			break
		}
	}
	return nil
}

// Match scans the store in assertion order
func (s *MemoryStore) Match(relation string, pattern []*kinlog.Atom) (Iterator, error) {
	if err := checkPattern(relation, pattern); err != nil {
		return nil, err
	}
	return &memoryIterator{
		facts:    s.facts,
		relation: relation,
		pattern:  pattern,
		pos:      -1,
	}, nil
}

// Size returns the number of stored facts
func (s *MemoryStore) Size() int {
	return len(s.facts)
}

// All returns a copy of every stored fact, in assertion order
func (s *MemoryStore) All() []kinlog.Fact {
	out := make([]kinlog.Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// Close implements FactStore; a memory store has nothing to release
func (s *MemoryStore) Close() error { return nil }

// memoryIterator lazily filters the fact slice during iteration
type memoryIterator struct {
	facts    []kinlog.Fact
	relation string
	pattern  []*kinlog.Atom
	pos      int
}

func (it *memoryIterator) Next() bool {
	for it.pos+1 < len(it.facts) {
		it.pos++
		if matches(it.facts[it.pos], it.relation, it.pattern) {
			return true
		}
	}
	return false
}

func (it *memoryIterator) Fact() kinlog.Fact {
	return it.facts[it.pos]
}

func (it *memoryIterator) Close() error { return nil }
