package store

import (
	"bytes"
	"fmt"

	"github.com/wbrown/kinlog/kinlog"
)

// FactStore is the interface for ground-fact storage
//
// It is the single source of ground truth: derived relations are always
// computed on demand and never written back. Implementations are not
// safe for concurrent use; callers needing concurrent assert/query must
// serialize externally (e.g. one lock around store and solver)
type FactStore interface {
	// Assert adds a ground fact. Duplicate assertion is a no-op
	Assert(f kinlog.Fact) error

	// Retract removes a matching fact. Retracting a fact that is not
	// present returns an error wrapping kinlog.ErrNotFound
	Retract(f kinlog.Fact) error

	// Match returns an iterator over facts of the given relation whose
	// bound pattern positions (non-nil entries) match; nil positions
	// match anything. The pattern length must equal the relation arity
	Match(relation string, pattern []*kinlog.Atom) (Iterator, error)

	// Lifecycle
	Close() error
}

// Iterator provides sequential access to matching facts
type Iterator interface {
	Next() bool
	Fact() kinlog.Fact
	Close() error
}

// checkPattern validates a Match call against the base-relation schema
func checkPattern(relation string, pattern []*kinlog.Atom) error {
	arity, ok := kinlog.BaseArity[relation]
	if !ok {
		return fmt.Errorf("%w: cannot match %q", kinlog.ErrInvalidFact, relation)
	}
	if len(pattern) != arity {
		return fmt.Errorf("%w: %s pattern has %d positions, arity is %d",
			kinlog.ErrInvalidFact, relation, len(pattern), arity)
	}
	return nil
}

// matches reports whether a fact satisfies a partial pattern
func matches(f kinlog.Fact, relation string, pattern []*kinlog.Atom) bool {
	if f.Relation != relation || len(f.Args) != len(pattern) {
		return false
	}
	for i, p := range pattern {
		if p != nil && f.Args[i] != *p {
			return false
		}
	}
	return true
}

// encodeKey builds the canonical byte key for a fact:
// relation 0x00 arg 0x00 ... (atoms must not contain NUL, which
// Fact.Validate does not currently police because names never do)
func encodeKey(f kinlog.Fact) []byte {
	var buf bytes.Buffer
	buf.WriteString(f.Relation)
	buf.WriteByte(0)
	for _, a := range f.Args {
		buf.WriteString(string(a))
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// decodeKey reverses encodeKey
func decodeKey(key []byte) (kinlog.Fact, error) {
	parts := bytes.Split(key, []byte{0})
	// Trailing separator leaves one empty part
	if len(parts) < 2 || len(parts[len(parts)-1]) != 0 {
		return kinlog.Fact{}, fmt.Errorf("%w: undecodable key %q", kinlog.ErrInvalidFact, key)
	}
	parts = parts[:len(parts)-1]

	f := kinlog.Fact{Relation: string(parts[0])}
	for _, p := range parts[1:] {
		f.Args = append(f.Args, kinlog.Atom(p))
	}
	return f, nil
}

// sliceIterator iterates over a materialized slice of facts
type sliceIterator struct {
	facts []kinlog.Fact
	pos   int
}

func (it *sliceIterator) Next() bool {
	if it.pos+1 < len(it.facts) {
		it.pos++
		return true
	}
	return false
}

func (it *sliceIterator) Fact() kinlog.Fact {
	return it.facts[it.pos]
}

func (it *sliceIterator) Close() error { return nil }
