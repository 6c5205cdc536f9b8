package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/kinlog/kinlog"
)

func collect(t *testing.T, it Iterator) []kinlog.Fact {
	t.Helper()
	defer it.Close()
	var out []kinlog.Fact
	for it.Next() {
		out = append(out, it.Fact())
	}
	return out
}

func atomPtr(a kinlog.Atom) *kinlog.Atom { return &a }

func TestMemoryStoreAssertIdempotent(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Assert(kinlog.Parent("penny", "alice")))
	require.NoError(t, s.Assert(kinlog.Parent("penny", "alice")))

	assert.Equal(t, 1, s.Size())
}

func TestMemoryStoreAssertInvalid(t *testing.T) {
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Assert(kinlog.NewFact("spouse", "a", "b")), kinlog.ErrInvalidFact)
	assert.ErrorIs(t, s.Assert(kinlog.NewFact(kinlog.RelParent, "a")), kinlog.ErrInvalidFact)
	assert.Equal(t, 0, s.Size())
}

func TestMemoryStoreRetract(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Assert(kinlog.Parent("penny", "alice")))
	require.NoError(t, s.Retract(kinlog.Parent("penny", "alice")))
	assert.Equal(t, 0, s.Size())

	// Retracting an absent fact is an error, not a no-op
	err := s.Retract(kinlog.Parent("penny", "alice"))
	assert.ErrorIs(t, err, kinlog.ErrNotFound)
}

func TestMemoryStoreMatch(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Assert(kinlog.Parent("penny", "alice")))
	require.NoError(t, s.Assert(kinlog.Parent("penny", "peter")))
	require.NoError(t, s.Assert(kinlog.Parent("manny", "alice")))
	require.NoError(t, s.Assert(kinlog.Male("manny")))

	tests := []struct {
		name     string
		relation string
		pattern  []*kinlog.Atom
		want     int
	}{
		{"all parents", kinlog.RelParent, []*kinlog.Atom{nil, nil}, 3},
		{"children of penny", kinlog.RelParent, []*kinlog.Atom{atomPtr("penny"), nil}, 2},
		{"parents of alice", kinlog.RelParent, []*kinlog.Atom{nil, atomPtr("alice")}, 2},
		{"exact match", kinlog.RelParent, []*kinlog.Atom{atomPtr("manny"), atomPtr("alice")}, 1},
		{"no match", kinlog.RelParent, []*kinlog.Atom{atomPtr("alice"), atomPtr("penny")}, 0},
		{"males", kinlog.RelMale, []*kinlog.Atom{nil}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := s.Match(tt.relation, tt.pattern)
			require.NoError(t, err)
			assert.Len(t, collect(t, it), tt.want)
		})
	}
}

func TestMemoryStoreMatchOrder(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Assert(kinlog.Parent("c", "x")))
	require.NoError(t, s.Assert(kinlog.Parent("a", "x")))
	require.NoError(t, s.Assert(kinlog.Parent("b", "x")))

	it, err := s.Match(kinlog.RelParent, []*kinlog.Atom{nil, nil})
	require.NoError(t, err)

	facts := collect(t, it)
	require.Len(t, facts, 3)
	// Assertion order, not sorted order
	assert.Equal(t, kinlog.Atom("c"), facts[0].Args[0])
	assert.Equal(t, kinlog.Atom("a"), facts[1].Args[0])
	assert.Equal(t, kinlog.Atom("b"), facts[2].Args[0])
}

func TestMemoryStoreMatchErrors(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Match("spouse", []*kinlog.Atom{nil, nil})
	assert.ErrorIs(t, err, kinlog.ErrInvalidFact)

	_, err = s.Match(kinlog.RelParent, []*kinlog.Atom{nil})
	assert.ErrorIs(t, err, kinlog.ErrInvalidFact)
}
