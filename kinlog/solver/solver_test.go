package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/kinlog/kinlog"
	"github.com/wbrown/kinlog/kinlog/rules"
	"github.com/wbrown/kinlog/kinlog/store"
)

func newSolver(t *testing.T, facts ...kinlog.Fact) *Solver {
	t.Helper()
	s := store.NewMemoryStore()
	for _, f := range facts {
		require.NoError(t, s.Assert(f))
	}
	return New(s, rules.Default())
}

// answers drains a query into query-variable assignment maps
func answers(t *testing.T, s *Solver, q Query) []map[kinlog.Symbol]kinlog.Atom {
	t.Helper()
	sols, err := s.Solve(q)
	require.NoError(t, err)
	return sols.All()
}

func holds(t *testing.T, s *Solver, q Query) bool {
	t.Helper()
	ok, err := s.Prove(q)
	require.NoError(t, err)
	return ok
}

// The three-generation sample family used across these tests
func familySolver(t *testing.T) *Solver {
	return newSolver(t,
		kinlog.Parent("penny", "alice"),
		kinlog.Parent("penny", "peter"),
		kinlog.Parent("manny", "alice"),
		kinlog.Parent("manny", "peter"),
		kinlog.Parent("alice", "mimi"),
		kinlog.Female("penny"),
		kinlog.Male("manny"),
		kinlog.Female("alice"),
		kinlog.Male("peter"),
		kinlog.Female("mimi"),
	)
}

func TestSolveBaseRelation(t *testing.T) {
	s := familySolver(t)

	got := answers(t, s, Q(kinlog.RelParent, kinlog.Atom("penny"), kinlog.Var("?c")))
	require.Len(t, got, 2)
	assert.Equal(t, kinlog.Atom("alice"), got[0]["?c"])
	assert.Equal(t, kinlog.Atom("peter"), got[1]["?c"])
}

func TestSolveGroundQuery(t *testing.T) {
	s := familySolver(t)

	sols, err := s.Solve(Q("mother", kinlog.Atom("penny"), kinlog.Atom("alice")))
	require.NoError(t, err)
	defer sols.Close()

	// A ground query proves with an empty binding
	require.True(t, sols.Next())
	assert.Empty(t, sols.Binding())
	assert.False(t, sols.Next())
}

func TestSolveClosedWorld(t *testing.T) {
	s := familySolver(t)

	// Logical failure is an empty sequence, never an error
	assert.False(t, holds(t, s, Q("mother", kinlog.Atom("alice"), kinlog.Atom("penny"))))
	assert.False(t, holds(t, s, Q("father", kinlog.Atom("nobody"), kinlog.Atom("alice"))))
	assert.Empty(t, answers(t, s, Q("sibling", kinlog.Atom("mimi"), kinlog.Var("?x"))))
}

func TestSolveUnknownRelation(t *testing.T) {
	s := familySolver(t)

	_, err := s.Solve(Q("spouse", kinlog.Atom("penny"), kinlog.Atom("manny")))
	assert.ErrorIs(t, err, kinlog.ErrUnknownRelation)

	// Wrong arity for a known relation fails the same way
	_, err = s.Solve(Q("sibling", kinlog.Atom("alice")))
	assert.ErrorIs(t, err, kinlog.ErrUnknownRelation)
}

func TestFatherDerivedExactlyOnce(t *testing.T) {
	s := familySolver(t)

	got := answers(t, s, Q("father", kinlog.Var("?f"), kinlog.Atom("alice")))
	require.Len(t, got, 1)
	assert.Equal(t, kinlog.Atom("manny"), got[0]["?f"])
}

func TestGrandfatherDerivedExactlyOnce(t *testing.T) {
	s := familySolver(t)

	got := answers(t, s, Q("grandfather", kinlog.Var("?gf"), kinlog.Atom("mimi")))
	require.Len(t, got, 1)
	assert.Equal(t, kinlog.Atom("manny"), got[0]["?gf"])

	got = answers(t, s, Q("grandmother", kinlog.Var("?gm"), kinlog.Atom("mimi")))
	require.Len(t, got, 1)
	assert.Equal(t, kinlog.Atom("penny"), got[0]["?gm"])
}

func TestSiblingNeverReflexive(t *testing.T) {
	s := familySolver(t)

	got := answers(t, s, Q("sibling", kinlog.Var("?x"), kinlog.Var("?y")))
	require.NotEmpty(t, got)
	for _, b := range got {
		assert.NotEqual(t, b["?x"], b["?y"])
	}

	// Two shared parents mean each ordered pair is derived twice;
	// duplicates are kept
	assert.Len(t, got, 4)
}

func TestSiblingSymmetric(t *testing.T) {
	s := newSolver(t,
		kinlog.Parent("p", "x"),
		kinlog.Parent("p", "y"),
	)

	got := answers(t, s, Q("sibling", kinlog.Var("?a"), kinlog.Var("?b")))
	require.Len(t, got, 2)
	assert.Equal(t, kinlog.Atom("x"), got[0]["?a"])
	assert.Equal(t, kinlog.Atom("y"), got[0]["?b"])
	assert.Equal(t, kinlog.Atom("y"), got[1]["?a"])
	assert.Equal(t, kinlog.Atom("x"), got[1]["?b"])
}

func TestSelfParentYieldsNoSibling(t *testing.T) {
	// parent(a, a) satisfies the shared-parent body only with x = y,
	// which the inequality rejects
	s := newSolver(t, kinlog.Parent("a", "a"))

	assert.Empty(t, answers(t, s, Q("sibling", kinlog.Var("?x"), kinlog.Var("?y"))))
}

func TestHalfSiblings(t *testing.T) {
	s := newSolver(t,
		kinlog.Parent("ann", "x"),
		kinlog.Parent("ann", "y"),
		kinlog.Parent("bob", "x"),
		kinlog.Parent("carl", "y"),
	)

	// One shared parent suffices, and it is the only derivation
	got := answers(t, s, Q("sibling", kinlog.Atom("x"), kinlog.Atom("y")))
	assert.Len(t, got, 1)
}

func TestAncestorTransitive(t *testing.T) {
	s := newSolver(t,
		kinlog.Parent("a", "b"),
		kinlog.Parent("b", "c"),
		kinlog.Parent("c", "d"),
	)

	assert.True(t, holds(t, s, Q("ancestor", kinlog.Atom("a"), kinlog.Atom("d"))))
	assert.False(t, holds(t, s, Q("ancestor", kinlog.Atom("d"), kinlog.Atom("a"))))

	got := answers(t, s, Q("ancestor", kinlog.Atom("a"), kinlog.Var("?d")))
	require.Len(t, got, 3)
	assert.Equal(t, kinlog.Atom("b"), got[0]["?d"])
	assert.Equal(t, kinlog.Atom("c"), got[1]["?d"])
	assert.Equal(t, kinlog.Atom("d"), got[2]["?d"])

	got = answers(t, s, Q("descendant", kinlog.Var("?x"), kinlog.Atom("a")))
	assert.Len(t, got, 3)
}

func TestAncestorTerminatesOnCycle(t *testing.T) {
	// A parent cycle is not a well-formed family, but resolution must
	// still terminate rather than recurse forever
	s := newSolver(t,
		kinlog.Parent("a", "b"),
		kinlog.Parent("b", "a"),
	)

	got := answers(t, s, Q("ancestor", kinlog.Atom("a"), kinlog.Var("?d")))
	require.Len(t, got, 2)
	assert.Equal(t, kinlog.Atom("b"), got[0]["?d"])
	assert.Equal(t, kinlog.Atom("a"), got[1]["?d"])

	got = answers(t, s, Q("ancestor", kinlog.Atom("a"), kinlog.Atom("a")))
	assert.Len(t, got, 1)
}

func TestUncleByBloodOnly(t *testing.T) {
	// peter is alice's brother, so he is mimi's uncle; manny is a
	// grandfather, not an uncle, and no in-law can qualify
	s := familySolver(t)

	got := answers(t, s, Q("uncle", kinlog.Var("?u"), kinlog.Atom("mimi")))
	require.Len(t, got, 2) // two shared parents, two derivations
	assert.Equal(t, kinlog.Atom("peter"), got[0]["?u"])
	assert.Equal(t, kinlog.Atom("peter"), got[1]["?u"])

	assert.Empty(t, answers(t, s, Q("aunt", kinlog.Var("?a"), kinlog.Atom("mimi"))))
}

func TestParentsOfOrderedPairs(t *testing.T) {
	s := newSolver(t,
		kinlog.Parent("m", "c"),
		kinlog.Parent("f", "c"),
	)

	got := answers(t, s, Q("parents_of", kinlog.Var("?p1"), kinlog.Var("?p2"), kinlog.Atom("c")))
	require.Len(t, got, 2)
	assert.Equal(t, kinlog.Atom("m"), got[0]["?p1"])
	assert.Equal(t, kinlog.Atom("f"), got[0]["?p2"])
	assert.Equal(t, kinlog.Atom("f"), got[1]["?p1"])
	assert.Equal(t, kinlog.Atom("m"), got[1]["?p2"])
}

func TestRelativeKeepsDuplicateDerivations(t *testing.T) {
	s := newSolver(t,
		kinlog.Parent("m", "a"),
		kinlog.Parent("m", "b"),
		kinlog.Parent("f", "a"),
		kinlog.Parent("f", "b"),
	)

	// One answer per shared ancestor, none eliminated
	got := answers(t, s, Q("relative", kinlog.Atom("a"), kinlog.Atom("b")))
	assert.Len(t, got, 2)

	// The shared-ancestor variable is internal and never surfaces
	for _, b := range got {
		assert.Empty(t, b)
	}
}

func TestRelativeNeverReflexive(t *testing.T) {
	s := newSolver(t,
		kinlog.Parent("a", "b"),
		kinlog.Parent("b", "a"),
	)

	// On cyclic data a is its own ancestor; the trailing inequality
	// still keeps relative irreflexive
	assert.False(t, holds(t, s, Q("relative", kinlog.Atom("a"), kinlog.Atom("a"))))
	assert.True(t, holds(t, s, Q("relative", kinlog.Atom("a"), kinlog.Atom("b"))))
}

func TestSolveIsRepeatable(t *testing.T) {
	s := familySolver(t)
	q := Q("sibling", kinlog.Var("?x"), kinlog.Var("?y"))

	first := answers(t, s, q)
	second := answers(t, s, q)
	assert.Equal(t, first, second)
}

func TestSolutionsArePulled(t *testing.T) {
	s := familySolver(t)

	sols, err := s.Solve(Q("sibling", kinlog.Var("?x"), kinlog.Var("?y")))
	require.NoError(t, err)

	// Take one answer, abandon the rest
	require.True(t, sols.Next())
	first := sols.Binding()
	assert.NotEqual(t, first["?x"], first["?y"])
	require.NoError(t, sols.Close())

	assert.False(t, sols.Next())
	require.NoError(t, sols.Close())
}

func TestProjectionHidesInternalVariables(t *testing.T) {
	s := familySolver(t)

	got := answers(t, s, Q("grandparent", kinlog.Var("?gp"), kinlog.Var("?c")))
	require.NotEmpty(t, got)
	for _, b := range got {
		require.Len(t, b, 2)
		assert.Contains(t, b, kinlog.Symbol("?gp"))
		assert.Contains(t, b, kinlog.Symbol("?c"))
	}
}

func TestRepeatedQueryVariable(t *testing.T) {
	s := newSolver(t, kinlog.Parent("a", "a"))

	// parent(?x, ?x) only matches the self-loop
	got := answers(t, s, Q(kinlog.RelParent, kinlog.Var("?x"), kinlog.Var("?x")))
	require.Len(t, got, 1)
	assert.Equal(t, kinlog.Atom("a"), got[0]["?x"])
}
