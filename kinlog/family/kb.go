// Package family layers kinship semantics over the inference engine:
// statement-level assertion (a "mother" statement becomes parent +
// female facts), feasibility screening, and contradiction detection
// against what is already derivable
package family

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wbrown/kinlog/kinlog"
	"github.com/wbrown/kinlog/kinlog/rules"
	"github.com/wbrown/kinlog/kinlog/solver"
	"github.com/wbrown/kinlog/kinlog/store"
)

// ErrImpossible reports a statement rejected because it contradicts
// the known family or is not derivable from it
var ErrImpossible = errors.New("that's impossible")

// KB couples a fact store with a solver over the default kinship rules
type KB struct {
	facts  store.FactStore
	solver *solver.Solver
}

// New creates a knowledge base on top of the given store
func New(facts store.FactStore) *KB {
	return &KB{
		facts:  facts,
		solver: solver.New(facts, rules.Default()),
	}
}

// Store exposes the underlying fact store
func (kb *KB) Store() store.FactStore { return kb.facts }

// Solver exposes the underlying solver
func (kb *KB) Solver() *solver.Solver { return kb.solver }

// Ask reports whether relation(names...) is derivable
func (kb *KB) Ask(relation string, names ...kinlog.Atom) (bool, error) {
	return kb.solver.Prove(solver.Q(relation, atomTerms(names)...))
}

// Who enumerates the distinct X with relation(X, of), in derivation
// order. Different derivations can repeat an answer; Who dedupes
func (kb *KB) Who(relation string, of kinlog.Atom) ([]kinlog.Atom, error) {
	sols, err := kb.solver.Solve(solver.Q(relation, kinlog.Var("?who"), of))
	if err != nil {
		return nil, err
	}
	var out []kinlog.Atom
	seen := make(map[kinlog.Atom]bool)
	for _, b := range sols.All() {
		if who, ok := b["?who"]; ok && !seen[who] {
			seen[who] = true
			out = append(out, who)
		}
	}
	return out, nil
}

// Assert records a relationship statement, translating it into base
// facts the way the statement is meant: "m is the mother of c" becomes
// parent(m, c) plus female(m). Statements that contradict the known
// family, or claim a derived relation that does not hold (grandmother,
// uncle, ...), fail with an error wrapping ErrImpossible
func (kb *KB) Assert(relation string, names ...kinlog.Atom) error {
	if reasons, err := kb.Contradictions(relation, names); err != nil {
		return err
	} else if len(reasons) > 0 {
		return fmt.Errorf("%w: %s", ErrImpossible, strings.Join(reasons, "; "))
	}

	switch relation {
	case "mother":
		return kb.assertAll(kinlog.Parent(names[0], names[1]), kinlog.Female(names[0]))
	case "father":
		return kb.assertAll(kinlog.Parent(names[0], names[1]), kinlog.Male(names[0]))
	case "parent":
		return kb.facts.Assert(kinlog.Parent(names[0], names[1]))
	case "child":
		return kb.facts.Assert(kinlog.Parent(names[1], names[0]))
	case "daughter":
		return kb.assertAll(kinlog.Parent(names[1], names[0]), kinlog.Female(names[0]))
	case "son":
		return kb.assertAll(kinlog.Parent(names[1], names[0]), kinlog.Male(names[0]))
	case "male":
		return kb.facts.Assert(kinlog.Male(names[0]))
	case "female":
		return kb.facts.Assert(kinlog.Female(names[0]))

	case "sister", "brother":
		// The statement only pins down sex; siblinghood must already
		// follow from shared parentage
		if err := kb.requireDerivable("sibling", names[0], names[1]); err != nil {
			return err
		}
		if relation == "sister" {
			return kb.facts.Assert(kinlog.Female(names[0]))
		}
		return kb.facts.Assert(kinlog.Male(names[0]))

	case "siblings":
		// Accepted only when a common parent is already known
		return kb.requireDerivable("sibling", names[0], names[1])

	case "grandmother":
		if err := kb.requireDerivable("grandparent", names[0], names[1]); err != nil {
			return err
		}
		return kb.facts.Assert(kinlog.Female(names[0]))
	case "grandfather":
		if err := kb.requireDerivable("grandparent", names[0], names[1]); err != nil {
			return err
		}
		return kb.facts.Assert(kinlog.Male(names[0]))

	case "uncle", "aunt":
		// The statement can only contribute the sex fact; the
		// sibling-of-a-parent structure must already be there
		ok, err := kb.siblingOfParent(names[0], names[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s is not the sibling of a parent of %s",
				ErrImpossible, names[0], names[1])
		}
		if relation == "uncle" {
			return kb.facts.Assert(kinlog.Male(names[0]))
		}
		return kb.facts.Assert(kinlog.Female(names[0]))

	case "parents_of":
		return kb.assertAll(kinlog.Parent(names[0], names[2]), kinlog.Parent(names[1], names[2]))

	case "children_of":
		parent := names[len(names)-1]
		for _, c := range names[:len(names)-1] {
			if err := kb.facts.Assert(kinlog.Parent(parent, c)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s", kinlog.ErrUnknownRelation, relation)
}

func (kb *KB) assertAll(facts ...kinlog.Fact) error {
	for _, f := range facts {
		if err := kb.facts.Assert(f); err != nil {
			return err
		}
	}
	return nil
}

// requireDerivable fails with ErrImpossible unless relation(x, y)
// already holds
func (kb *KB) requireDerivable(relation string, x, y kinlog.Atom) error {
	ok, err := kb.Ask(relation, x, y)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s(%s, %s) does not hold", ErrImpossible, relation, x, y)
	}
	return nil
}

// siblingOfParent reports whether x is a sibling of some parent of y,
// the sex-independent core of uncle/aunt
func (kb *KB) siblingOfParent(x, y kinlog.Atom) (bool, error) {
	parents, err := kb.Who("parent", y)
	if err != nil {
		return false, err
	}
	for _, p := range parents {
		ok, err := kb.Ask("sibling", x, p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func atomTerms(names []kinlog.Atom) []kinlog.Term {
	terms := make([]kinlog.Term, len(names))
	for i, n := range names {
		terms[i] = n
	}
	return terms
}
