package solver

import (
	"fmt"
	"strings"

	"github.com/wbrown/kinlog/kinlog"
	"github.com/wbrown/kinlog/kinlog/rules"
	"github.com/wbrown/kinlog/kinlog/store"
)

// Query is a relation name applied to terms, each either a bound Atom
// or a free Variable. Zero or more positions may be free
type Query struct {
	Relation string
	Args     []kinlog.Term
}

// Q is a convenience constructor for a Query
func Q(relation string, args ...kinlog.Term) Query {
	return Query{Relation: relation, Args: args}
}

func (q Query) String() string {
	args := make([]string, len(q.Args))
	for i, a := range q.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", q.Relation, strings.Join(args, ", "))
}

// Solver proves queries against a fact store and a fixed rule set by
// depth-first, left-to-right, backtracking resolution
//
// Resolution is read-only with respect to the store. A Solver is not
// safe for concurrent use, and the store must not be mutated while a
// query's Solutions are being consumed
type Solver struct {
	store store.FactStore
	rules *rules.RuleSet
	fresh int
}

// New creates a solver over a store and a validated rule set
func New(facts store.FactStore, ruleset *rules.RuleSet) *Solver {
	return &Solver{store: facts, rules: ruleset}
}

// Solve resolves a query, returning a lazy sequence of answers
//
// A relation that is neither base nor derived fails with an error
// wrapping kinlog.ErrUnknownRelation. Logical failure is not an error:
// the sequence is simply empty (closed-world semantics, so "unknown"
// and "false" are indistinguishable)
//
// Answers are projected onto the query's own variables; variables
// internal to rule derivations never appear. Duplicate answers reached
// through different derivations (notably relative's alternative
// branches) are not eliminated
func (s *Solver) Solve(q Query) (*Solutions, error) {
	arity, known := s.rules.Arity(q.Relation)
	if !known {
		return nil, fmt.Errorf("%w: %s", kinlog.ErrUnknownRelation, q.Relation)
	}
	if arity != len(q.Args) {
		return nil, fmt.Errorf("%w: %s/%d (arity is %d)",
			kinlog.ErrUnknownRelation, q.Relation, len(q.Args), arity)
	}

	goal := rules.Pattern{Relation: q.Relation, Args: q.Args}
	return &Solutions{
		inner: s.resolve(goal, kinlog.Bindings{}, nil),
		vars:  queryVars(q),
	}, nil
}

// Prove reports whether the query has at least one answer, taking just
// the first solution off the lazy sequence
func (s *Solver) Prove(q Query) (bool, error) {
	sols, err := s.Solve(q)
	if err != nil {
		return false, err
	}
	defer sols.Close()
	return sols.Next(), nil
}

// queryVars collects the distinct variable names of a query, in order
func queryVars(q Query) []kinlog.Symbol {
	var vars []kinlog.Symbol
	seen := make(map[kinlog.Symbol]bool)
	for _, a := range q.Args {
		if v, ok := a.(kinlog.Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			vars = append(vars, v.Name)
		}
	}
	return vars
}

// Solutions is the lazy, finite sequence of answers to a query
// Consumers may take a prefix and abandon the rest; Close is the only
// cleanup and holds no external resources
type Solutions struct {
	inner   bindingIterator
	vars    []kinlog.Symbol
	current map[kinlog.Symbol]kinlog.Atom
	closed  bool
}

// Next advances to the next answer
func (s *Solutions) Next() bool {
	if s.closed {
		return false
	}
	if !s.inner.Next() {
		return false
	}
	bind := s.inner.Binding()
	s.current = make(map[kinlog.Symbol]kinlog.Atom, len(s.vars))
	for _, name := range s.vars {
		// Query variables are always ground in an answer: every rule
		// head variable is bound through the body, which bottoms out
		// in ground facts
		if a, ok := bind.Atom(kinlog.Variable{Name: name}); ok {
			s.current[name] = a
		}
	}
	return true
}

// Binding returns the current answer as query-variable assignments
// For a fully ground query the map is empty; Next returning true is
// the proof
func (s *Solutions) Binding() map[kinlog.Symbol]kinlog.Atom {
	return s.current
}

// All drains the sequence and closes it
func (s *Solutions) All() []map[kinlog.Symbol]kinlog.Atom {
	defer s.Close()
	var out []map[kinlog.Symbol]kinlog.Atom
	for s.Next() {
		out = append(out, s.Binding())
	}
	return out
}

// Close releases the sequence; it is safe to call more than once
func (s *Solutions) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.inner.Close()
}
