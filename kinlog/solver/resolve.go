package solver

import (
	"strconv"

	"github.com/wbrown/kinlog/kinlog"
	"github.com/wbrown/kinlog/kinlog/rules"
	"github.com/wbrown/kinlog/kinlog/store"
)

// bindingIterator is the internal lazy stream of substitutions
// produced while proving one goal
type bindingIterator interface {
	Next() bool
	Binding() kinlog.Bindings
	Close() error
}

// resolve proves one goal under a substitution, returning the stream
// of solution substitutions in derivation order
func (s *Solver) resolve(g rules.Goal, bind kinlog.Bindings, path *goalPath) bindingIterator {
	switch goal := g.(type) {
	case rules.Distinct:
		// Succeeds iff both sides are ground and differ. The validator
		// guarantees operands are bound by the time this runs
		x, xok := bind.Atom(goal.X)
		y, yok := bind.Atom(goal.Y)
		if xok && yok && x != y {
			return &singletonIterator{binding: bind}
		}
		return emptyIterator{}

	case rules.Pattern:
		if kinlog.IsBase(goal.Relation) {
			return &factIterator{solver: s, goal: goal, base: bind}
		}

		key := goalKey(goal.Relation, goal.Args, bind)
		if path.contains(key) {
			// The same goal is already being proved on this path:
			// a recurring goal can only loop, so the branch fails
			return emptyIterator{}
		}
		return &deriveIterator{
			solver: s,
			goal:   goal,
			base:   bind,
			path:   &goalPath{key: key, parent: path},
			rules:  s.rules.ForRelation(goal.Relation),
		}
	}
	return emptyIterator{}
}

// emptyIterator is the failed branch
type emptyIterator struct{}

func (emptyIterator) Next() bool               { return false }
func (emptyIterator) Binding() kinlog.Bindings { return nil }
func (emptyIterator) Close() error             { return nil }

// singletonIterator yields exactly one substitution
type singletonIterator struct {
	binding kinlog.Bindings
	used    bool
}

func (it *singletonIterator) Next() bool {
	if it.used {
		return false
	}
	it.used = true
	return true
}

func (it *singletonIterator) Binding() kinlog.Bindings { return it.binding }
func (it *singletonIterator) Close() error             { return nil }

// factIterator proves a base-relation goal by enumerating matching
// facts from the store, in store order, unifying each against the
// current substitution
type factIterator struct {
	solver  *Solver
	goal    rules.Pattern
	base    kinlog.Bindings
	inner   store.Iterator
	binding kinlog.Bindings
	started bool
	done    bool
}

func (it *factIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		pattern := make([]*kinlog.Atom, len(it.goal.Args))
		for i, arg := range it.goal.Args {
			if a, ok := it.base.Atom(arg); ok {
				bound := a
				pattern[i] = &bound
			}
		}
		inner, err := it.solver.store.Match(it.goal.Relation, pattern)
		if err != nil {
			// Rule validation and Solve's arity check make a Match
			// failure unreachable; fail the branch regardless
			it.done = true
			return false
		}
		it.inner = inner
	}
	for it.inner.Next() {
		f := it.inner.Fact()
		if b, ok := kinlog.UnifyArgs(it.goal.Args, kinlog.FactTerms(f), it.base); ok {
			it.binding = b
			return true
		}
	}
	it.done = true
	it.inner.Close()
	return false
}

func (it *factIterator) Binding() kinlog.Bindings { return it.binding }

func (it *factIterator) Close() error {
	it.done = true
	if it.inner != nil {
		return it.inner.Close()
	}
	return nil
}

// deriveIterator proves a derived-relation goal: each matching rule is
// renamed fresh, its head unified against the goal, and its body
// resolved as a conjunction. Alternatives are explored fully in rule
// definition order; their results concatenate
type deriveIterator struct {
	solver  *Solver
	goal    rules.Pattern
	base    kinlog.Bindings
	path    *goalPath
	rules   []rules.Rule
	idx     int
	conj    bindingIterator
	binding kinlog.Bindings
	done    bool
}

func (it *deriveIterator) Next() bool {
	if it.done {
		return false
	}
	for {
		if it.conj != nil {
			if it.conj.Next() {
				it.binding = it.conj.Binding()
				return true
			}
			it.conj.Close()
			it.conj = nil
		}
		if it.idx >= len(it.rules) {
			it.done = true
			return false
		}
		r := it.solver.renameRule(it.rules[it.idx])
		it.idx++
		if b, ok := kinlog.UnifyArgs(it.goal.Args, r.Head.Args, it.base); ok {
			it.conj = &conjIterator{
				solver: it.solver,
				goals:  r.Body,
				base:   b,
				path:   it.path,
			}
		}
	}
}

func (it *deriveIterator) Binding() kinlog.Bindings { return it.binding }

func (it *deriveIterator) Close() error {
	it.done = true
	if it.conj != nil {
		return it.conj.Close()
	}
	return nil
}

// conjIterator resolves a conjunction of body goals left to right,
// threading the substitution through each sub-goal. When a later goal
// is exhausted it backtracks into the previous goal's remaining
// solutions; the stack holds one live stream per goal position
type conjIterator struct {
	solver  *Solver
	goals   []rules.Goal
	base    kinlog.Bindings
	path    *goalPath
	stack   []bindingIterator
	binding kinlog.Bindings
	started bool
	done    bool
}

func (it *conjIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		if len(it.goals) == 0 {
			// An empty body is vacuously true, once
			it.binding = it.base
			it.done = true
			return true
		}
		it.stack = append(it.stack, it.solver.resolve(it.goals[0], it.base, it.path))
	}
	for len(it.stack) > 0 {
		i := len(it.stack) - 1
		if it.stack[i].Next() {
			b := it.stack[i].Binding()
			if i == len(it.goals)-1 {
				it.binding = b
				return true
			}
			it.stack = append(it.stack, it.solver.resolve(it.goals[i+1], b, it.path))
			continue
		}
		it.stack[i].Close()
		it.stack = it.stack[:i]
	}
	it.done = true
	return false
}

func (it *conjIterator) Binding() kinlog.Bindings { return it.binding }

func (it *conjIterator) Close() error {
	it.done = true
	for _, s := range it.stack {
		s.Close()
	}
	it.stack = nil
	return nil
}

// renameRule rewrites a rule's variables to fresh names so one
// application's bindings cannot collide with another's or with the
// caller's variables
func (s *Solver) renameRule(r rules.Rule) rules.Rule {
	s.fresh++
	suffix := "#" + strconv.Itoa(s.fresh)

	renameTerm := func(t kinlog.Term) kinlog.Term {
		if v, ok := t.(kinlog.Variable); ok {
			return kinlog.Variable{Name: v.Name + kinlog.Symbol(suffix)}
		}
		return t
	}
	renameArgs := func(args []kinlog.Term) []kinlog.Term {
		out := make([]kinlog.Term, len(args))
		for i, a := range args {
			out[i] = renameTerm(a)
		}
		return out
	}

	head := rules.Pattern{Relation: r.Head.Relation, Args: renameArgs(r.Head.Args)}
	body := make([]rules.Goal, len(r.Body))
	for i, g := range r.Body {
		switch goal := g.(type) {
		case rules.Pattern:
			body[i] = rules.Pattern{Relation: goal.Relation, Args: renameArgs(goal.Args)}
		case rules.Distinct:
			body[i] = rules.Distinct{X: renameTerm(goal.X), Y: renameTerm(goal.Y)}
		default:
			body[i] = g
		}
	}
	return rules.Rule{Head: head, Body: body}
}
