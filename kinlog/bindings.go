package kinlog

import (
	"fmt"
	"sort"
	"strings"
)

// Bindings is a substitution: a consistent mapping from variable names
// to terms, built incrementally during resolution
//
// Extension is copy-on-write: Extend returns a fresh map and never
// mutates the receiver, so backtracking is simply discarding the
// extended substitution and trying the next alternative
type Bindings map[Symbol]Term

// Walk resolves t through the substitution, following variable-to-
// variable links, until it reaches an atom or an unbound variable
func (b Bindings) Walk(t Term) Term {
	for {
		v, ok := t.(Variable)
		if !ok {
			return t
		}
		bound, ok := b[v.Name]
		if !ok {
			return t
		}
		t = bound
	}
}

// Extend returns a new substitution with v bound to t
// The receiver is unchanged
func (b Bindings) Extend(v Symbol, t Term) Bindings {
	next := make(Bindings, len(b)+1)
	for k, bound := range b {
		next[k] = bound
	}
	next[v] = t
	return next
}

// Atom walks t and returns its atom value, if it is ground
func (b Bindings) Atom(t Term) (Atom, bool) {
	a, ok := b.Walk(t).(Atom)
	return a, ok
}

// String renders the substitution with variables in sorted order
func (b Bindings) String() string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, string(name))
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%s", name, b.Walk(Variable{Name: Symbol(name)}))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
