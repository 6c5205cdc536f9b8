package kinlog

// Unify attempts to make a and b equal under the given substitution,
// returning the extended substitution on success
//
// It is a pure function: the input Bindings is never mutated, and the
// same inputs always yield the same result. Failure is reported as
// (nil, false), never as an error; a non-match is a normal outcome of
// resolution
func Unify(a, b Term, bind Bindings) (Bindings, bool) {
	a = bind.Walk(a)
	b = bind.Walk(b)

	switch at := a.(type) {
	case Variable:
		if bt, ok := b.(Variable); ok && bt.Name == at.Name {
			return bind, true
		}
		return bind.Extend(at.Name, b), true

	case Atom:
		switch bt := b.(type) {
		case Variable:
			return bind.Extend(bt.Name, a), true
		case Atom:
			if at == bt {
				return bind, true
			}
		}
	}
	return nil, false
}

// UnifyArgs unifies two argument lists pairwise, left to right,
// threading the substitution through each position
// The lists must have equal length; mismatched lengths fail
func UnifyArgs(as, bs []Term, bind Bindings) (Bindings, bool) {
	if len(as) != len(bs) {
		return nil, false
	}
	for i := range as {
		next, ok := Unify(as[i], bs[i], bind)
		if !ok {
			return nil, false
		}
		bind = next
	}
	return bind, true
}

// FactTerms converts a ground fact's arguments to terms for unification
func FactTerms(f Fact) []Term {
	terms := make([]Term, len(f.Args))
	for i, a := range f.Args {
		terms[i] = a
	}
	return terms
}
