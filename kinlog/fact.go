package kinlog

import (
	"fmt"
	"strings"
)

// Base relations that may be asserted as ground facts
// Every derived relation bottoms out in these
const (
	RelParent = "parent"
	RelMale   = "male"
	RelFemale = "female"
)

// BaseArity maps each base relation to its arity
var BaseArity = map[string]int{
	RelParent: 2,
	RelMale:   1,
	RelFemale: 1,
}

// IsBase returns true if relation is an assertable base relation
func IsBase(relation string) bool {
	_, ok := BaseArity[relation]
	return ok
}

// Fact is a ground relational tuple over individuals
// Every argument position is a concrete Atom; variables are never stored
type Fact struct {
	Relation string
	Args     []Atom
}

// NewFact constructs a fact
func NewFact(relation string, args ...Atom) Fact {
	return Fact{Relation: relation, Args: args}
}

// Parent builds a parent(p, c) fact
func Parent(p, c Atom) Fact { return NewFact(RelParent, p, c) }

// Male builds a male(x) fact
func Male(x Atom) Fact { return NewFact(RelMale, x) }

// Female builds a female(x) fact
func Female(x Atom) Fact { return NewFact(RelFemale, x) }

// Validate checks that the fact is a well-formed ground tuple over a
// known base relation, returning an error wrapping ErrInvalidFact if not
func (f Fact) Validate() error {
	arity, ok := BaseArity[f.Relation]
	if !ok {
		return fmt.Errorf("%w: %q is not a base relation", ErrInvalidFact, f.Relation)
	}
	if len(f.Args) != arity {
		return fmt.Errorf("%w: %s expects %d arguments, got %d",
			ErrInvalidFact, f.Relation, arity, len(f.Args))
	}
	for i, a := range f.Args {
		if a == "" {
			return fmt.Errorf("%w: %s argument %d is empty", ErrInvalidFact, f.Relation, i)
		}
	}
	return nil
}

// Equal compares two facts by relation and argument values
func (f Fact) Equal(other Fact) bool {
	if f.Relation != other.Relation || len(f.Args) != len(other.Args) {
		return false
	}
	for i := range f.Args {
		if f.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// String returns the fact in functor notation, e.g. parent(penny, alice)
func (f Fact) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = string(a)
	}
	return fmt.Sprintf("%s(%s)", f.Relation, strings.Join(args, ", "))
}
