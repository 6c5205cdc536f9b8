package rules

import (
	"fmt"
	"strings"

	"github.com/wbrown/kinlog/kinlog"
)

// Goal is one sub-goal in a rule body
type Goal interface {
	String() string
	goal()
}

// Pattern is a relation pattern: a relation name applied to terms,
// some of which may be variables
type Pattern struct {
	Relation string
	Args     []kinlog.Term
}

func (Pattern) goal() {}

func (p Pattern) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Relation, strings.Join(args, ", "))
}

// Distinct is the inequality constraint X ≠ Y between two terms
// It succeeds iff both terms are bound and their values differ; the
// validator rejects rules where either operand could be unbound
type Distinct struct {
	X, Y kinlog.Term
}

func (Distinct) goal() {}

func (d Distinct) String() string {
	return fmt.Sprintf("%s \\= %s", d.X, d.Y)
}

// Rule derives its head relation from a conjunction of body goals,
// resolved left to right
type Rule struct {
	Head Pattern
	Body []Goal
}

func (r Rule) String() string {
	goals := make([]string, len(r.Body))
	for i, g := range r.Body {
		goals[i] = g.String()
	}
	return fmt.Sprintf("%s :- %s", r.Head, strings.Join(goals, ", "))
}

// RuleSet is an ordered collection of rules, fixed at initialization
// and immutable thereafter. A derived relation with alternative
// derivations (ancestor, relative) simply has several rules sharing a
// head; they are tried in definition order
type RuleSet struct {
	rules []Rule
	arity map[string]int
}

// New builds a RuleSet, validating every rule
// A malformed rule is fatal: the constructor fails and nothing loads
func New(rules []Rule) (*RuleSet, error) {
	rs := &RuleSet{rules: rules, arity: make(map[string]int)}
	for _, r := range rules {
		if existing, ok := rs.arity[r.Head.Relation]; ok {
			if existing != len(r.Head.Args) {
				return nil, fmt.Errorf("%w: %s defined with arity %d and %d",
					kinlog.ErrMalformedRule, r.Head.Relation, existing, len(r.Head.Args))
			}
		} else {
			rs.arity[r.Head.Relation] = len(r.Head.Args)
		}
	}
	if err := rs.validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// ForRelation returns the rules whose head matches, in definition order
func (rs *RuleSet) ForRelation(relation string) []Rule {
	var out []Rule
	for _, r := range rs.rules {
		if r.Head.Relation == relation {
			out = append(out, r)
		}
	}
	return out
}

// IsDerived reports whether relation is defined by some rule head
func (rs *RuleSet) IsDerived(relation string) bool {
	_, ok := rs.arity[relation]
	return ok
}

// Arity returns the arity of a relation known to the set, base or derived
func (rs *RuleSet) Arity(relation string) (int, bool) {
	if n, ok := kinlog.BaseArity[relation]; ok {
		return n, true
	}
	n, ok := rs.arity[relation]
	return n, ok
}

// Relations returns every relation the set can answer for, base first
func (rs *RuleSet) Relations() []string {
	out := []string{kinlog.RelParent, kinlog.RelMale, kinlog.RelFemale}
	seen := make(map[string]bool)
	for _, r := range rs.rules {
		if !seen[r.Head.Relation] {
			seen[r.Head.Relation] = true
			out = append(out, r.Head.Relation)
		}
	}
	return out
}
