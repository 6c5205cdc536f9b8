package rules

import (
	"fmt"

	"github.com/wbrown/kinlog/kinlog"
)

// validate rejects rule sets a resolution run could not handle:
//
//   - a body pattern naming a relation that is neither base nor defined
//     by some head in the set (ErrUnknownRelation)
//   - an inequality over a variable no earlier body pattern binds; at
//     run time Distinct requires both operands ground (ErrMalformedRule)
//   - a head variable that never occurs in the body, which could leak
//     an unbound variable into an answer (ErrMalformedRule)
//   - a head redefining a base relation (ErrMalformedRule)
func (rs *RuleSet) validate() error {
	for _, r := range rs.rules {
		if kinlog.IsBase(r.Head.Relation) {
			return fmt.Errorf("%w: %s redefines a base relation",
				kinlog.ErrMalformedRule, r.Head.Relation)
		}

		bound := make(map[kinlog.Symbol]bool)
		for _, g := range r.Body {
			switch goal := g.(type) {
			case Pattern:
				arity, known := rs.Arity(goal.Relation)
				if !known {
					return fmt.Errorf("%w: %s in rule %q",
						kinlog.ErrUnknownRelation, goal.Relation, r)
				}
				if arity != len(goal.Args) {
					return fmt.Errorf("%w: %s called with %d arguments, arity is %d",
						kinlog.ErrMalformedRule, goal.Relation, len(goal.Args), arity)
				}
				for _, a := range goal.Args {
					if v, ok := a.(kinlog.Variable); ok {
						bound[v.Name] = true
					}
				}
			case Distinct:
				for _, t := range []kinlog.Term{goal.X, goal.Y} {
					if v, ok := t.(kinlog.Variable); ok && !bound[v.Name] {
						return fmt.Errorf("%w: inequality over unbound %s in rule %q",
							kinlog.ErrMalformedRule, v.Name, r)
					}
				}
			default:
				return fmt.Errorf("%w: unsupported goal %T in rule %q",
					kinlog.ErrMalformedRule, g, r)
			}
		}

		for _, a := range r.Head.Args {
			if v, ok := a.(kinlog.Variable); ok && !bound[v.Name] {
				return fmt.Errorf("%w: head variable %s never bound in body of %q",
					kinlog.ErrMalformedRule, v.Name, r)
			}
		}
	}
	return nil
}
