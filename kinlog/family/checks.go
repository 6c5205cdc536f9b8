package family

import (
	"fmt"

	"github.com/wbrown/kinlog/kinlog"
)

// Contradictions screens a relationship statement against what is
// already derivable, returning the reasons it cannot be accepted.
// An empty slice means the statement is consistent
//
// The checks are deliberately closed-world: only derivable conflicts
// count, and an unknown person conflicts with nothing
func (kb *KB) Contradictions(relation string, names []kinlog.Atom) ([]string, error) {
	var reasons []string

	add := func(format string, args ...interface{}) {
		reasons = append(reasons, fmt.Sprintf(format, args...))
	}
	holds := func(rel string, args ...kinlog.Atom) (bool, error) {
		return kb.Ask(rel, args...)
	}

	switch relation {
	case "male", "female":
		if len(names) != 1 {
			return nil, fmt.Errorf("%w: %s takes one name", kinlog.ErrInvalidFact, relation)
		}
		other := "female"
		if relation == "female" {
			other = "male"
		}
		if ok, err := holds(other, names[0]); err != nil {
			return nil, err
		} else if ok {
			add("%s is already %s", names[0], other)
		}
		return reasons, nil

	case "parents_of":
		if len(names) != 3 {
			return nil, fmt.Errorf("%w: parents_of takes three names", kinlog.ErrInvalidFact)
		}
		p1, p2, c := names[0], names[1], names[2]
		if p1 == p2 {
			add("the two parents are the same person")
		}
		for _, p := range []kinlog.Atom{p1, p2} {
			sub, err := kb.parentContradictions(p, c)
			if err != nil {
				return nil, err
			}
			reasons = append(reasons, sub...)
		}
		return reasons, nil

	case "children_of":
		if len(names) < 2 {
			return nil, fmt.Errorf("%w: children_of takes at least two names", kinlog.ErrInvalidFact)
		}
		children, parent := names[:len(names)-1], names[len(names)-1]
		seen := make(map[kinlog.Atom]bool)
		for _, c := range children {
			if c == parent {
				add("%s cannot be their own parent", c)
			}
			if seen[c] {
				add("%s is listed twice", c)
			}
			seen[c] = true
			sub, err := kb.parentContradictions(parent, c)
			if err != nil {
				return nil, err
			}
			reasons = append(reasons, sub...)
		}
		return reasons, nil
	}

	// Binary statements
	if len(names) != 2 {
		return nil, fmt.Errorf("%w: %s takes two names", kinlog.ErrInvalidFact, relation)
	}
	x, y := names[0], names[1]
	if x == y {
		add("self-relationship")
		return reasons, nil
	}

	sexReason, err := kb.sexConflict(relation, x)
	if err != nil {
		return nil, err
	}
	if sexReason != "" {
		add("%s", sexReason)
	}

	switch relation {
	case "parent", "father", "mother":
		sub, err := kb.parentContradictions(x, y)
		if err != nil {
			return nil, err
		}
		reasons = append(reasons, sub...)

		if relation == "father" {
			if fathers, err := kb.Who("father", y); err != nil {
				return nil, err
			} else if len(fathers) > 0 && fathers[0] != x {
				add("%s can only have one father", y)
			}
		}
		if relation == "mother" {
			if mothers, err := kb.Who("mother", y); err != nil {
				return nil, err
			} else if len(mothers) > 0 && mothers[0] != x {
				add("%s can only have one mother", y)
			}
		}
		for _, rel := range []string{"child", "sibling", "descendant", "uncle", "aunt"} {
			if ok, err := holds(rel, x, y); err != nil {
				return nil, err
			} else if ok {
				add("%s cannot be both %s and %s of %s", x, relation, rel, y)
			}
		}

	case "child", "son", "daughter":
		if ok, err := holds("parent", x, y); err != nil {
			return nil, err
		} else if ok {
			add("%s cannot be both child and parent of %s", x, y)
		}
		if ok, err := holds("ancestor", x, y); err != nil {
			return nil, err
		} else if ok {
			add("%s is already an ancestor of %s", x, y)
		}

	case "uncle", "aunt":
		for _, rel := range []string{"parent", "grandparent", "sibling"} {
			if ok, err := holds(rel, x, y); err != nil {
				return nil, err
			} else if ok {
				add("%s cannot be both %s and %s of %s", x, relation, rel, y)
			}
		}

	case "brother", "sister", "siblings":
		for _, rel := range []string{"parent", "child"} {
			if ok, err := holds(rel, x, y); err != nil {
				return nil, err
			} else if ok {
				add("%s cannot be both %s and %s of %s", x, relation, rel, y)
			}
		}
	}

	return reasons, nil
}

// parentContradictions checks one prospective parent(p, c) edge
func (kb *KB) parentContradictions(p, c kinlog.Atom) ([]string, error) {
	var reasons []string
	if p == c {
		return []string{"self-parenting"}, nil
	}
	if ok, err := kb.Ask("parent", c, p); err != nil {
		return nil, err
	} else if ok {
		reasons = append(reasons, fmt.Sprintf("reverse parent already exists between %s and %s", p, c))
	}
	if ok, err := kb.Ask("ancestor", c, p); err != nil {
		return nil, err
	} else if ok {
		reasons = append(reasons, fmt.Sprintf("%s is a descendant of %s, cycle", p, c))
	}
	parents, err := kb.Who("parent", c)
	if err != nil {
		return nil, err
	}
	known := false
	for _, existing := range parents {
		if existing == p {
			known = true
		}
	}
	if !known && len(parents) >= 2 {
		reasons = append(reasons, fmt.Sprintf("%s already has two parents", c))
	}
	return reasons, nil
}

// sexConflict reports a sex fact that rules out the stated role
func (kb *KB) sexConflict(relation string, x kinlog.Atom) (string, error) {
	var needs string
	switch relation {
	case "father", "son", "brother", "grandfather", "uncle":
		needs = "male"
	case "mother", "daughter", "sister", "grandmother", "aunt":
		needs = "female"
	default:
		return "", nil
	}
	other := "female"
	if needs == "female" {
		other = "male"
	}
	ok, err := kb.Ask(other, x)
	if err != nil {
		return "", err
	}
	if ok {
		return fmt.Sprintf("%s cannot be %s: %s is %s", x, relation, x, other), nil
	}
	return "", nil
}
