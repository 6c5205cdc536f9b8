// Package chat parses natural-language family statements and questions
// into knowledge-base operations and phrases the answers. It is the
// conversational boundary around the engine: everything here produces
// or consumes structured facts and queries, nothing more
package chat

import (
	"regexp"
	"strings"

	"github.com/wbrown/kinlog/kinlog"
)

// Statement is a parsed relationship assertion, e.g.
// "penny is the mother of alice" -> {mother, [penny alice]}
type Statement struct {
	Relation string
	Names    []kinlog.Atom
}

// Question is a parsed relationship query
// Enumerate marks "who" questions, whose first argument is free
type Question struct {
	Relation  string
	Word      string // the word the user actually used, for phrasing
	Names     []kinlog.Atom
	Enumerate bool
}

var (
	// Statements
	reRoleStatement     = regexp.MustCompile(`^(\w+) is (?:a|an|the) (\w+) of (\w+)$`)
	reSiblingsStatement = regexp.MustCompile(`^(\w+) and (\w+) are siblings$`)
	reParentsStatement  = regexp.MustCompile(`^(\w+) and (\w+) are (?:the )?parents of (\w+)$`)
	reChildren3         = regexp.MustCompile(`^(\w+),? (\w+),? and (\w+) are (?:the )?children of (\w+)$`)
	reChildren2         = regexp.MustCompile(`^(\w+) and (\w+) are (?:the )?children of (\w+)$`)
	reSexStatement      = regexp.MustCompile(`^(\w+) is (male|female)$`)

	// Questions
	reIsQuestion       = regexp.MustCompile(`^is (\w+) (?:a|an|the) (\w+) of (\w+)\?$`)
	reWhoQuestion      = regexp.MustCompile(`^who (?:is|are) the (\w+) of (\w+)\?$`)
	reArePairQuestion  = regexp.MustCompile(`^are (\w+) and (\w+) (\w+)\?$`)
	reAreParents       = regexp.MustCompile(`^are (\w+) and (\w+) (?:the )?parents of (\w+)\?$`)
	reAreChildren3 = regexp.MustCompile(`^are (\w+),? (\w+),? and (\w+) (?:the )?children of (\w+)\?$`)
	reAreChildren2 = regexp.MustCompile(`^are (\w+) and (\w+) (?:the )?children of (\w+)\?$`)
	reSexQuestion  = regexp.MustCompile(`^is (\w+) (male|female)\?$`)
)

// statementRoles are the role words accepted in "X is the R of Y"
var statementRoles = map[string]bool{
	"mother": true, "father": true, "parent": true, "child": true,
	"son": true, "daughter": true, "sister": true, "brother": true,
	"grandmother": true, "grandfather": true, "uncle": true, "aunt": true,
}

// ParseStatement parses a relationship statement
// Input matching no pattern returns (Statement{}, false)
func ParseStatement(text string) (Statement, bool) {
	text = normalize(text)

	if m := reRoleStatement.FindStringSubmatch(text); m != nil {
		role := Closest(m[2])
		if role != "" && statementRoles[role] {
			return Statement{Relation: role, Names: atoms(m[1], m[3])}, true
		}
		return Statement{}, false
	}
	if m := reSiblingsStatement.FindStringSubmatch(text); m != nil {
		return Statement{Relation: "siblings", Names: atoms(m[1], m[2])}, true
	}
	if m := reParentsStatement.FindStringSubmatch(text); m != nil {
		return Statement{Relation: "parents_of", Names: atoms(m[1], m[2], m[3])}, true
	}
	if m := reChildren3.FindStringSubmatch(text); m != nil {
		return Statement{Relation: "children_of", Names: atoms(m[1], m[2], m[3], m[4])}, true
	}
	if m := reChildren2.FindStringSubmatch(text); m != nil {
		return Statement{Relation: "children_of", Names: atoms(m[1], m[2], m[3])}, true
	}
	if m := reSexStatement.FindStringSubmatch(text); m != nil {
		return Statement{Relation: m[2], Names: atoms(m[1])}, true
	}
	return Statement{}, false
}

// ParseQuestion parses a relationship question
func ParseQuestion(text string) (Question, bool) {
	text = normalize(text)

	if m := reAreParents.FindStringSubmatch(text); m != nil {
		return Question{Relation: "parents_of", Word: "parents",
			Names: atoms(m[1], m[2], m[3])}, true
	}
	if m := reAreChildren3.FindStringSubmatch(text); m != nil {
		return Question{Relation: "children_of", Word: "children",
			Names: atoms(m[1], m[2], m[3], m[4])}, true
	}
	if m := reAreChildren2.FindStringSubmatch(text); m != nil {
		return Question{Relation: "children_of", Word: "children",
			Names: atoms(m[1], m[2], m[3])}, true
	}
	if m := reIsQuestion.FindStringSubmatch(text); m != nil {
		rel := Closest(m[2])
		if rel == "" {
			return Question{}, false
		}
		return Question{Relation: rel, Word: m[2], Names: atoms(m[1], m[3])}, true
	}
	if m := reWhoQuestion.FindStringSubmatch(text); m != nil {
		rel := Closest(m[1])
		if rel == "" {
			return Question{}, false
		}
		return Question{Relation: rel, Word: m[1], Names: atoms(m[2]), Enumerate: true}, true
	}
	if m := reArePairQuestion.FindStringSubmatch(text); m != nil {
		rel := Closest(m[3])
		if rel != "sibling" && rel != "relative" {
			return Question{}, false
		}
		return Question{Relation: rel, Word: m[3], Names: atoms(m[1], m[2])}, true
	}
	if m := reSexQuestion.FindStringSubmatch(text); m != nil {
		return Question{Relation: m[2], Word: m[2], Names: atoms(m[1])}, true
	}
	return Question{}, false
}

// IsQuestion reports whether the input looks like a question
func IsQuestion(text string) bool {
	return strings.HasSuffix(strings.TrimSpace(text), "?")
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func atoms(names ...string) []kinlog.Atom {
	out := make([]kinlog.Atom, len(names))
	for i, n := range names {
		out[i] = kinlog.Atom(n)
	}
	return out
}
