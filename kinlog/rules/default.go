package rules

import "github.com/wbrown/kinlog/kinlog"

// Shorthand for rule construction
func v(name string) kinlog.Term { return kinlog.Var(name) }

func pat(relation string, args ...kinlog.Term) Pattern {
	return Pattern{Relation: relation, Args: args}
}

func neq(x, y kinlog.Term) Distinct { return Distinct{X: x, Y: y} }

func rule(head Pattern, body ...Goal) Rule {
	return Rule{Head: head, Body: body}
}

// Default returns the fixed kinship rule set
//
// All relations are blood-only: uncle and aunt come strictly from a
// sibling of a parent, never from marriage, and nothing here models
// spouses or step-relations. Sibling requires one shared parent, so
// half-siblings qualify. parents_of requires two distinct parents but
// says nothing about their sexes
//
// The set is validated at init; a mistake here is a programming error,
// so Default panics rather than returning one
func Default() *RuleSet {
	rs, err := New(defaultRules())
	if err != nil {
		panic(err)
	}
	return rs
}

func defaultRules() []Rule {
	return []Rule{
		// Parents
		rule(pat("father", v("?f"), v("?c")),
			pat(kinlog.RelParent, v("?f"), v("?c")),
			pat(kinlog.RelMale, v("?f"))),
		rule(pat("mother", v("?m"), v("?c")),
			pat(kinlog.RelParent, v("?m"), v("?c")),
			pat(kinlog.RelFemale, v("?m"))),

		// Children
		rule(pat("child", v("?c"), v("?p")),
			pat(kinlog.RelParent, v("?p"), v("?c"))),
		rule(pat("son", v("?s"), v("?p")),
			pat("child", v("?s"), v("?p")),
			pat(kinlog.RelMale, v("?s"))),
		rule(pat("daughter", v("?d"), v("?p")),
			pat("child", v("?d"), v("?p")),
			pat(kinlog.RelFemale, v("?d"))),

		// Siblings: one shared parent suffices, so half-siblings count;
		// the explicit inequality is what rules out X = X
		rule(pat("sibling", v("?x"), v("?y")),
			pat(kinlog.RelParent, v("?p"), v("?x")),
			pat(kinlog.RelParent, v("?p"), v("?y")),
			neq(v("?x"), v("?y"))),
		rule(pat("brother", v("?b"), v("?s")),
			pat("sibling", v("?b"), v("?s")),
			pat(kinlog.RelMale, v("?b"))),
		rule(pat("sister", v("?s"), v("?sib")),
			pat("sibling", v("?s"), v("?sib")),
			pat(kinlog.RelFemale, v("?s"))),

		// Grandparents
		rule(pat("grandparent", v("?gp"), v("?c")),
			pat(kinlog.RelParent, v("?gp"), v("?p")),
			pat(kinlog.RelParent, v("?p"), v("?c"))),
		rule(pat("grandfather", v("?gf"), v("?c")),
			pat("grandparent", v("?gf"), v("?c")),
			pat(kinlog.RelMale, v("?gf"))),
		rule(pat("grandmother", v("?gm"), v("?c")),
			pat("grandparent", v("?gm"), v("?c")),
			pat(kinlog.RelFemale, v("?gm"))),

		// Ancestors: direct parent step, or parent of an ancestor
		rule(pat("ancestor", v("?a"), v("?d")),
			pat(kinlog.RelParent, v("?a"), v("?d"))),
		rule(pat("ancestor", v("?a"), v("?d")),
			pat(kinlog.RelParent, v("?a"), v("?x")),
			pat("ancestor", v("?x"), v("?d"))),
		rule(pat("descendant", v("?d"), v("?a")),
			pat("ancestor", v("?a"), v("?d"))),

		// Uncles and aunts, by blood only
		rule(pat("uncle", v("?u"), v("?n")),
			pat(kinlog.RelParent, v("?p"), v("?n")),
			pat("sibling", v("?u"), v("?p")),
			pat(kinlog.RelMale, v("?u"))),
		rule(pat("aunt", v("?a"), v("?n")),
			pat(kinlog.RelParent, v("?p"), v("?n")),
			pat("sibling", v("?a"), v("?p")),
			pat(kinlog.RelFemale, v("?a"))),

		// Two distinct parents of the same child
		rule(pat("parents_of", v("?p1"), v("?p2"), v("?c")),
			pat(kinlog.RelParent, v("?p1"), v("?c")),
			pat(kinlog.RelParent, v("?p2"), v("?c")),
			neq(v("?p1"), v("?p2"))),

		// Relatives: one an ancestor of the other, or a shared ancestor,
		// or a shared descendant. Each alternative is its own rule, so
		// the common-ancestor variable is fresh per branch and never
		// escapes into an answer. The inequality runs last, when both
		// sides are ground (ancestor can reach ?r1 = ?r2 on cyclic data)
		rule(pat("relative", v("?r1"), v("?r2")),
			pat("ancestor", v("?r1"), v("?r2")),
			neq(v("?r1"), v("?r2"))),
		rule(pat("relative", v("?r1"), v("?r2")),
			pat("ancestor", v("?r2"), v("?r1")),
			neq(v("?r1"), v("?r2"))),
		rule(pat("relative", v("?r1"), v("?r2")),
			pat("ancestor", v("?x"), v("?r1")),
			pat("ancestor", v("?x"), v("?r2")),
			neq(v("?r1"), v("?r2"))),
		rule(pat("relative", v("?r1"), v("?r2")),
			pat("ancestor", v("?r1"), v("?x")),
			pat("ancestor", v("?r2"), v("?x")),
			neq(v("?r1"), v("?r2"))),
	}
}
