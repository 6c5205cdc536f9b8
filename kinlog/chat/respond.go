package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wbrown/kinlog/kinlog"
	"github.com/wbrown/kinlog/kinlog/family"
)

const (
	replyLearned      = "OK! I learned something."
	replyImpossible   = "That's impossible!"
	replyYes          = "Yes!"
	replyNo           = "No!"
	replyBadStatement = "I don't understand that statement format. Please try a different way of expressing the relationship."
	replyBadQuestion  = "I don't understand that question format. Please try a different way of asking."
)

// Respond processes one line of user input against the knowledge base
// and returns the chatbot's reply
func Respond(kb *family.KB, input string) string {
	if IsQuestion(input) {
		q, ok := ParseQuestion(input)
		if !ok {
			return replyBadQuestion
		}
		reply, err := Answer(kb, q)
		if err != nil {
			return fmt.Sprintf("Something went wrong: %v", err)
		}
		return reply
	}

	st, ok := ParseStatement(input)
	if !ok {
		return replyBadStatement
	}
	return Apply(kb, st)
}

// Apply records a parsed statement in the knowledge base
func Apply(kb *family.KB, st Statement) string {
	err := kb.Assert(st.Relation, st.Names...)
	switch {
	case err == nil:
		return replyLearned
	case errors.Is(err, family.ErrImpossible):
		return replyImpossible
	default:
		return fmt.Sprintf("I can't record that: %v", err)
	}
}

// Answer resolves a parsed question and phrases the result
func Answer(kb *family.KB, q Question) (string, error) {
	switch {
	case q.Relation == "male" || q.Relation == "female":
		ok, err := kb.Ask(q.Relation, q.Names[0])
		return yesNo(ok), err

	case q.Relation == "parents_of":
		ok, err := kb.Ask("parents_of", q.Names[0], q.Names[1], q.Names[2])
		return yesNo(ok), err

	case q.Relation == "children_of":
		// "Are A, B and C children of P?" confirms each child
		// individually: all "Yes!", some "Only ...", none "No!"
		children, parent := q.Names[:len(q.Names)-1], q.Names[len(q.Names)-1]
		var confirmed []kinlog.Atom
		for _, c := range children {
			ok, err := kb.Ask("child", c, parent)
			if err != nil {
				return "", err
			}
			if ok {
				confirmed = append(confirmed, c)
			}
		}
		switch {
		case len(confirmed) == len(children):
			return replyYes, nil
		case len(confirmed) > 0:
			return "Only " + joinNames(confirmed), nil
		default:
			return replyNo, nil
		}

	case q.Enumerate:
		found, err := kb.Who(q.Relation, q.Names[0])
		if err != nil {
			return "", err
		}
		if len(found) == 0 {
			return fmt.Sprintf("%s has no %s.", title(q.Names[0]), q.Word), nil
		}
		verb := "is"
		if len(found) > 1 {
			verb = "are"
		}
		return fmt.Sprintf("The %s of %s %s %s.",
			q.Word, title(q.Names[0]), verb, joinNames(found)), nil

	default:
		ok, err := kb.Ask(q.Relation, q.Names...)
		return yesNo(ok), err
	}
}

func yesNo(ok bool) string {
	if ok {
		return replyYes
	}
	return replyNo
}

// joinNames renders a name list as "A", "A and B", or "A, B, and C"
func joinNames(names []kinlog.Atom) string {
	titled := make([]string, len(names))
	for i, n := range names {
		titled[i] = title(n)
	}
	switch len(titled) {
	case 1:
		return titled[0]
	case 2:
		return titled[0] + " and " + titled[1]
	default:
		return strings.Join(titled[:len(titled)-1], ", ") + ", and " + titled[len(titled)-1]
	}
}

func title(name kinlog.Atom) string {
	s := string(name)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
