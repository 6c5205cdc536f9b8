package solver

import (
	"strconv"
	"strings"

	"github.com/wbrown/kinlog/kinlog"
)

// goalPath is the chain of goals currently being proved on one
// derivation path. It is an immutable parent-linked list: sibling
// branches extend their own chains and never observe each other,
// so backtracking needs no bookkeeping
//
// If a goal recurs on its own path (same relation, same argument tuple
// up to renaming of unbound variables), that branch fails immediately.
// This is what keeps resolution terminating on cyclic parent data;
// well-formed family trees never trip it
type goalPath struct {
	key    string
	parent *goalPath
}

func (p *goalPath) contains(key string) bool {
	for ; p != nil; p = p.parent {
		if p.key == key {
			return true
		}
	}
	return false
}

// goalKey canonicalizes a goal under the current substitution: bound
// positions by their atom value, unbound variables by first-occurrence
// index. Fresh renaming gives recursive rule applications new variable
// names, so keying unbound positions by name would never repeat; the
// positional form makes a recurring goal recognizable
func goalKey(relation string, args []kinlog.Term, bind kinlog.Bindings) string {
	var sb strings.Builder
	sb.WriteString(relation)

	unbound := make(map[kinlog.Symbol]int)
	for _, arg := range args {
		sb.WriteByte(0)
		switch t := bind.Walk(arg).(type) {
		case kinlog.Atom:
			sb.WriteByte('a')
			sb.WriteString(string(t))
		case kinlog.Variable:
			idx, ok := unbound[t.Name]
			if !ok {
				idx = len(unbound)
				unbound[t.Name] = idx
			}
			sb.WriteByte('_')
			sb.WriteString(strconv.Itoa(idx))
		}
	}
	return sb.String()
}
