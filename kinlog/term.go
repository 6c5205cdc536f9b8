package kinlog

// Symbol represents a variable name in a rule or query (e.g., ?x)
type Symbol string

// IsVariable returns true if this is a variable symbol (starts with ?)
func (s Symbol) IsVariable() bool {
	return len(s) > 0 && s[0] == '?'
}

// String returns the string representation
func (s Symbol) String() string {
	return string(s)
}

// Term is an argument position in a pattern or query
// It is either a Variable or a concrete Atom
type Term interface {
	IsVariable() bool
	String() string
}

// Variable represents a logic variable (e.g., ?x)
type Variable struct {
	Name Symbol
}

func (v Variable) IsVariable() bool { return true }
func (v Variable) String() string   { return v.Name.String() }

// Var is a convenience constructor for a Variable
func Var(name string) Variable {
	return Variable{Name: Symbol(name)}
}

// Atom is an opaque individual identifier (a name)
// Atoms have no attributes beyond identity; equality is by value
type Atom string

func (a Atom) IsVariable() bool { return false }
func (a Atom) String() string   { return string(a) }
