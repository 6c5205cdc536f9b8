package kinlog

import "errors"

// Sentinel errors shared across the engine
// Callers wrap these with fmt.Errorf("...: %w", err) for context
var (
	// ErrInvalidFact reports a malformed assertion or retraction input:
	// unknown base relation, wrong arity, or an empty atom
	ErrInvalidFact = errors.New("invalid fact")

	// ErrUnknownRelation reports a query or rule body naming a relation
	// that is neither a base relation nor a defined derived relation
	ErrUnknownRelation = errors.New("unknown relation")

	// ErrMalformedRule reports a rule rejected at load time, e.g. an
	// inequality constraint over a variable no earlier pattern binds
	ErrMalformedRule = errors.New("malformed rule")

	// ErrNotFound reports retraction of a fact that is not in the store
	ErrNotFound = errors.New("fact not found")
)
