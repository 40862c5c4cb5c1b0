package rules

import "errors"

var (
	// ErrNilNode is returned when evaluation reaches a nil rule node.
	ErrNilNode = errors.New("rules: nil rule node")

	// ErrUnknownNode is returned in authoritative mode for a node type
	// the evaluator does not recognize.
	ErrUnknownNode = errors.New("rules: unknown rule node type")

	// ErrUnknownHelper is returned in authoritative mode when a helper
	// name has no registry entry.
	ErrUnknownHelper = errors.New("rules: helper not registered")

	// ErrNoState is returned in authoritative mode when the context has
	// no state to resolve item checks against.
	ErrNoState = errors.New("rules: context has no state")
)
