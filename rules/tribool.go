// Package rules implements the gating condition language: a tagged
// boolean expression tree evaluated against tracked state with
// three-valued (Kleene) semantics.
//
// Rules are evaluated in one of two modes. Authoritative mode assumes
// complete live data and never yields Unknown; an unresolvable leaf is a
// defect surfaced as an error. Partial mode evaluates against a possibly
// incomplete snapshot and degrades missing data to Unknown.
package rules

// TriBool is a three-valued boolean: False, Unknown, or True.
type TriBool int

const (
	False TriBool = iota
	Unknown
	True
)

// FromBool converts a native bool to a TriBool.
func FromBool(b bool) TriBool {
	if b {
		return True
	}
	return False
}

// And returns the Kleene conjunction of t and other.
// False dominates Unknown: And(False, Unknown) == False.
func (t TriBool) And(other TriBool) TriBool {
	if t == False || other == False {
		return False
	}
	if t == Unknown || other == Unknown {
		return Unknown
	}
	return True
}

// Or returns the Kleene disjunction of t and other.
// True dominates Unknown: Or(True, Unknown) == True.
func (t TriBool) Or(other TriBool) TriBool {
	if t == True || other == True {
		return True
	}
	if t == Unknown || other == Unknown {
		return Unknown
	}
	return False
}

// Not returns the Kleene negation: True and False swap, Unknown stays.
func (t TriBool) Not() TriBool {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// IsTrue reports whether t is definitely True.
func (t TriBool) IsTrue() bool {
	return t == True
}

// IsFalse reports whether t is definitely False.
func (t TriBool) IsFalse() bool {
	return t == False
}

// String returns a human-readable representation.
func (t TriBool) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
