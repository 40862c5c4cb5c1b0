package rules

import (
	"fmt"

	"github.com/trackmap-xyz/go-trackmap/inventory"
)

// Mode selects the evaluation contract.
type Mode int

const (
	// Authoritative evaluation assumes complete live data. Every leaf
	// must resolve; failures surface as errors, never as defaults.
	Authoritative Mode = iota

	// Partial evaluation runs against a possibly incomplete snapshot.
	// A leaf whose data is absent evaluates to Unknown.
	Partial
)

// State is the tracked state a rule is evaluated against. The live
// inventory and published snapshots both satisfy it.
type State interface {
	// ItemCount returns the direct count for a capability and whether
	// the capability is represented at all. Present-with-zero and
	// absent are distinct: only the latter is Unknown in partial mode.
	ItemCount(name string) (int, bool)

	// Progression returns the ruleset's progressive-unlock table.
	// May be nil when the ruleset defines none.
	Progression() inventory.ProgressionTable
}

// HelperFunc is a registry entry backing a HelperCall node. Entries must
// honor the context's mode: in authoritative mode they must never return
// Unknown.
type HelperFunc func(ctx *Context, args []any) (TriBool, error)

// Registry is a name-keyed table of helper functions, resolved once at
// ruleset load time.
type Registry map[string]HelperFunc

// Context carries the state, helper registry, and mode for one
// evaluation.
type Context struct {
	State State
	Funcs Registry
	Mode  Mode
}

// NewContext creates an evaluation context.
func NewContext(state State, funcs Registry, mode Mode) *Context {
	return &Context{State: state, Funcs: funcs, Mode: mode}
}

// Eval evaluates a rule tree in the given context.
//
// In authoritative mode the result is never Unknown; malformed nodes and
// unresolvable leaves return an error. In partial mode those degrade to
// Unknown and the error is nil.
func Eval(node Node, ctx *Context) (TriBool, error) {
	if node == nil {
		if ctx.Mode == Partial {
			return Unknown, nil
		}
		return False, ErrNilNode
	}

	switch n := node.(type) {
	case *Constant:
		return FromBool(n.Value), nil

	case *AllOf:
		// Short-circuit on the first False; Unknown seen earlier does
		// not mask it.
		result := True
		for _, child := range n.Children {
			v, err := Eval(child, ctx)
			if err != nil {
				return False, err
			}
			if v == False {
				return False, nil
			}
			result = result.And(v)
		}
		return result, nil

	case *AnyOf:
		result := False
		for _, child := range n.Children {
			v, err := Eval(child, ctx)
			if err != nil {
				return False, err
			}
			if v == True {
				return True, nil
			}
			result = result.Or(v)
		}
		return result, nil

	case *Negate:
		v, err := Eval(n.Child, ctx)
		if err != nil {
			return False, err
		}
		return v.Not(), nil

	case *ItemCheck:
		return evalItemCheck(n, ctx)

	case *HelperCall:
		fn, ok := ctx.Funcs[n.Name]
		if !ok {
			if ctx.Mode == Partial {
				return Unknown, nil
			}
			return False, fmt.Errorf("%w: %s", ErrUnknownHelper, n.Name)
		}
		return fn(ctx, n.Args)

	default:
		if ctx.Mode == Partial {
			return Unknown, nil
		}
		return False, fmt.Errorf("%w: %T", ErrUnknownNode, node)
	}
}

// evalItemCheck resolves a capability requirement against the context's
// state, consulting the progression table when the direct count falls
// short.
func evalItemCheck(n *ItemCheck, ctx *Context) (TriBool, error) {
	if ctx.State == nil {
		if ctx.Mode == Partial {
			return Unknown, nil
		}
		return False, fmt.Errorf("%w: item check %q", ErrNoState, n.Item)
	}

	required := n.Count
	if required < 1 {
		required = 1
	}

	direct, present := ctx.State.ItemCount(n.Item)
	if present && direct >= required {
		return True, nil
	}

	// A progression grant satisfies an implied count of 1.
	if pt := ctx.State.Progression(); pt != nil && required == 1 {
		for _, base := range pt.GrantedBy(n.Item) {
			count, ok := ctx.State.ItemCount(base)
			if ok && pt.Grants(base, count, n.Item) {
				return True, nil
			}
		}
	}

	if !present && ctx.Mode == Partial {
		return Unknown, nil
	}
	return False, nil
}

// EvalBool evaluates a rule in authoritative mode and collapses the
// result to a native bool. It is the evaluation entry point used by the
// reachability fixpoint.
func EvalBool(node Node, ctx *Context) (bool, error) {
	v, err := Eval(node, ctx)
	if err != nil {
		return false, err
	}
	return v == True, nil
}
