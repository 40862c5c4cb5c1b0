package rules

import (
	"fmt"
	"strings"
)

// Node is a node in a rule expression tree. Trees are built once at
// ruleset load time and never mutated afterwards.
type Node interface {
	node()
	String() string
}

// AllOf is a conjunction over child rules. An empty AllOf is true.
type AllOf struct {
	Children []Node
}

// AnyOf is a disjunction over child rules. An empty AnyOf is false.
type AnyOf struct {
	Children []Node
}

// Negate inverts its child rule.
type Negate struct {
	Child Node
}

// ItemCheck requires the effective count of a capability to be at least
// Count. Progressive-unlock grants satisfy an implied count of 1.
type ItemCheck struct {
	Item  string
	Count int
}

// HelperCall dispatches to a named entry in the helper registry.
type HelperCall struct {
	Name string
	Args []any
}

// Constant is a literal true or false.
type Constant struct {
	Value bool
}

func (*AllOf) node()      {}
func (*AnyOf) node()      {}
func (*Negate) node()     {}
func (*ItemCheck) node()  {}
func (*HelperCall) node() {}
func (*Constant) node()   {}

// All builds a conjunction.
func All(children ...Node) *AllOf { return &AllOf{Children: children} }

// Any builds a disjunction.
func Any(children ...Node) *AnyOf { return &AnyOf{Children: children} }

// Not builds a negation.
func Not(child Node) *Negate { return &Negate{Child: child} }

// Item builds a capability check requiring at least one copy.
func Item(name string) *ItemCheck { return &ItemCheck{Item: name, Count: 1} }

// ItemN builds a capability check requiring at least count copies.
func ItemN(name string, count int) *ItemCheck { return &ItemCheck{Item: name, Count: count} }

// Helper builds a registry call.
func Helper(name string, args ...any) *HelperCall { return &HelperCall{Name: name, Args: args} }

// Const builds a literal.
func Const(v bool) *Constant { return &Constant{Value: v} }

func (n *AllOf) String() string {
	return joinChildren("all", n.Children)
}

func (n *AnyOf) String() string {
	return joinChildren("any", n.Children)
}

func (n *Negate) String() string {
	return fmt.Sprintf("not(%s)", n.Child)
}

func (n *ItemCheck) String() string {
	if n.Count <= 1 {
		return fmt.Sprintf("item(%s)", n.Item)
	}
	return fmt.Sprintf("item(%s, %d)", n.Item, n.Count)
}

func (n *HelperCall) String() string {
	if len(n.Args) == 0 {
		return fmt.Sprintf("helper(%s)", n.Name)
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("helper(%s, %s)", n.Name, strings.Join(parts, ", "))
}

func (n *Constant) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

func joinChildren(tag string, children []Node) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)", tag, strings.Join(parts, ", "))
}
