package world

import (
	"fmt"

	"github.com/trackmap-xyz/go-trackmap/rules"
)

// Builder provides a fluent API for constructing worlds. Exits and
// locations attach to the most recently declared region.
//
// Example:
//
//	w := world.Build("light-world").
//	    Region("Start").
//	    ExitTo("Mid", rules.Item("Key")).
//	    EventLocation("Trigger", rules.Const(true)).
//	    Region("Mid").
//	    ExitTo("End", rules.Const(true)).
//	    Location("Chest", rules.Item("Lamp")).
//	    Start("Start").
//	    Done()
type Builder struct {
	w       *World
	current string
}

// Build creates a new Builder for constructing a world.
func Build(name string) *Builder {
	return &Builder{w: New(name)}
}

// Region declares a region and makes it current.
func (b *Builder) Region(name string) *Builder {
	b.w.AddRegion(name)
	b.current = name
	return b
}

// ExitTo adds a gated exit from the current region to target. The exit
// name defaults to "From->Target".
func (b *Builder) ExitTo(target string, rule rules.Node) *Builder {
	return b.Exit(fmt.Sprintf("%s->%s", b.current, target), target, rule)
}

// Exit adds a gated exit from the current region with an explicit name.
func (b *Builder) Exit(name, target string, rule rules.Node) *Builder {
	b.w.AddExit(b.current, name, target, rule)
	return b
}

// Location adds a gated location to the current region.
func (b *Builder) Location(name string, rule rules.Node) *Builder {
	b.w.AddLocation(b.current, name, rule, false)
	return b
}

// EventLocation adds a gated event location to the current region.
func (b *Builder) EventLocation(name string, rule rules.Node) *Builder {
	b.w.AddLocation(b.current, name, rule, true)
	return b
}

// Start appends to the explicit start-region list.
func (b *Builder) Start(names ...string) *Builder {
	b.w.Starts = append(b.w.Starts, names...)
	return b
}

// Progression adds a progressive-unlock tier for a base item.
func (b *Builder) Progression(base string, threshold int, grants ...string) *Builder {
	b.w.Progression.AddTier(base, threshold, grants...)
	return b
}

// Group assigns items to a named group.
func (b *Builder) Group(name string, items ...string) *Builder {
	b.w.Groups[name] = append(b.w.Groups[name], items...)
	return b
}

// Done returns the completed world.
func (b *Builder) Done() *World {
	return b.w
}
