package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trackmap-xyz/go-trackmap/inventory"
	"github.com/trackmap-xyz/go-trackmap/rules"
	"github.com/trackmap-xyz/go-trackmap/tracker"
	"github.com/trackmap-xyz/go-trackmap/world"
)

// itemFlags collects repeatable --item flags of the form "Name" or
// "Name:count".
type itemFlags []itemSpec

type itemSpec struct {
	name  string
	count int
}

func (f *itemFlags) String() string {
	parts := make([]string, len(*f))
	for i, spec := range *f {
		parts[i] = fmt.Sprintf("%s:%d", spec.name, spec.count)
	}
	return strings.Join(parts, ",")
}

func (f *itemFlags) Set(value string) error {
	name := value
	count := 1
	if idx := strings.LastIndex(value, ":"); idx >= 0 {
		n, err := strconv.Atoi(value[idx+1:])
		if err != nil {
			return fmt.Errorf("bad item spec %q (want Name or Name:count)", value)
		}
		name = value[:idx]
		count = n
	}
	if name == "" {
		return fmt.Errorf("bad item spec %q: empty name", value)
	}
	*f = append(*f, itemSpec{name: name, count: count})
	return nil
}

// flagFlags collects repeatable --flag flags.
type flagFlags []string

func (f *flagFlags) String() string {
	return strings.Join(*f, ",")
}

func (f *flagFlags) Set(value string) error {
	if value == "" {
		return fmt.Errorf("empty flag name")
	}
	*f = append(*f, value)
	return nil
}

// newTracker builds a tracker over a loaded world with the built-in
// helper registry and applies the given state as one batch.
//
// The registry map is shared with the tracker's evaluation context, so
// helpers that close over the tracker can be registered after
// construction. Per-game predicate libraries plug in the same way; the
// CLI ships only the reachability helper.
func newTracker(w *world.World, items itemFlags, flags flagFlags) (*tracker.Tracker, error) {
	funcs := make(rules.Registry)
	t := tracker.New(w, funcs)
	funcs["reachable"] = tracker.RegionHelper(t)

	t.BeginBatch()
	for _, spec := range items {
		if err := t.AddCapabilityCount(spec.name, spec.count); err != nil {
			return nil, err
		}
	}
	for _, name := range flags {
		if err := t.SetFlag(name); err != nil {
			return nil, err
		}
	}
	if err := t.CommitBatch(false); err != nil {
		return nil, err
	}
	if err := t.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// restoreTracker rebuilds a tracker from persisted state.
func restoreTracker(w *world.World, items inventory.Inventory, flagValues map[string]bool) (*tracker.Tracker, error) {
	funcs := make(rules.Registry)
	t := tracker.New(w, funcs)
	funcs["reachable"] = tracker.RegionHelper(t)

	t.BeginBatch()
	for _, name := range items.SortedKeys() {
		if err := t.AddCapabilityCount(name, items[name]); err != nil {
			return nil, err
		}
	}
	for name, value := range flagValues {
		var err error
		if value {
			err = t.SetFlag(name)
		} else {
			err = t.ClearFlag(name)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := t.CommitBatch(false); err != nil {
		return nil, err
	}
	if err := t.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
