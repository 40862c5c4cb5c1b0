package tracker

import (
	"sort"

	"github.com/trackmap-xyz/go-trackmap/rules"
	"github.com/trackmap-xyz/go-trackmap/snapshot"
)

// ensure recomputes first when the cache is stale. Reentrant callers
// (rules consulting reachability mid-computation) skip straight to the
// last stabilized results.
func (t *Tracker) ensure() {
	if t.phase == phaseComputing || t.valid {
		return
	}
	// Recompute already logged and recorded the error; queries degrade
	// to the empty cache rather than guessing.
	_ = t.Recompute()
}

// reachedSet returns the cache the caller may read: the live cache when
// stable, the last stabilized one during a computation.
func (t *Tracker) reachedSet() map[string]bool {
	if t.phase == phaseComputing {
		return t.stableReached
	}
	return t.reached
}

func (t *Tracker) parentMap() map[string]PathStep {
	if t.phase == phaseComputing {
		return t.stableParents
	}
	return t.parents
}

func (t *Tracker) blockedSet() map[string]bool {
	if t.phase == phaseComputing {
		return t.stableBlocked
	}
	return t.blocked
}

// IsRegionReachable reports whether a region is currently reachable,
// recomputing first if the cache is stale.
func (t *Tracker) IsRegionReachable(name string) bool {
	t.ensure()
	return t.reachedSet()[name]
}

// IsLocationAccessible reports whether a location's region is reachable
// and its own rule holds in authoritative mode.
func (t *Tracker) IsLocationAccessible(name string) bool {
	loc := t.world.Location(name)
	if loc == nil {
		t.logger.Warn("accessibility query for unknown location", "location", name)
		return false
	}
	if !t.IsRegionReachable(loc.Region) {
		return false
	}
	ctx := rules.NewContext(liveState{t}, t.funcs, rules.Authoritative)
	open, err := rules.EvalBool(loc.Rule, ctx)
	if err != nil {
		t.lastErr = err
		t.logger.Error("location rule evaluation failed", "location", name, "err", err)
		return false
	}
	return open
}

// PathTo reconstructs the recorded path to a region from the
// spanning-tree map: an ordered list of hops whose first entry is a
// start region and whose last is the target. Returns nil when the
// region is unreachable. The path is the first one discovered, not
// necessarily the shortest.
func (t *Tracker) PathTo(name string) []PathEntry {
	t.ensure()
	reached := t.reachedSet()
	parents := t.parentMap()

	if !reached[name] {
		return nil
	}

	var reversed []PathEntry
	current := name
	for {
		step, ok := parents[current]
		if !ok {
			reversed = append(reversed, PathEntry{Region: current})
			break
		}
		reversed = append(reversed, PathEntry{Region: current, Entrance: step.Via})
		current = step.From
	}

	path := make([]PathEntry, len(reversed))
	for i, entry := range reversed {
		path[len(reversed)-1-i] = entry
	}
	return path
}

// ReachableRegions returns the sorted reachable-region names.
func (t *Tracker) ReachableRegions() []string {
	t.ensure()
	reached := t.reachedSet()
	names := make([]string, 0, len(reached))
	for name := range reached {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BlockedExits returns the sorted names of exits whose rule failed in
// the final BFS pass. Diagnostic only.
func (t *Tracker) BlockedExits() []string {
	t.ensure()
	blocked := t.blockedSet()
	names := make([]string, 0, len(blocked))
	for name := range blocked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AccessibleLocations returns the sorted names of every non-event
// location currently accessible.
func (t *Tracker) AccessibleLocations() []string {
	t.ensure()
	var names []string
	for _, rname := range t.world.RegionNames() {
		for _, loc := range t.world.Regions[rname].Locations {
			if !loc.IsEvent && t.IsLocationAccessible(loc.Name) {
				names = append(names, loc.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the latest published snapshot, recomputing first if
// the cache is stale. Snapshots are only ever published at stabilization,
// so a consumer can never observe a mid-computation reachable set.
func (t *Tracker) Snapshot() *snapshot.Snapshot {
	t.ensure()
	return t.latest
}
