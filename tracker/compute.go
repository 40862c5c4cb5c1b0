package tracker

import (
	"fmt"
	"sort"

	"github.com/trackmap-xyz/go-trackmap/rules"
	"github.com/trackmap-xyz/go-trackmap/snapshot"
)

// resetCache clears the cache triple as one unit and marks it stale.
func (t *Tracker) resetCache() {
	t.reached = make(map[string]bool)
	t.parents = make(map[string]PathStep)
	t.blocked = make(map[string]bool)
	t.valid = false
}

// Invalidate marks the cache stale. The reachable-set, path map, and
// blocked-set are discarded together; the next query or Recompute
// rebuilds all three.
func (t *Tracker) Invalidate() {
	t.resetCache()
	if t.phase != phaseComputing {
		t.phase = phaseIdle
	}
}

// Recompute derives the reachable set via the fixpoint of BFS passes
// interleaved with event-item collection. It is idempotent: a no-op
// when the cache is already valid, and a no-op for reentrant callers
// while a computation is in progress (they are served the last
// stabilized results).
//
// An evaluation failure in authoritative mode aborts the computation
// and leaves the cache stale; silent defaulting would corrupt the
// reachable set.
func (t *Tracker) Recompute() error {
	if t.phase == phaseComputing {
		return nil
	}
	if t.valid {
		return nil
	}

	t.phase = phaseComputing
	t.resetCache()

	ctx := rules.NewContext(liveState{t}, t.funcs, rules.Authoritative)
	starts := t.world.StartRegions(t.logger)

	// Both the reachable set and the granted-event set only grow within
	// one computation, so the pass count is bounded. Each grant round
	// costs two passes: the restart clears the reachable set, so the
	// next pass always re-adds regions, and one quiescent pass follows
	// before the next event scan. Same for the final round that grants
	// nothing.
	maxPasses := 2*(len(t.world.Regions)+len(t.world.EventLocations())) + 2

	for pass := 0; ; pass++ {
		if pass > maxPasses {
			t.failCompute(fmt.Errorf("%w after %d passes", ErrComputeDiverged, pass))
			return t.lastErr
		}

		added, err := t.bfsPass(ctx, starts)
		if err != nil {
			t.failCompute(err)
			return err
		}
		if added {
			continue
		}

		granted, err := t.collectEvents(ctx)
		if err != nil {
			t.failCompute(err)
			return err
		}
		if granted == 0 {
			break
		}

		// Event items re-open edges: restart the BFS with a cleared
		// reachable-set. Recorded spanning-tree paths are kept; the
		// first path found for a region stands for the cache lifetime.
		t.reached = make(map[string]bool)
	}

	t.stabilize()
	return nil
}

// bfsPass runs one full BFS pass from the start regions. It reports
// whether any region became reachable that was not reachable before the
// pass. The blocked-set is informational and rebuilt from scratch every
// pass.
func (t *Tracker) bfsPass(ctx *rules.Context, starts []string) (bool, error) {
	t.blocked = make(map[string]bool)
	passable := make(map[string]bool)
	visited := make(map[string]bool)
	added := false

	var queue []string
	for _, start := range starts {
		if _, ok := t.world.Regions[start]; !ok {
			continue
		}
		if !t.reached[start] {
			t.reached[start] = true
			added = true
		}
		queue = append(queue, start)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		region := t.world.Regions[current]
		for _, exit := range region.Exits {
			if _, ok := t.world.Regions[exit.Target]; !ok {
				// Dangling target: permanently blocked, never fatal.
				t.blocked[exit.Name] = true
				t.logger.Debug("exit targets unknown region",
					"exit", exit.Name, "target", exit.Target)
				continue
			}

			open := passable[exit.Name]
			if !open {
				var err error
				open, err = rules.EvalBool(exit.Rule, ctx)
				if err != nil {
					return false, fmt.Errorf("exit %q: %w", exit.Name, err)
				}
			}

			if !open {
				t.blocked[exit.Name] = true
				continue
			}

			passable[exit.Name] = true
			delete(t.blocked, exit.Name)

			if !t.reached[exit.Target] {
				t.reached[exit.Target] = true
				added = true
				if _, ok := t.parents[exit.Target]; !ok {
					t.parents[exit.Target] = PathStep{Via: exit.Name, From: current}
				}
			}
			if !visited[exit.Target] {
				queue = append(queue, exit.Target)
			}
		}
	}

	return added, nil
}

// collectEvents grants the synthetic capability of every accessible
// event location not yet represented in the inventory. Each grant
// happens exactly once per loaded ruleset state.
func (t *Tracker) collectEvents(ctx *rules.Context) (int, error) {
	granted := 0
	for _, loc := range t.world.EventLocations() {
		if t.items.Has(loc.Name) {
			continue
		}
		if !t.reached[loc.Region] {
			continue
		}
		open, err := rules.EvalBool(loc.Rule, ctx)
		if err != nil {
			return granted, fmt.Errorf("event location %q: %w", loc.Name, err)
		}
		if open {
			t.items.Set(loc.Name, 1)
			granted++
			t.logger.Debug("event capability granted", "location", loc.Name)
		}
	}
	return granted, nil
}

// stabilize marks the cache valid, retains the results for reentrant
// callers, and publishes a snapshot.
func (t *Tracker) stabilize() {
	t.valid = true
	t.lastErr = nil
	t.phase = phaseStable

	t.stableReached = t.reached
	t.stableParents = t.parents
	t.stableBlocked = t.blocked

	reachable := make([]string, 0, len(t.reached))
	for name := range t.reached {
		reachable = append(reachable, name)
	}
	sort.Strings(reachable)

	t.latest = snapshot.New(t.world.Name, t.items, t.flags, t.settings,
		reachable, t.world.Progression)
}

// failCompute records a computation failure and leaves the cache stale.
func (t *Tracker) failCompute(err error) {
	t.lastErr = err
	t.resetCache()
	t.phase = phaseIdle
	t.logger.Error("reachability computation failed", "err", err)
}
