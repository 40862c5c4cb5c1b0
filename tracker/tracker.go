// Package tracker implements the reachability fixpoint resolver: the
// live, mutable side of the system that owns the inventory, derives the
// reachable-region set from the world graph, and publishes immutable
// snapshots once each computation stabilizes.
//
// A Tracker is single-owner: exactly one execution context performs
// mutation and recomputation. The reentrancy guard exists so that rules
// calling back into reachability queries during a computation observe
// the last stabilized answer instead of recursing; it is not a general
// lock.
package tracker

import (
	"log/slog"

	"github.com/trackmap-xyz/go-trackmap/inventory"
	"github.com/trackmap-xyz/go-trackmap/rules"
	"github.com/trackmap-xyz/go-trackmap/snapshot"
	"github.com/trackmap-xyz/go-trackmap/world"
)

type phase int

const (
	phaseIdle phase = iota // cache stale, no computation running
	phaseComputing
	phaseStable
)

// PathStep is a spanning-tree parent pointer: the region was first
// reached from From through the exit named Via.
type PathStep struct {
	Via  string
	From string
}

// PathEntry is one hop of a reconstructed path. Entrance is empty for
// the starting region.
type PathEntry struct {
	Region   string `json:"region"`
	Entrance string `json:"entrance,omitempty"`
}

// Journal receives a record of every explicit state mutation. The
// eventlog package provides a JSONL-backed implementation.
type Journal interface {
	Record(kind, name string, count int) error
}

// Tracker owns the live tracked state and the reachability cache.
type Tracker struct {
	world    *world.World
	funcs    rules.Registry
	logger   *slog.Logger
	journal  Journal
	settings map[string]string

	items inventory.Inventory
	flags map[string]bool

	// Cache triple plus validity flag. Invalidated and rebuilt as one
	// unit; parents additionally survive event-triggered restarts
	// within a computation.
	reached map[string]bool
	parents map[string]PathStep
	blocked map[string]bool
	valid   bool

	phase phase

	// Last stabilized results, served to reentrant callers.
	stableReached map[string]bool
	stableParents map[string]PathStep
	stableBlocked map[string]bool

	latest     *snapshot.Snapshot
	batchDepth int
	lastErr    error
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// WithJournal records every explicit mutation to a journal.
func WithJournal(j Journal) Option {
	return func(t *Tracker) { t.journal = j }
}

// WithSettings seeds the opaque settings map copied into snapshots.
func WithSettings(settings map[string]string) Option {
	return func(t *Tracker) {
		for k, v := range settings {
			t.settings[k] = v
		}
	}
}

// New creates a tracker for a loaded world and helper registry.
func New(w *world.World, funcs rules.Registry, opts ...Option) *Tracker {
	t := &Tracker{
		world:    w,
		funcs:    funcs,
		logger:   slog.Default(),
		settings: make(map[string]string),
		items:    inventory.New(),
		flags:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.resetCache()
	return t
}

// World returns the loaded region graph.
func (t *Tracker) World() *world.World {
	return t.world
}

// Items returns a copy of the live inventory.
func (t *Tracker) Items() inventory.Inventory {
	return t.items.Copy()
}

// Err returns the error from the most recent computation, if any.
// Rule evaluation failures in authoritative mode are defects; queries
// log and remember them rather than guessing.
func (t *Tracker) Err() error {
	return t.lastErr
}

// liveState adapts the live inventory and flags to rules.State. Flags
// behave as capabilities with count 1 when set and 0 when cleared.
type liveState struct {
	t *Tracker
}

func (s liveState) ItemCount(name string) (int, bool) {
	if count, ok := s.t.items[name]; ok {
		return count, true
	}
	if set, ok := s.t.flags[name]; ok {
		if set {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (s liveState) Progression() inventory.ProgressionTable {
	return s.t.world.Progression
}

// SetSetting records an opaque setting copied into future snapshots.
func (t *Tracker) SetSetting(key, value string) {
	t.settings[key] = value
}

// RegionHelper returns a helper function that reports whether a region
// is reachable. Rules using it are self-referential: reachability
// depends on rules while the rule consults reachability. The fixpoint
// iteration plus the reentrancy guard resolve this — during a
// computation the helper sees the last stabilized reachable set.
func RegionHelper(t *Tracker) rules.HelperFunc {
	return func(ctx *rules.Context, args []any) (rules.TriBool, error) {
		if len(args) != 1 {
			if ctx.Mode == rules.Partial {
				return rules.Unknown, nil
			}
			return rules.False, &BadHelperArgsError{Helper: "reachable", Args: args}
		}
		name, ok := args[0].(string)
		if !ok {
			if ctx.Mode == rules.Partial {
				return rules.Unknown, nil
			}
			return rules.False, &BadHelperArgsError{Helper: "reachable", Args: args}
		}
		if ctx.Mode == rules.Partial {
			if s, ok := ctx.State.(*snapshot.Snapshot); ok {
				return rules.FromBool(s.RegionReachable(name)), nil
			}
			return rules.Unknown, nil
		}
		return rules.FromBool(t.IsRegionReachable(name)), nil
	}
}
