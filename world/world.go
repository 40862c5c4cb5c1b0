// Package world implements the static region graph: named regions
// connected by rule-gated exits, each holding rule-gated locations.
// A world is built once when a ruleset document loads and is immutable
// for the lifetime of that ruleset.
package world

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sort"

	"github.com/trackmap-xyz/go-trackmap/inventory"
	"github.com/trackmap-xyz/go-trackmap/rules"
)

// Region is a node in the traversal graph.
type Region struct {
	Name      string
	Exits     []*Exit
	Locations []*Location
}

// Exit is a directed, rule-gated edge between two regions. The name is
// the edge identity used for per-pass memoization and blocked-exit
// diagnostics.
type Exit struct {
	Name   string
	From   string
	Target string
	Rule   rules.Node
}

// Location is a point of interest within a region. An event location's
// item is synthetic: once the location is accessible its name is granted
// to the inventory as a capability, exactly once per computation.
type Location struct {
	Name    string
	Region  string
	Rule    rules.Node
	IsEvent bool
}

// World is the complete static graph plus the ruleset's item metadata.
type World struct {
	Name        string
	Regions     map[string]*Region
	Starts      []string
	Progression inventory.ProgressionTable
	Groups      map[string][]string

	regionOrder []string // declaration order, drives deterministic BFS
}

// New creates an empty world.
func New(name string) *World {
	return &World{
		Name:        name,
		Regions:     make(map[string]*Region),
		Progression: inventory.NewProgressionTable(),
		Groups:      make(map[string][]string),
	}
}

// AddRegion adds a region, preserving declaration order.
func (w *World) AddRegion(name string) *Region {
	if r, ok := w.Regions[name]; ok {
		return r
	}
	r := &Region{Name: name}
	w.Regions[name] = r
	w.regionOrder = append(w.regionOrder, name)
	return r
}

// AddExit adds a gated edge from one region to another. The source
// region is created if needed; the target may be declared later.
func (w *World) AddExit(from, name, target string, rule rules.Node) *Exit {
	r := w.AddRegion(from)
	e := &Exit{Name: name, From: from, Target: target, Rule: rule}
	r.Exits = append(r.Exits, e)
	return e
}

// AddLocation adds a gated location to a region.
func (w *World) AddLocation(region, name string, rule rules.Node, isEvent bool) *Location {
	r := w.AddRegion(region)
	loc := &Location{Name: name, Region: region, Rule: rule, IsEvent: isEvent}
	r.Locations = append(r.Locations, loc)
	return loc
}

// RegionNames returns region names in declaration order.
func (w *World) RegionNames() []string {
	return append([]string(nil), w.regionOrder...)
}

// Region returns a region by name, or nil.
func (w *World) Region(name string) *Region {
	return w.Regions[name]
}

// Location returns a location by name, or nil. Location names are
// unique across the world.
func (w *World) Location(name string) *Location {
	for _, rname := range w.regionOrder {
		for _, loc := range w.Regions[rname].Locations {
			if loc.Name == name {
				return loc
			}
		}
	}
	return nil
}

// EventLocations returns every location with the event flag, in
// declaration order.
func (w *World) EventLocations() []*Location {
	var events []*Location
	for _, rname := range w.regionOrder {
		for _, loc := range w.Regions[rname].Locations {
			if loc.IsEvent {
				events = append(events, loc)
			}
		}
	}
	return events
}

// StartRegions resolves the BFS start set: the explicit list from the
// ruleset when present, otherwise every region with zero static
// in-degree, otherwise the lexicographically smallest region (with a
// diagnostic, since a graph with no evident entry point usually means a
// ruleset authoring mistake).
func (w *World) StartRegions(logger *slog.Logger) []string {
	if len(w.Starts) > 0 {
		return append([]string(nil), w.Starts...)
	}

	inDegree := make(map[string]int, len(w.Regions))
	for _, rname := range w.regionOrder {
		for _, exit := range w.Regions[rname].Exits {
			inDegree[exit.Target]++
		}
	}
	var roots []string
	for _, rname := range w.regionOrder {
		if inDegree[rname] == 0 {
			roots = append(roots, rname)
		}
	}
	if len(roots) > 0 {
		return roots
	}

	if len(w.regionOrder) == 0 {
		return nil
	}
	sorted := append([]string(nil), w.regionOrder...)
	sort.Strings(sorted)
	if logger != nil {
		logger.Warn("no start regions declared and no zero in-degree region; falling back",
			"region", sorted[0])
	}
	return sorted[:1]
}

// Validate checks structural integrity: duplicate region, exit, and
// location names, and exits whose target region does not exist.
// Dangling exits are reported but are not load failures; the resolver
// treats them as permanently blocked.
func (w *World) Validate() []error {
	var errs []error

	exitNames := make(map[string]bool)
	locNames := make(map[string]bool)
	for _, rname := range w.regionOrder {
		r := w.Regions[rname]
		for _, exit := range r.Exits {
			if exitNames[exit.Name] {
				errs = append(errs, fmt.Errorf("world: duplicate exit name %q", exit.Name))
			}
			exitNames[exit.Name] = true
			if _, ok := w.Regions[exit.Target]; !ok {
				errs = append(errs, fmt.Errorf("world: exit %q targets unknown region %q", exit.Name, exit.Target))
			}
		}
		for _, loc := range r.Locations {
			if locNames[loc.Name] {
				errs = append(errs, fmt.Errorf("world: duplicate location name %q", loc.Name))
			}
			locNames[loc.Name] = true
		}
	}

	for _, start := range w.Starts {
		if _, ok := w.Regions[start]; !ok {
			errs = append(errs, fmt.Errorf("world: start region %q does not exist", start))
		}
	}

	return errs
}

// Signature returns a deterministic hash of the graph structure, used
// to key saved sessions to the ruleset they belong to.
func (w *World) Signature() string {
	h := sha256.New()
	fmt.Fprintln(h, w.Name)
	for _, rname := range w.regionOrder {
		r := w.Regions[rname]
		fmt.Fprintln(h, "region", rname)
		for _, exit := range r.Exits {
			fmt.Fprintln(h, "exit", exit.Name, exit.Target, exit.Rule)
		}
		for _, loc := range r.Locations {
			fmt.Fprintln(h, "location", loc.Name, loc.IsEvent, loc.Rule)
		}
	}
	for _, start := range w.Starts {
		fmt.Fprintln(h, "start", start)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
