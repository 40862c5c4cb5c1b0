// Package parser handles loading and saving ruleset documents: the
// structured files that declare regions, gated exits and locations,
// start regions, and static item metadata. Rulesets are authored in
// JSON or YAML with the same document shape.
package parser

import (
	"fmt"

	"github.com/trackmap-xyz/go-trackmap/inventory"
	"github.com/trackmap-xyz/go-trackmap/rules"
	"github.com/trackmap-xyz/go-trackmap/world"
)

// Document is the on-disk ruleset shape.
//
//	{
//	  "name": "light-world",
//	  "starts": ["Start"],
//	  "progression": {"Sword": [{"threshold": 2, "grants": ["MasterSword"]}]},
//	  "groups": {"swords": ["Sword", "MasterSword"]},
//	  "regions": [
//	    {
//	      "name": "Start",
//	      "exits": [{"name": "Start->Mid", "target": "Mid", "rule": {"item": "Key"}}],
//	      "locations": [{"name": "Trigger", "rule": true, "event": true}]
//	    }
//	  ]
//	}
//
// Regions, exits, and locations are arrays: declaration order is
// semantic, since BFS discovery order follows it.
type Document struct {
	Name        string                      `json:"name" yaml:"name"`
	Starts      []string                    `json:"starts,omitempty" yaml:"starts,omitempty"`
	Progression map[string][]inventory.Tier `json:"progression,omitempty" yaml:"progression,omitempty"`
	Groups      map[string][]string         `json:"groups,omitempty" yaml:"groups,omitempty"`
	Regions     []RegionDoc                 `json:"regions" yaml:"regions"`
}

// RegionDoc declares one region.
type RegionDoc struct {
	Name      string        `json:"name" yaml:"name"`
	Exits     []ExitDoc     `json:"exits,omitempty" yaml:"exits,omitempty"`
	Locations []LocationDoc `json:"locations,omitempty" yaml:"locations,omitempty"`
}

// ExitDoc declares one gated edge. An empty name defaults to
// "From->Target"; a missing rule means the exit is ungated.
type ExitDoc struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Target string `json:"target" yaml:"target"`
	Rule   any    `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// LocationDoc declares one location. A missing rule means the location
// is always open once its region is reached.
type LocationDoc struct {
	Name  string `json:"name" yaml:"name"`
	Rule  any    `json:"rule,omitempty" yaml:"rule,omitempty"`
	Event bool   `json:"event,omitempty" yaml:"event,omitempty"`
}

// Build converts a decoded document into a world graph.
func (d *Document) Build() (*world.World, error) {
	w := world.New(d.Name)

	for _, rd := range d.Regions {
		if rd.Name == "" {
			return nil, fmt.Errorf("parser: region with empty name")
		}
		w.AddRegion(rd.Name)

		for _, ed := range rd.Exits {
			if ed.Target == "" {
				return nil, fmt.Errorf("parser: region %q: exit with empty target", rd.Name)
			}
			name := ed.Name
			if name == "" {
				name = fmt.Sprintf("%s->%s", rd.Name, ed.Target)
			}
			rule, err := decodeRule(ed.Rule)
			if err != nil {
				return nil, fmt.Errorf("parser: region %q exit %q: %w", rd.Name, name, err)
			}
			w.AddExit(rd.Name, name, ed.Target, rule)
		}

		for _, ld := range rd.Locations {
			if ld.Name == "" {
				return nil, fmt.Errorf("parser: region %q: location with empty name", rd.Name)
			}
			rule, err := decodeRule(ld.Rule)
			if err != nil {
				return nil, fmt.Errorf("parser: region %q location %q: %w", rd.Name, ld.Name, err)
			}
			w.AddLocation(rd.Name, ld.Name, rule, ld.Event)
		}
	}

	w.Starts = append(w.Starts, d.Starts...)
	for base, tiers := range d.Progression {
		for _, tier := range tiers {
			w.Progression.AddTier(base, tier.Threshold, tier.Grants...)
		}
	}
	for group, items := range d.Groups {
		w.Groups[group] = append(w.Groups[group], items...)
	}

	return w, nil
}

// FromWorld converts a world back to its document form for export.
func FromWorld(w *world.World) *Document {
	doc := &Document{
		Name:   w.Name,
		Starts: append([]string(nil), w.Starts...),
	}
	if len(w.Progression) > 0 {
		doc.Progression = make(map[string][]inventory.Tier, len(w.Progression))
		for base, tiers := range w.Progression {
			doc.Progression[base] = append([]inventory.Tier(nil), tiers...)
		}
	}
	if len(w.Groups) > 0 {
		doc.Groups = make(map[string][]string, len(w.Groups))
		for group, items := range w.Groups {
			doc.Groups[group] = append([]string(nil), items...)
		}
	}

	for _, rname := range w.RegionNames() {
		region := w.Regions[rname]
		rd := RegionDoc{Name: rname}
		for _, exit := range region.Exits {
			rd.Exits = append(rd.Exits, ExitDoc{
				Name:   exit.Name,
				Target: exit.Target,
				Rule:   rules.NodeToValue(exit.Rule),
			})
		}
		for _, loc := range region.Locations {
			rd.Locations = append(rd.Locations, LocationDoc{
				Name:  loc.Name,
				Rule:  rules.NodeToValue(loc.Rule),
				Event: loc.IsEvent,
			})
		}
		doc.Regions = append(doc.Regions, rd)
	}
	return doc
}

// decodeRule converts a raw rule value to a tree. A missing rule is an
// ungated constant-true.
func decodeRule(raw any) (rules.Node, error) {
	if raw == nil {
		return rules.Const(true), nil
	}
	return rules.NodeFromValue(raw)
}
