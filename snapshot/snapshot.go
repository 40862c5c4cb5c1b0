// Package snapshot provides the immutable state view handed to
// non-owning consumers. A snapshot is a full copy of the tracked
// inventory, flags, settings, and the stabilized reachable-region set;
// it never shares storage with the live tracker and is only published
// once a reachability computation has fully settled.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/trackmap-xyz/go-trackmap/inventory"
	"github.com/trackmap-xyz/go-trackmap/rules"
)

// Snapshot is an immutable, fully-copied view of tracked state.
// Consumers evaluate ad hoc rules against it in partial mode: data the
// snapshot does not carry yields Unknown rather than a guess.
type Snapshot struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Ruleset   string            `json:"ruleset"`
	Items     map[string]int    `json:"items"`
	Flags     map[string]bool   `json:"flags"`
	Settings  map[string]string `json:"settings,omitempty"`
	Reachable []string          `json:"reachable"`

	progression inventory.ProgressionTable
	reachable   map[string]bool
}

// New builds a snapshot by deep-copying every input. The reachable list
// must already be sorted by the producer.
func New(ruleset string, items inventory.Inventory, flags map[string]bool,
	settings map[string]string, reachable []string, pt inventory.ProgressionTable) *Snapshot {

	s := &Snapshot{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Ruleset:   ruleset,
		Items:     make(map[string]int, len(items)),
		Flags:     make(map[string]bool, len(flags)),
		Reachable: append([]string(nil), reachable...),
		reachable: make(map[string]bool, len(reachable)),
	}
	for k, v := range items {
		s.Items[k] = v
	}
	for k, v := range flags {
		s.Flags[k] = v
	}
	if len(settings) > 0 {
		s.Settings = make(map[string]string, len(settings))
		for k, v := range settings {
			s.Settings[k] = v
		}
	}
	for _, r := range s.Reachable {
		s.reachable[r] = true
	}
	if pt != nil {
		s.progression = pt.Copy()
	}
	return s
}

// ItemCount implements rules.State. Flags gate rules like capabilities
// with count 1 when set and 0 when cleared, matching the live tracker
// state, so the same rule evaluates alike live and against a snapshot.
// Absent names report false, which partial evaluation maps to Unknown;
// present-with-zero (including a cleared flag) reports true and a count
// of 0, which evaluates to False.
func (s *Snapshot) ItemCount(name string) (int, bool) {
	if count, ok := s.Items[name]; ok {
		return count, true
	}
	if set, ok := s.Flags[name]; ok {
		if set {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Progression implements rules.State.
func (s *Snapshot) Progression() inventory.ProgressionTable {
	return s.progression
}

// FlagSet reports a flag's value and whether the flag is represented.
func (s *Snapshot) FlagSet(name string) (bool, bool) {
	v, ok := s.Flags[name]
	return v, ok
}

// RegionReachable reports whether a region was reachable at publish
// time.
func (s *Snapshot) RegionReachable(name string) bool {
	return s.reachable[name]
}

// Eval evaluates an ad hoc rule against the snapshot in partial mode.
// The result may be Unknown; it is never an error, since consumers must
// degrade gracefully on incomplete data.
func (s *Snapshot) Eval(node rules.Node, funcs rules.Registry) rules.TriBool {
	v, _ := rules.Eval(node, rules.NewContext(s, funcs, rules.Partial))
	return v
}

// MarshalJSON exports the snapshot's public fields.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	type export Snapshot
	return json.Marshal((*export)(s))
}
