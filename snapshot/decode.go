package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/trackmap-xyz/go-trackmap/inventory"
)

// FromJSON decodes an exported snapshot. Consumers that receive a
// snapshot over a file or pipe use this to rebuild a queryable view;
// the progression table travels with the ruleset, not the snapshot, so
// it is supplied separately (nil is fine when the ruleset defines none).
func FromJSON(data []byte, pt inventory.ProgressionTable) (*Snapshot, error) {
	type export Snapshot
	var e export
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("snapshot: invalid JSON: %w", err)
	}
	s := (*Snapshot)(&e)
	if s.Items == nil {
		s.Items = make(map[string]int)
	}
	if s.Flags == nil {
		s.Flags = make(map[string]bool)
	}
	s.reachable = make(map[string]bool, len(s.Reachable))
	for _, r := range s.Reachable {
		s.reachable[r] = true
	}
	if pt != nil {
		s.progression = pt.Copy()
	}
	return s, nil
}
