package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/trackmap-xyz/go-trackmap/inventory"
	"github.com/trackmap-xyz/go-trackmap/rules"
)

func createSnapshot() *Snapshot {
	pt := inventory.NewProgressionTable()
	pt.AddTier("Sword", 2, "MasterSword")
	return New("light-world",
		inventory.Inventory{"Key": 1, "Lamp": 0, "Sword": 2},
		map[string]bool{"Seen": true, "Done": false},
		map[string]string{"mode": "open"},
		[]string{"Mid", "Start"},
		pt)
}

func TestNewCopiesInputs(t *testing.T) {
	items := inventory.Inventory{"Key": 1}
	flags := map[string]bool{"Seen": true}
	reachable := []string{"Start"}
	s := New("w", items, flags, nil, reachable, nil)

	items["Key"] = 99
	flags["Seen"] = false
	reachable[0] = "Mutated"

	if s.Items["Key"] != 1 || s.Flags["Seen"] != true || s.Reachable[0] != "Start" {
		t.Error("snapshot must not share storage with its inputs")
	}
}

func TestItemCount(t *testing.T) {
	s := createSnapshot()
	if count, ok := s.ItemCount("Key"); !ok || count != 1 {
		t.Errorf("Key = %d, %v", count, ok)
	}
	if count, ok := s.ItemCount("Lamp"); !ok || count != 0 {
		t.Errorf("present-with-zero Lamp = %d, %v", count, ok)
	}
	if _, ok := s.ItemCount("Hammer"); ok {
		t.Error("absent capability should not be represented")
	}
}

func TestItemCountFallsBackToFlags(t *testing.T) {
	s := createSnapshot()
	if count, ok := s.ItemCount("Seen"); !ok || count != 1 {
		t.Errorf("set flag Seen = %d, %v, want 1, true", count, ok)
	}
	if count, ok := s.ItemCount("Done"); !ok || count != 0 {
		t.Errorf("cleared flag Done = %d, %v, want 0, true", count, ok)
	}
}

func TestFlagSet(t *testing.T) {
	s := createSnapshot()
	if v, ok := s.FlagSet("Seen"); !ok || !v {
		t.Error("Seen should be set")
	}
	if v, ok := s.FlagSet("Done"); !ok || v {
		t.Error("Done should be represented but false")
	}
	if _, ok := s.FlagSet("Never"); ok {
		t.Error("unknown flag should not be represented")
	}
}

func TestRegionReachable(t *testing.T) {
	s := createSnapshot()
	if !s.RegionReachable("Start") || !s.RegionReachable("Mid") {
		t.Error("published regions should be reachable")
	}
	if s.RegionReachable("End") {
		t.Error("unpublished region should not be reachable")
	}
}

// === Partial Evaluation Tests ===

func TestEvalPartial(t *testing.T) {
	s := createSnapshot()

	if v := s.Eval(rules.Item("Key"), nil); v != rules.True {
		t.Errorf("Key = %v", v)
	}
	if v := s.Eval(rules.Item("Lamp"), nil); v != rules.False {
		t.Errorf("present-with-zero should be False, got %v", v)
	}
	if v := s.Eval(rules.Item("Hammer"), nil); v != rules.Unknown {
		t.Errorf("absent should be Unknown, got %v", v)
	}
	if v := s.Eval(rules.Item("Seen"), nil); v != rules.True {
		t.Errorf("set flag should gate like a held capability, got %v", v)
	}
	if v := s.Eval(rules.Item("Done"), nil); v != rules.False {
		t.Errorf("cleared flag should be False, not Unknown, got %v", v)
	}
	if v := s.Eval(rules.Item("MasterSword"), nil); v != rules.True {
		t.Errorf("progression grant should hold in snapshots, got %v", v)
	}
	if v := s.Eval(rules.All(rules.Item("Key"), rules.Item("Hammer")), nil); v != rules.Unknown {
		t.Errorf("AND with missing data should be Unknown, got %v", v)
	}
	if v := s.Eval(rules.Helper("unregistered"), nil); v != rules.Unknown {
		t.Errorf("unknown helper should degrade to Unknown, got %v", v)
	}
}

// === Export Tests ===

func TestJSONRoundTrip(t *testing.T) {
	s := createSnapshot()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	pt := inventory.NewProgressionTable()
	pt.AddTier("Sword", 2, "MasterSword")
	back, err := FromJSON(data, pt)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if back.ID != s.ID || back.Ruleset != s.Ruleset {
		t.Error("identity fields lost in transit")
	}
	if !back.RegionReachable("Mid") {
		t.Error("reachable lookup not rebuilt")
	}
	if v := back.Eval(rules.Item("MasterSword"), nil); v != rules.True {
		t.Errorf("decoded snapshot should evaluate like the original, got %v", v)
	}
}

func TestFromJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte("{"), nil); err == nil {
		t.Error("invalid JSON should be an error")
	}
}

func TestFromJSONEmptyMaps(t *testing.T) {
	s, err := FromJSON([]byte(`{"id": "x", "ruleset": "w"}`), nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Items == nil || s.Flags == nil {
		t.Error("decoded snapshot should have usable empty maps")
	}
}
