package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trackmap-xyz/go-trackmap/rules"
)

const sampleJSON = `{
  "name": "light-world",
  "starts": ["Start"],
  "progression": {"Sword": [{"threshold": 2, "grants": ["MasterSword"]}]},
  "groups": {"swords": ["Sword", "MasterSword"]},
  "regions": [
    {
      "name": "Start",
      "exits": [
        {"target": "Mid", "rule": {"item": "Key"}},
        {"name": "secret", "target": "End", "rule": {"helper": "canCross", "args": ["river"]}}
      ],
      "locations": [{"name": "Trigger", "rule": true, "event": true}]
    },
    {
      "name": "Mid",
      "exits": [{"target": "End"}],
      "locations": [{"name": "Chest", "rule": {"item": "Lamp"}}]
    },
    {"name": "End"}
  ]
}`

const sampleYAML = `
name: light-world
starts: [Start]
regions:
  - name: Start
    exits:
      - target: Mid
        rule: {item: Key}
  - name: Mid
`

func TestFromJSON(t *testing.T) {
	w, err := FromJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	names := w.RegionNames()
	if len(names) != 3 || names[0] != "Start" || names[1] != "Mid" || names[2] != "End" {
		t.Errorf("declaration order lost: %v", names)
	}

	exits := w.Regions["Start"].Exits
	if exits[0].Name != "Start->Mid" {
		t.Errorf("default exit name = %q", exits[0].Name)
	}
	if exits[1].Name != "secret" {
		t.Errorf("explicit exit name = %q", exits[1].Name)
	}
	if _, ok := exits[0].Rule.(*rules.ItemCheck); !ok {
		t.Errorf("exit rule = %T", exits[0].Rule)
	}

	// A missing rule means ungated.
	openExit := w.Regions["Mid"].Exits[0]
	if c, ok := openExit.Rule.(*rules.Constant); !ok || !c.Value {
		t.Errorf("missing rule should decode as constant true, got %v", openExit.Rule)
	}

	trigger := w.Location("Trigger")
	if trigger == nil || !trigger.IsEvent {
		t.Errorf("Trigger = %+v", trigger)
	}

	if !w.Progression.Grants("Sword", 2, "MasterSword") {
		t.Error("progression table not loaded")
	}
	if len(w.Groups["swords"]) != 2 {
		t.Errorf("groups = %v", w.Groups)
	}
	if len(w.Starts) != 1 || w.Starts[0] != "Start" {
		t.Errorf("starts = %v", w.Starts)
	}
}

func TestFromYAML(t *testing.T) {
	w, err := FromYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(w.Regions) != 2 {
		t.Fatalf("regions = %v", w.RegionNames())
	}
	item, ok := w.Regions["Start"].Exits[0].Rule.(*rules.ItemCheck)
	if !ok || item.Item != "Key" {
		t.Errorf("YAML rule = %v", w.Regions["Start"].Exits[0].Rule)
	}
}

func TestRoundTrip(t *testing.T) {
	w, err := FromJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := ToJSON(w)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.Signature() != w.Signature() {
		t.Error("round trip changed the world signature")
	}

	yamlData, err := ToYAML(w)
	if err != nil {
		t.Fatalf("yaml export: %v", err)
	}
	yback, err := FromYAML(yamlData)
	if err != nil {
		t.Fatalf("yaml reparse: %v", err)
	}
	if yback.Signature() != w.Signature() {
		t.Error("YAML round trip changed the world signature")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "world.json")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(jsonPath); err != nil {
		t.Errorf("json load: %v", err)
	}

	yamlPath := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(yamlPath); err != nil {
		t.Errorf("yaml load: %v", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should be an error")
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		doc  string
		want string
	}{
		{`{"regions": [{"name": ""}]}`, "empty name"},
		{`{"regions": [{"name": "A", "exits": [{"target": ""}]}]}`, "empty target"},
		{`{"regions": [{"name": "A", "exits": [{"target": "B", "rule": {"bogus": 1}}]}]}`, "exit"},
		{`{"regions": [{"name": "A", "locations": [{"name": "L", "rule": {"bogus": 1}}]}]}`, "location"},
	}
	for _, c := range cases {
		_, err := FromJSON([]byte(c.doc))
		if err == nil {
			t.Errorf("%s: want error", c.doc)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.doc, err, c.want)
		}
	}
}
