package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trackmap-xyz/go-trackmap/world"
)

// FromJSON parses a ruleset document from JSON bytes.
func FromJSON(data []byte) (*world.World, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parser: invalid JSON: %w", err)
	}
	return doc.Build()
}

// ToJSON serializes a world to its JSON document form.
func ToJSON(w *world.World) ([]byte, error) {
	return json.MarshalIndent(FromWorld(w), "", "  ")
}

// FromYAML parses a ruleset document from YAML bytes. The document
// shape is identical to the JSON form; ruleset packs are commonly
// authored in YAML.
func FromYAML(data []byte) (*world.World, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parser: invalid YAML: %w", err)
	}
	return doc.Build()
}

// ToYAML serializes a world to its YAML document form.
func ToYAML(w *world.World) ([]byte, error) {
	return yaml.Marshal(FromWorld(w))
}

// LoadFile loads a ruleset file, choosing the codec by extension.
func LoadFile(path string) (*world.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: read ruleset: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return FromJSON(data)
	}
}
