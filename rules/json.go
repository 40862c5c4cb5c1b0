package rules

import (
	"encoding/json"
	"fmt"
)

// The interchange form of a rule tree is a tagged JSON tree:
//
//	true / false
//	{"allOf": [rule, ...]}
//	{"anyOf": [rule, ...]}
//	{"not": rule}
//	{"item": "Key", "count": 2}    (count defaults to 1)
//	{"helper": "CanCross", "args": [...]}
//
// The same shape is used inside persisted ruleset documents and for ad
// hoc rules submitted by snapshot consumers.

// UnmarshalNode parses a rule tree from its JSON interchange form.
func UnmarshalNode(data []byte) (Node, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rules: invalid JSON: %w", err)
	}
	return NodeFromValue(raw)
}

// MarshalNode serializes a rule tree to its JSON interchange form.
func MarshalNode(node Node) ([]byte, error) {
	return json.Marshal(NodeToValue(node))
}

// NodeFromValue builds a rule tree from a decoded generic value, as
// produced by encoding/json or yaml.v3.
func NodeFromValue(raw any) (Node, error) {
	switch v := raw.(type) {
	case bool:
		return Const(v), nil

	case map[string]any:
		return nodeFromMap(v)

	// yaml.v3 decodes mappings with non-string scalar keys this way;
	// rule documents only ever use string keys.
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			s, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("rules: non-string key %v in rule object", k)
			}
			m[s] = val
		}
		return nodeFromMap(m)

	default:
		return nil, fmt.Errorf("rules: cannot decode rule from %T", raw)
	}
}

func nodeFromMap(m map[string]any) (Node, error) {
	if children, ok := m["allOf"]; ok {
		nodes, err := childList(children)
		if err != nil {
			return nil, fmt.Errorf("allOf: %w", err)
		}
		return &AllOf{Children: nodes}, nil
	}
	if children, ok := m["anyOf"]; ok {
		nodes, err := childList(children)
		if err != nil {
			return nil, fmt.Errorf("anyOf: %w", err)
		}
		return &AnyOf{Children: nodes}, nil
	}
	if child, ok := m["not"]; ok {
		node, err := NodeFromValue(child)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return &Negate{Child: node}, nil
	}
	if item, ok := m["item"]; ok {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("rules: item name must be a string, got %T", item)
		}
		count := 1
		if c, ok := m["count"]; ok {
			n, ok := asInt(c)
			if !ok {
				return nil, fmt.Errorf("rules: item count must be an integer, got %T", c)
			}
			count = n
		}
		return &ItemCheck{Item: name, Count: count}, nil
	}
	if helper, ok := m["helper"]; ok {
		name, ok := helper.(string)
		if !ok {
			return nil, fmt.Errorf("rules: helper name must be a string, got %T", helper)
		}
		var args []any
		if a, ok := m["args"]; ok {
			list, ok := a.([]any)
			if !ok {
				return nil, fmt.Errorf("rules: helper args must be a list, got %T", a)
			}
			args = list
		}
		return &HelperCall{Name: name, Args: args}, nil
	}
	return nil, fmt.Errorf("rules: unrecognized rule object (keys: %v)", mapKeys(m))
}

func childList(raw any) ([]Node, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}
	nodes := make([]Node, 0, len(list))
	for i, item := range list {
		node, err := NodeFromValue(item)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// NodeToValue converts a rule tree to the generic form encoded by both
// the JSON and YAML codecs.
func NodeToValue(node Node) any {
	switch n := node.(type) {
	case *Constant:
		return n.Value
	case *AllOf:
		return map[string]any{"allOf": valueList(n.Children)}
	case *AnyOf:
		return map[string]any{"anyOf": valueList(n.Children)}
	case *Negate:
		return map[string]any{"not": NodeToValue(n.Child)}
	case *ItemCheck:
		if n.Count <= 1 {
			return map[string]any{"item": n.Item}
		}
		return map[string]any{"item": n.Item, "count": n.Count}
	case *HelperCall:
		if len(n.Args) == 0 {
			return map[string]any{"helper": n.Name}
		}
		return map[string]any{"helper": n.Name, "args": n.Args}
	default:
		return nil
	}
}

func valueList(children []Node) []any {
	out := make([]any, len(children))
	for i, c := range children {
		out[i] = NodeToValue(c)
	}
	return out
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
