package rules

import (
	"strings"
	"testing"
)

func TestUnmarshalNode(t *testing.T) {
	data := `{"allOf": [
		{"item": "Key"},
		{"anyOf": [{"item": "Sword", "count": 2}, {"not": false}]},
		{"helper": "canCross", "args": ["river"]},
		true
	]}`
	node, err := UnmarshalNode([]byte(data))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	all, ok := node.(*AllOf)
	if !ok {
		t.Fatalf("want *AllOf, got %T", node)
	}
	if len(all.Children) != 4 {
		t.Fatalf("want 4 children, got %d", len(all.Children))
	}
	item, ok := all.Children[0].(*ItemCheck)
	if !ok || item.Item != "Key" || item.Count != 1 {
		t.Errorf("child 0 = %v", all.Children[0])
	}
	any0, ok := all.Children[1].(*AnyOf)
	if !ok {
		t.Fatalf("child 1 = %T", all.Children[1])
	}
	counted, ok := any0.Children[0].(*ItemCheck)
	if !ok || counted.Count != 2 {
		t.Errorf("counted item = %v", any0.Children[0])
	}
	helper, ok := all.Children[2].(*HelperCall)
	if !ok || helper.Name != "canCross" || len(helper.Args) != 1 {
		t.Errorf("helper = %v", all.Children[2])
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	node := All(
		Item("Key"),
		Any(ItemN("Sword", 2), Not(Const(false))),
		Helper("canCross", "river"),
	)
	data, err := MarshalNode(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := UnmarshalNode(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != node.String() {
		t.Errorf("round trip changed the tree: %s vs %s", back, node)
	}
}

func TestNodeFromValueYAMLKeys(t *testing.T) {
	// yaml.v3 hands mappings to the decoder as map[string]any, but
	// generic pipelines can produce map[any]any; both must work.
	raw := map[any]any{"item": "Key", "count": 2}
	node, err := NodeFromValue(raw)
	if err != nil {
		t.Fatalf("map[any]any: %v", err)
	}
	item, ok := node.(*ItemCheck)
	if !ok || item.Count != 2 {
		t.Errorf("got %v", node)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []struct {
		data string
		want string
	}{
		{`{"bogus": 1}`, "unrecognized rule"},
		{`{"item": 7}`, "item name"},
		{`{"item": "Key", "count": "two"}`, "count"},
		{`{"allOf": 3}`, "expected a list"},
		{`{"helper": "x", "args": 1}`, "args"},
		{`42`, "cannot decode"},
	}
	for _, c := range cases {
		_, err := UnmarshalNode([]byte(c.data))
		if err == nil {
			t.Errorf("%s: want error", c.data)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.data, err, c.want)
		}
	}
}
