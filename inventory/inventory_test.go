package inventory

import "testing"

// === Inventory Tests ===

func TestCopy(t *testing.T) {
	inv := Inventory{"Key": 2, "Lamp": 1}
	c := inv.Copy()

	c["Key"] = 99
	if inv["Key"] != 2 {
		t.Error("Copy should not affect original")
	}
}

func TestHasVsGet(t *testing.T) {
	inv := Inventory{"Lamp": 0}
	if !inv.Has("Lamp") {
		t.Error("count 0 is still present")
	}
	if inv.Has("Key") {
		t.Error("absent capability should not be present")
	}
	if inv.Get("Key") != 0 {
		t.Error("Get of absent capability should be 0")
	}
}

func TestAddAndTotal(t *testing.T) {
	inv := New()
	inv.Add("Key", 2)
	inv.Add("Key", 1)
	inv.Set("Lamp", 1)
	if inv.Get("Key") != 3 {
		t.Errorf("Key = %d, want 3", inv.Get("Key"))
	}
	if inv.Total() != 4 {
		t.Errorf("Total = %d, want 4", inv.Total())
	}
}

func TestEquals(t *testing.T) {
	a := Inventory{"Key": 1}
	b := Inventory{"Key": 1}
	c := Inventory{"Key": 2}
	if !a.Equals(b) {
		t.Error("equal inventories should be equal")
	}
	if a.Equals(c) {
		t.Error("different counts should not be equal")
	}
	if a.Equals(Inventory{}) {
		t.Error("different sizes should not be equal")
	}
}

func TestCovers(t *testing.T) {
	big := Inventory{"Key": 2, "Lamp": 1}
	small := Inventory{"Key": 1}
	if !big.Covers(small) {
		t.Error("big should cover small")
	}
	if small.Covers(big) {
		t.Error("small should not cover big")
	}
}

func TestHashDeterministic(t *testing.T) {
	a := Inventory{"Key": 1, "Lamp": 2}
	b := Inventory{"Lamp": 2, "Key": 1}
	if a.Hash() != b.Hash() {
		t.Error("hash should be independent of insertion order")
	}
	b["Key"] = 2
	if a.Hash() == b.Hash() {
		t.Error("different inventories should hash differently")
	}
}

func TestString(t *testing.T) {
	if New().String() != "(empty)" {
		t.Error("empty inventory string wrong")
	}
	inv := Inventory{"Key": 2, "Ghost": 0}
	if inv.String() != "Key:2" {
		t.Errorf("String = %q", inv.String())
	}
}
