package inventory

import "testing"

func buildSwordTable() ProgressionTable {
	pt := NewProgressionTable()
	pt.AddTier("Sword", 4, "GoldSword")
	pt.AddTier("Sword", 2, "MasterSword")
	pt.AddTier("Glove", 1, "Lift")
	return pt
}

func TestAddTierOrdering(t *testing.T) {
	pt := buildSwordTable()
	tiers := pt["Sword"]
	if len(tiers) != 2 || tiers[0].Threshold != 2 || tiers[1].Threshold != 4 {
		t.Errorf("tiers not ordered by threshold: %v", tiers)
	}
}

func TestGrants(t *testing.T) {
	pt := buildSwordTable()
	if pt.Grants("Sword", 1, "MasterSword") {
		t.Error("below threshold should not grant")
	}
	if !pt.Grants("Sword", 2, "MasterSword") {
		t.Error("at threshold should grant")
	}
	if pt.Grants("Sword", 3, "GoldSword") {
		t.Error("higher tier should need its own threshold")
	}
	if !pt.Grants("Sword", 4, "GoldSword") {
		t.Error("tier 2 at threshold 4 should grant")
	}
	if pt.Grants("Glove", 1, "MasterSword") {
		t.Error("unrelated base should not grant")
	}
}

func TestGrantedBy(t *testing.T) {
	pt := buildSwordTable()
	bases := pt.GrantedBy("MasterSword")
	if len(bases) != 1 || bases[0] != "Sword" {
		t.Errorf("GrantedBy = %v", bases)
	}
	if len(pt.GrantedBy("Nothing")) != 0 {
		t.Error("unknown capability should have no granting bases")
	}
}

func TestProgressionCopy(t *testing.T) {
	pt := buildSwordTable()
	c := pt.Copy()
	c["Sword"][0].Grants[0] = "Mutated"
	if pt["Sword"][0].Grants[0] != "MasterSword" {
		t.Error("Copy should not share tier slices")
	}
}
