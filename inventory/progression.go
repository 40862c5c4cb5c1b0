package inventory

import "sort"

// Tier is one step of a progressive item: holding at least Threshold
// copies of the base item grants every capability named in Grants.
type Tier struct {
	Threshold int      `json:"threshold" yaml:"threshold"`
	Grants    []string `json:"grants" yaml:"grants"`
}

// ProgressionTable maps a base item name to its ordered unlock tiers.
// The table is static ruleset metadata and is never mutated after load.
type ProgressionTable map[string][]Tier

// NewProgressionTable creates an empty progression table.
func NewProgressionTable() ProgressionTable {
	return make(ProgressionTable)
}

// AddTier appends an unlock tier for a base item, keeping tiers ordered
// by threshold.
func (pt ProgressionTable) AddTier(base string, threshold int, grants ...string) {
	tiers := append(pt[base], Tier{Threshold: threshold, Grants: grants})
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Threshold < tiers[j].Threshold
	})
	pt[base] = tiers
}

// Grants reports whether holding count copies of base grants the named
// capability.
func (pt ProgressionTable) Grants(base string, count int, name string) bool {
	for _, tier := range pt[base] {
		if count < tier.Threshold {
			break
		}
		for _, g := range tier.Grants {
			if g == name {
				return true
			}
		}
	}
	return false
}

// GrantedBy returns the base items whose tiers can ever grant name.
func (pt ProgressionTable) GrantedBy(name string) []string {
	var bases []string
	for base, tiers := range pt {
		for _, tier := range tiers {
			for _, g := range tier.Grants {
				if g == name {
					bases = append(bases, base)
				}
			}
		}
	}
	sort.Strings(bases)
	return bases
}

// Copy creates a deep copy of the progression table.
func (pt ProgressionTable) Copy() ProgressionTable {
	result := make(ProgressionTable, len(pt))
	for base, tiers := range pt {
		copied := make([]Tier, len(tiers))
		for i, tier := range tiers {
			copied[i] = Tier{Threshold: tier.Threshold, Grants: append([]string(nil), tier.Grants...)}
		}
		result[base] = copied
	}
	return result
}
