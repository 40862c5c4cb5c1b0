// Package inventory models the tracked capability multiset and the
// progressive-unlock table that derives capability names from item
// count thresholds.
package inventory

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// Inventory represents the tracked state as a capability multiset.
// It maps capability names to non-negative counts.
type Inventory map[string]int

// New creates an empty inventory.
func New() Inventory {
	return make(Inventory)
}

// Copy creates a deep copy of the inventory.
func (inv Inventory) Copy() Inventory {
	result := make(Inventory, len(inv))
	for k, v := range inv {
		result[k] = v
	}
	return result
}

// Get returns the count for a capability (0 if not present).
func (inv Inventory) Get(name string) int {
	return inv[name]
}

// Has reports whether the capability is present, regardless of count.
// A capability tracked with count 0 is still present; this distinction
// matters for partial evaluation against snapshots.
func (inv Inventory) Has(name string) bool {
	_, ok := inv[name]
	return ok
}

// Set sets the count for a capability.
func (inv Inventory) Set(name string, count int) {
	inv[name] = count
}

// Add adds to the count for a capability.
func (inv Inventory) Add(name string, count int) {
	inv[name] += count
}

// Total returns the sum of all counts.
func (inv Inventory) Total() int {
	sum := 0
	for _, v := range inv {
		sum += v
	}
	return sum
}

// Equals checks if two inventories are identical.
func (inv Inventory) Equals(other Inventory) bool {
	if len(inv) != len(other) {
		return false
	}
	for k, v := range inv {
		if c, ok := other[k]; !ok || c != v {
			return false
		}
	}
	return true
}

// Covers checks if inv covers other (inv >= other for all capabilities).
func (inv Inventory) Covers(other Inventory) bool {
	for k, v := range other {
		if inv[k] < v {
			return false
		}
	}
	return true
}

// SortedKeys returns capability names in sorted order.
func (inv Inventory) SortedKeys() []string {
	keys := make([]string, 0, len(inv))
	for k := range inv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Hash returns a deterministic hash of the inventory.
func (inv Inventory) Hash() string {
	keys := inv.SortedKeys()
	h := sha256.New()
	buf := make([]byte, 8)
	for _, k := range keys {
		h.Write([]byte(k))
		binary.BigEndian.PutUint64(buf, uint64(inv[k]))
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// String returns a human-readable representation.
func (inv Inventory) String() string {
	keys := inv.SortedKeys()
	var parts []string
	for _, k := range keys {
		if inv[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", k, inv[k]))
		}
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}
