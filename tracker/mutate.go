package tracker

import (
	"github.com/trackmap-xyz/go-trackmap/eventlog"
	"github.com/trackmap-xyz/go-trackmap/inventory"
)

// AddCapability adds one copy of a capability, invalidating and
// recomputing immediately unless a batch is open.
func (t *Tracker) AddCapability(name string) error {
	return t.AddCapabilityCount(name, 1)
}

// AddCapabilityCount adds count copies of a capability.
func (t *Tracker) AddCapabilityCount(name string, count int) error {
	t.items.Add(name, count)
	t.record(eventlog.KindItem, name, count)
	return t.afterMutation()
}

// SetFlag sets a tracked flag. Flags gate rules like capabilities with
// count 1 but are exported distinctly in snapshots.
func (t *Tracker) SetFlag(name string) error {
	t.flags[name] = true
	t.record(eventlog.KindFlag, name, 1)
	return t.afterMutation()
}

// ClearFlag clears a tracked flag. The flag stays represented with
// value false, which partial-mode consumers see as False, not Unknown.
func (t *Tracker) ClearFlag(name string) error {
	t.flags[name] = false
	t.record(eventlog.KindFlag, name, 0)
	return t.afterMutation()
}

// Clear resets the inventory and flags to empty.
func (t *Tracker) Clear() error {
	t.items = inventory.New()
	t.flags = make(map[string]bool)
	t.record(eventlog.KindClear, "", 0)
	return t.afterMutation()
}

// BeginBatch opens a batch: subsequent mutations defer recomputation
// until the matching CommitBatch. Batches nest.
func (t *Tracker) BeginBatch() {
	t.batchDepth++
}

// CommitBatch closes a batch. With deferRecompute the cache is left
// stale for the next query to rebuild; otherwise recomputation runs
// now. An unmatched CommitBatch logs a warning and does nothing.
func (t *Tracker) CommitBatch(deferRecompute bool) error {
	if t.batchDepth == 0 {
		t.logger.Warn("CommitBatch without matching BeginBatch")
		return nil
	}
	t.batchDepth--
	if t.batchDepth > 0 {
		return nil
	}
	t.Invalidate()
	if deferRecompute {
		return nil
	}
	return t.Recompute()
}

func (t *Tracker) record(kind, name string, count int) {
	if t.journal == nil {
		return
	}
	if err := t.journal.Record(kind, name, count); err != nil {
		t.logger.Warn("journal write failed", "kind", kind, "name", name, "err", err)
	}
}

func (t *Tracker) afterMutation() error {
	if t.batchDepth > 0 {
		return nil
	}
	t.Invalidate()
	return t.Recompute()
}
