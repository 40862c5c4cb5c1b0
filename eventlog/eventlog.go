// Package eventlog provides a JSONL journal of tracked-state mutations.
// Each line is one event; a journal can be replayed against a fresh
// tracker to reproduce a session.
package eventlog

import (
	"time"
)

// Event kinds.
const (
	KindItem  = "item"  // capability count added
	KindFlag  = "flag"  // flag set or cleared (Count 1 or 0)
	KindClear = "clear" // full state reset
)

// Event is a single recorded mutation.
type Event struct {
	Session string    `json:"session,omitempty"`
	Seq     int       `json:"seq"`
	Kind    string    `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Count   int       `json:"count,omitempty"`
	At      time.Time `json:"at"`
}

// Applier is the mutation surface a journal replays into. The tracker
// satisfies it.
type Applier interface {
	AddCapabilityCount(name string, count int) error
	SetFlag(name string) error
	ClearFlag(name string) error
	Clear() error
	BeginBatch()
	CommitBatch(deferRecompute bool) error
}

// Replay applies a journal to an applier as a single batch, so the
// reachability fixpoint runs once at the end rather than per event.
func Replay(events []Event, target Applier) error {
	target.BeginBatch()
	for _, ev := range events {
		var err error
		switch ev.Kind {
		case KindItem:
			count := ev.Count
			if count == 0 {
				count = 1
			}
			err = target.AddCapabilityCount(ev.Name, count)
		case KindFlag:
			if ev.Count > 0 {
				err = target.SetFlag(ev.Name)
			} else {
				err = target.ClearFlag(ev.Name)
			}
		case KindClear:
			err = target.Clear()
		}
		if err != nil {
			target.CommitBatch(true)
			return err
		}
	}
	return target.CommitBatch(false)
}
