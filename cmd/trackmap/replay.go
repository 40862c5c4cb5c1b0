package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trackmap-xyz/go-trackmap/eventlog"
	"github.com/trackmap-xyz/go-trackmap/parser"
	"github.com/trackmap-xyz/go-trackmap/rules"
	"github.com/trackmap-xyz/go-trackmap/tracker"
)

func replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: trackmap replay <ruleset.{json,yaml}> <journal.jsonl>

Apply a JSONL event journal to a fresh tracker and print the resulting
inventory and reachable regions. Journals are written by trackers
configured with one (see the eventlog package).
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("ruleset file and journal file required")
	}

	w, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	events, err := eventlog.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}

	funcs := make(rules.Registry)
	t := tracker.New(w, funcs)
	funcs["reachable"] = tracker.RegionHelper(t)

	if err := eventlog.Replay(events, t); err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}
	if err := t.Err(); err != nil {
		return err
	}

	fmt.Printf("Replayed %d events\n", len(events))
	fmt.Printf("Inventory: %s\n", t.Items())
	reachable := t.ReachableRegions()
	fmt.Printf("Reachable regions (%d/%d):\n", len(reachable), len(w.Regions))
	for _, name := range reachable {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
