package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/trackmap-xyz/go-trackmap/parser"
)

func snapshotCmd(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	var items itemFlags
	var flags flagFlags
	fs.Var(&items, "item", "Capability to hold, as Name or Name:count (repeatable)")
	fs.Var(&flags, "flag", "Flag to set (repeatable)")
	output := fs.String("output", "", "Write snapshot JSON to file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: trackmap snapshot <ruleset.{json,yaml}> [options]

Export the stabilized snapshot for the given tracked state: the full
copy of inventory, flags, and the reachable-region set that read-only
consumers evaluate ad hoc rules against.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("ruleset file required")
	}

	w, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	t, err := newTracker(w, items, flags)
	if err != nil {
		return err
	}

	snap := t.Snapshot()
	if snap == nil {
		return fmt.Errorf("no snapshot published: %v", t.Err())
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if *output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote snapshot %s to %s\n", snap.ID, *output)
	return nil
}
