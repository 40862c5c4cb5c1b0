package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trackmap-xyz/go-trackmap/parser"
)

func reach(args []string) error {
	fs := flag.NewFlagSet("reach", flag.ExitOnError)
	var items itemFlags
	var flags flagFlags
	fs.Var(&items, "item", "Capability to hold, as Name or Name:count (repeatable)")
	fs.Var(&flags, "flag", "Flag to set (repeatable)")
	showBlocked := fs.Bool("blocked", false, "Also list blocked exits")
	showLocations := fs.Bool("locations", false, "Also list accessible locations")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: trackmap reach <ruleset.{json,yaml}> [options]

Compute the reachable regions for the given tracked state, including
second-order reachability through event locations.

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

	reachable := t.ReachableRegions()
	fmt.Printf("Reachable regions (%d/%d):\n", len(reachable), len(w.Regions))
	for _, name := range reachable {
		fmt.Printf("  %s\n", name)
	}

	if *showBlocked {
		blocked := t.BlockedExits()
		fmt.Printf("\nBlocked exits (%d):\n", len(blocked))
		for _, name := range blocked {
			fmt.Printf("  %s\n", name)
		}
	}

	if *showLocations {
		locations := t.AccessibleLocations()
		fmt.Printf("\nAccessible locations (%d):\n", len(locations))
		for _, name := range locations {
			fmt.Printf("  %s\n", name)
		}
	}

	return nil
}
