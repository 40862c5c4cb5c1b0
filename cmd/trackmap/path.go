package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trackmap-xyz/go-trackmap/parser"
	"github.com/trackmap-xyz/go-trackmap/tracker"
)

func path(args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	var items itemFlags
	var flags flagFlags
	fs.Var(&items, "item", "Capability to hold, as Name or Name:count (repeatable)")
	fs.Var(&flags, "flag", "Flag to set (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: trackmap path <ruleset.{json,yaml}> <region> [options]

Print the recorded path to a region: the sequence of entrances the BFS
first discovered it through. This is discovery order, not a shortest
path.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("ruleset file and region required")
	}

	w, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	target := fs.Arg(1)
	if w.Region(target) == nil {
		return fmt.Errorf("%w: %s", tracker.ErrRegionNotFound, target)
	}

	t, err := newTracker(w, items, flags)
	if err != nil {
		return err
	}

	hops := t.PathTo(target)
	if hops == nil {
		fmt.Printf("%s is not reachable\n", target)
		return nil
	}

	for i, hop := range hops {
		if hop.Entrance == "" {
			fmt.Printf("%d. %s (start)\n", i+1, hop.Region)
			continue
		}
		fmt.Printf("%d. %s (via %s)\n", i+1, hop.Region, hop.Entrance)
	}
	return nil
}
