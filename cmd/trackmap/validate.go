package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trackmap-xyz/go-trackmap/parser"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Treat dangling exit targets as errors")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: trackmap validate <ruleset.{json,yaml}> [options]

Check a ruleset document for structural problems: duplicate names,
missing start regions, and exits that target regions not in the graph.
Dangling exits are warnings by default, since the resolver treats them
as permanently blocked.

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

	problems := w.Validate()
	if len(problems) == 0 {
		fmt.Printf("%s: ok (%d regions, %d event locations)\n",
			w.Name, len(w.Regions), len(w.EventLocations()))
		return nil
	}

	for _, p := range problems {
		fmt.Printf("  %v\n", p)
	}
	if *strict {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}
	fmt.Printf("%d problem(s) found\n", len(problems))
	return nil
}
