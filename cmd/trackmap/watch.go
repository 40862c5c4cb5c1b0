package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/trackmap-xyz/go-trackmap/parser"
)

func watch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var items itemFlags
	var flags flagFlags
	fs.Var(&items, "item", "Capability to hold, as Name or Name:count (repeatable)")
	fs.Var(&flags, "flag", "Flag to set (repeatable)")
	debounce := fs.Duration("debounce", 250*time.Millisecond, "Coalesce rapid file changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: trackmap watch <ruleset.{json,yaml}> [options]

Watch a ruleset file and recompute on every change, printing the
reachable-set diff. Useful while authoring rulesets.

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
	rulesetPath := fs.Arg(0)

	previous, err := computeReachable(rulesetPath, items, flags)
	if err != nil {
		return err
	}
	fmt.Printf("%d regions reachable; watching %s\n", len(previous), rulesetPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors typically rename-and-replace, which
	// drops a watch held on the file itself.
	if err := watcher.Add(filepath.Dir(rulesetPath)); err != nil {
		return fmt.Errorf("watch %s: %w", rulesetPath, err)
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	pending := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(rulesetPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(*debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			current, err := computeReachable(rulesetPath, items, flags)
			if err != nil {
				slog.Warn("reload failed", "err", err)
				continue
			}
			printDiff(previous, current)
			previous = current

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		}
	}
}

func computeReachable(rulesetPath string, items itemFlags, flags flagFlags) (map[string]bool, error) {
	w, err := parser.LoadFile(rulesetPath)
	if err != nil {
		return nil, err
	}
	t, err := newTracker(w, items, flags)
	if err != nil {
		return nil, err
	}
	reachable := make(map[string]bool)
	for _, name := range t.ReachableRegions() {
		reachable[name] = true
	}
	return reachable, nil
}

func printDiff(previous, current map[string]bool) {
	changed := false
	for name := range current {
		if !previous[name] {
			fmt.Printf("+ %s\n", name)
			changed = true
		}
	}
	for name := range previous {
		if !current[name] {
			fmt.Printf("- %s\n", name)
			changed = true
		}
	}
	if !changed {
		fmt.Println("reloaded; no reachability change")
	}
}
