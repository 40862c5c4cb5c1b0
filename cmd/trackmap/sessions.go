package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trackmap-xyz/go-trackmap/parser"
	"github.com/trackmap-xyz/go-trackmap/storage"
)

func sessions(args []string) error {
	if len(args) < 1 {
		sessionsUsage()
		return fmt.Errorf("sessions subcommand required")
	}

	switch args[0] {
	case "list":
		return sessionsList(args[1:])
	case "save":
		return sessionsSave(args[1:])
	case "load":
		return sessionsLoad(args[1:])
	case "delete":
		return sessionsDelete(args[1:])
	default:
		sessionsUsage()
		return fmt.Errorf("unknown sessions subcommand: %s", args[0])
	}
}

func sessionsUsage() {
	fmt.Fprintf(os.Stderr, `Usage: trackmap sessions <list|save|load|delete> [options]

Persist tracked sessions in a SQLite database (TRACKMAP_DB).

  list                         List saved sessions
  save <ruleset> [options]     Save the given state as a new session
  load <ruleset> <session-id>  Load a session and print its reachability
  delete <session-id>          Delete a session
`)
}

func openStore() (*storage.Store, error) {
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open session database %s: %w", cfg.DBPath, err)
	}
	return store, nil
}

func sessionsList(args []string) error {
	fs := flag.NewFlagSet("sessions list", flag.ExitOnError)
	ruleset := fs.String("ruleset", "", "Only sessions for this ruleset file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	signature := ""
	if *ruleset != "" {
		w, err := parser.LoadFile(*ruleset)
		if err != nil {
			return err
		}
		signature = w.Signature()
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.ListSessions(signature)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no sessions")
		return nil
	}
	for _, sess := range list {
		note := sess.Note
		if note != "" {
			note = "  " + note
		}
		fmt.Printf("%s  %s  %s%s\n", sess.ID, sess.Ruleset,
			sess.UpdatedAt.Format("2006-01-02 15:04"), note)
	}
	return nil
}

func sessionsSave(args []string) error {
	fs := flag.NewFlagSet("sessions save", flag.ExitOnError)
	var items itemFlags
	var flags flagFlags
	fs.Var(&items, "item", "Capability to hold, as Name or Name:count (repeatable)")
	fs.Var(&flags, "flag", "Flag to set (repeatable)")
	note := fs.String("note", "", "Session note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
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

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.CreateSession(w.Signature(), *note)
	if err != nil {
		return err
	}
	flagValues := make(map[string]bool, len(flags))
	for _, name := range flags {
		flagValues[name] = true
	}
	if err := store.SaveState(id, t.Items(), flagValues); err != nil {
		return err
	}
	fmt.Printf("saved session %s\n", id)
	return nil
}

func sessionsLoad(args []string) error {
	fs := flag.NewFlagSet("sessions load", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("ruleset file and session ID required")
	}

	w, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.GetSession(fs.Arg(1))
	if err != nil {
		return err
	}
	if sess.Ruleset != w.Signature() {
		fmt.Fprintf(os.Stderr, "warning: session was saved against a different ruleset\n")
	}

	items, flagValues, err := store.LoadState(sess.ID)
	if err != nil {
		return err
	}

	t, err := restoreTracker(w, items, flagValues)
	if err != nil {
		return err
	}

	fmt.Printf("Inventory: %s\n", t.Items())
	reachable := t.ReachableRegions()
	fmt.Printf("Reachable regions (%d/%d):\n", len(reachable), len(w.Regions))
	for _, name := range reachable {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func sessionsDelete(args []string) error {
	fs := flag.NewFlagSet("sessions delete", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("session ID required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSession(fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("deleted session %s\n", fs.Arg(0))
	return nil
}
