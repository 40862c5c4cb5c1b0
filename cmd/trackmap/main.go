package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-level defaults shared by subcommands.
type Config struct {
	DBPath   string `env:"TRACKMAP_DB" envDefault:"trackmap.db"`
	LogLevel string `env:"TRACKMAP_LOG_LEVEL" envDefault:"info"`
}

var cfg Config

func main() {
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad environment: %v\n", err)
		os.Exit(1)
	}
	initLogging(cfg.LogLevel)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "reach":
		if err := reach(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "path":
		if err := path(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "snapshot":
		if err := snapshotCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "replay":
		if err := replay(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "watch":
		if err := watch(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sessions":
		if err := sessions(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("trackmap version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func initLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func printUsage() {
	fmt.Println(`trackmap - rule-gated reachability tracker

Usage:
  trackmap <command> [options]

Commands:
  validate   Check a ruleset document for structural problems
  reach      Compute the reachable regions for a tracked state
  path       Print the recorded path to a region
  snapshot   Export a stabilized snapshot as JSON
  replay     Apply a JSONL event journal and print the result
  watch      Recompute on every change to a ruleset file
  sessions   List, save, load, or delete persisted sessions
  help       Show this help message
  version    Show version information

Environment:
  TRACKMAP_DB         Session database path (default: trackmap.db)
  TRACKMAP_LOG_LEVEL  debug, info, warn, or error (default: info)

Examples:
  # Validate a ruleset
  trackmap validate ruleset.json

  # Reachable regions holding a key and a lamp
  trackmap reach ruleset.yaml --item Key --item Lamp:2

  # Path to a region
  trackmap path ruleset.json End --item Key

  # Persist the current state
  trackmap sessions save ruleset.json --item Key --note "after boss 1"

For command-specific help, run:
  trackmap <command> --help`)
}
