// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package main implements the ctx-agent CLI: a local codebase-intelligence
// service backed by a per-project SQLite store.
//
// Usage:
//
//	ctx-agent init                  Initialize the project store
//	ctx-agent scan                  Run a pipeline pass
//	ctx-agent map                   Directory tree with symbol summaries
//	ctx-agent status                Aggregate counts and health summary
//	ctx-agent query <term>          Symbol prefix search
//	ctx-agent grep <pattern>        Regex over file contents
//	ctx-agent blast-radius <path>   Transitive dependents of a file
//	ctx-agent decisions             List recent decisions
//	ctx-agent learn <note>          Record a knowledge note
//	ctx-agent warnings              Fragile, large, and dead files
//	ctx-agent watch                 Run the watcher until cancelled
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("CTX_AGENT_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "init":
		runInit(args)
	case "scan":
		runScan(args)
	case "map":
		runMap(args)
	case "status":
		runStatus(args)
	case "query":
		runQuery(args)
	case "grep":
		runGrep(args)
	case "blast-radius":
		runBlastRadius(args)
	case "decisions":
		runDecisions(args)
	case "learn":
		runLearn(args)
	case "warnings":
		runWarnings(args)
	case "watch":
		runWatch(args)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `ctx-agent - local codebase intelligence

Usage:
 ctx-agent <command> [options]

Commands:
  init                Initialize the project store
  scan                Run a pipeline pass
  map                 Directory tree with per-file symbol summaries
  status              Aggregate counts and health summary
  query               Symbol prefix search
  grep                Regex over file contents
  blast-radius        Direct and transitive dependents of a file
  decisions           List recent decisions
  learn               Record a knowledge note
  warnings            List fragile, large, and dead files
  watch               Run the watcher until cancelled

Global Options (accepted by every command):
  --json              Machine-readable output
  --project           Project root override (default: current directory)

Environment Variables:
  CTX_AGENT_DISABLE_AUTO_WATCH=1   Suppress background-watch spawning
`)
}
