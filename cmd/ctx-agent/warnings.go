// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
)

// warningsResult is the JSON shape of `warnings`.
type warningsResult struct {
	Fragile []string `json:"fragile"`
	Large []string `json:"large"`
	Dead []string `json:"dead"`
	Knowledge []string `json:"knowledge"`
}

func runWarnings(args []string) {
	fs, g := newFlagSet("warnings")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent warnings [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s, root := openExisting(g)
	defer s.Close()

	health, err := s.ListFileHealth()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	var result warningsResult
	for _, h := range health {
		if h.Fragile {
			result.Fragile = append(result.Fragile, h.File.Path)
		}
		if h.Dead {
			result.Dead = append(result.Dead, h.File.Path)
		}
		if h.File.LineCount > largeFileLines {
			result.Large = append(result.Large, h.File.Path)
		}
	}

	notes, err := s.ListKnowledge(decisionsLimit)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	for _, n := range notes {
		result.Knowledge = append(result.Knowledge, n.Content)
	}

	emit(g, result, func() { printWarnings(result) })

	ensureBackgroundWatch(root, s.Dir())
}

func printWarnings(r warningsResult) {
	fmt.Println("Fragile files:")
	printList(r.Fragile)
	fmt.Println("Large files (>500 lines):")
	printList(r.Large)
	fmt.Println("Dead files:")
	printList(r.Dead)
	fmt.Println("Knowledge notes:")
	printList(r.Knowledge)
}

func printList(items []string) {
	if len(items) == 0 {
		fmt.Println(" (none)")
		return
	}
	for _, item := range items {
		fmt.Printf(" %s\n", item)
	}
}
