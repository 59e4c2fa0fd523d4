// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
)

// decisionsLimit caps how many recent decisions are listed by default.
const decisionsLimit = 20

// runDecisions lists recent decisions.
func runDecisions(args []string) {
	fs, g := newFlagSet("decisions")
	limit := fs.Int("limit", decisionsLimit, "Maximum number of decisions to list")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent decisions [--limit N] [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s, root := openExisting(g)
	defer s.Close()

	decisions, err := s.ListDecisions(*limit)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	emit(g, decisions, func() {
		if len(decisions) == 0 {
			fmt.Println("No decisions recorded.")
			return
		}
		for _, d := range decisions {
			fmt.Printf("[%s] (%s) %s\n", d.Timestamp.Format("2006-01-02 15:04"), d.Source, d.Description)
			if d.CommitHash != nil {
				fmt.Printf(" commit: %s\n", *d.CommitHash)
			}
			if len(d.RelatedFiles) > 0 {
				fmt.Printf(" files: %v\n", d.RelatedFiles)
			}
		}
	})

	ensureBackgroundWatch(root, s.Dir())
}
