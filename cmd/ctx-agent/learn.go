// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/store"
)

// runLearn inserts a knowledge note with source = manual.
func runLearn(args []string) {
	fs, g := newFlagSet("learn")
	file := fs.String("file", "", "Relate this note to a tracked file")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent learn <note> [--file PATH] [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ctx-agent learn <note>")
		os.Exit(1)
	}
	note := rest[0]

	s, root := openExisting(g)
	defer s.Close()

	var relatedFile *string
	if *file != "" {
		relatedFile = file
	}

	if err := s.InsertKnowledge(note, store.SourceManual, relatedFile); err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	emit(g, map[string]string{"status": "recorded"}, func() { fmt.Println("Recorded.") })

	ensureBackgroundWatch(root, s.Dir())
}
