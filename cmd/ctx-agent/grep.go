// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kraklabs/ctx-agent/internal/bootstrap"
	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/grep"
	"github.com/kraklabs/ctx-agent/internal/store"
)

// runGrep regexes over file contents using the Scanner's walk and ignore
// rules.
func runGrep(args []string) {
	fs, g := newFlagSet("grep")
	maxResults := fs.Int("max-results", grep.DefaultMaxResults, "Maximum number of matches to report")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent grep <pattern> [--max-results N] [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ctx-agent grep <pattern>")
		os.Exit(1)
	}
	pattern := rest[0]

	root, err := bootstrap.ResolveProjectRoot(g.Project)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	matches, err := grep.Search(root, pattern, *maxResults)
	if err != nil {
		cerrors.FatalError(cerrors.NewInvalidPatternError(pattern, err), g.JSON)
	}

	ensureBackgroundWatch(root, filepath.Join(root, store.DirName))

	emit(g, matches, func() {
		if len(matches) == 0 {
			fmt.Println("No matches.")
			return
		}
		for _, m := range matches {
			fmt.Printf("%s:%d: %s\n", m.Path, m.Line, m.Text)
		}
	})
}
