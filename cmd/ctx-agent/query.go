// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
)

// runQuery performs a symbol prefix search.
func runQuery(args []string) {
	fs, g := newFlagSet("query")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent query <term> [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ctx-agent query <term>")
		os.Exit(1)
	}
	term := rest[0]

	s, root := openExisting(g)
	defer s.Close()

	hits, err := s.Search(term)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	emit(g, hits, func() {
		if len(hits) == 0 {
			fmt.Println("No matches.")
			return
		}
		for _, h := range hits {
			fmt.Printf("%s %s:%s %s\n", h.Name, h.Path, h.Kind, h.Signature)
		}
	})

	ensureBackgroundWatch(root, s.Dir())
}
