// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
)

// runScan requires the store to already exist and runs a pipeline pass plus
// a history mine, emitting the same summary shape as init.
func runScan(args []string) {
	fs, g := newFlagSet("scan")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent scan [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s, root := openExisting(g)
	defer s.Close()

	result := runPipelineAndHistory(s, root, g)
	emit(g, result, func() { printPipelineResult("Scanned", result) })

	ensureBackgroundWatch(root, s.Dir())
}
