// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/graph"
)

// blastRadiusResult is the JSON shape of `blast-radius <path>`: direct and
// transitive dependents, with a risk label.
type blastRadiusResult struct {
	Path              string      `json:"path"`
	DirectDependents  []string    `json:"direct_dependents"`
	TransitiveHits    []graph.Hit `json:"transitive"`
	Risk              string      `json:"risk"`
}

func runBlastRadius(args []string) {
	fs, g := newFlagSet("blast-radius")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent blast-radius <path> [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ctx-agent blast-radius <path>")
		os.Exit(1)
	}
	target := rest[0]

	s, root := openExisting(g)
	defer s.Close()

	fileID, err := s.GetFileID(target)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	if fileID == nil {
		cerrors.FatalError(cerrors.NewInternalError("Unknown file", fmt.Sprintf("%q is not a tracked file", target), nil), g.JSON)
	}

	direct, err := graph.DirectDependents(s, *fileID)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	directPaths := make([]string, 0, len(direct))
	for _, d := range direct {
		directPaths = append(directPaths, d.Path)
	}

	hits, err := graph.BlastRadius(s, *fileID)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	result := blastRadiusResult{
		Path:             target,
		DirectDependents: directPaths,
		TransitiveHits:   hits,
		Risk:             string(graph.ClassifyRisk(len(hits))),
	}

	emit(g, result, func() {
		fmt.Printf("Blast radius of %s: %d file(s), risk=%s\n", target, len(hits), result.Risk)
		fmt.Println("Direct dependents:")
		for _, p := range directPaths {
			fmt.Printf("  %s\n", p)
		}
		fmt.Println("Transitive:")
		for _, h := range hits {
			fmt.Printf("  [depth %d] %s\n", h.Depth, h.Path)
		}
	})

	ensureBackgroundWatch(root, s.Dir())
}
