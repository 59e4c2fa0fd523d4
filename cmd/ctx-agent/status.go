// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/ui"
)

// statusResult is the JSON shape of `status`.
type statusResult struct {
	ProjectRoot string `json:"project_root"`
	Files int64 `json:"files"`
	Symbols int64 `json:"symbols"`
	SymbolsByKind map[string]int64 `json:"symbols_by_kind"`
	Dependencies int64 `json:"dependencies"`
	Decisions int64 `json:"decisions"`
	Fragile int `json:"fragile_files"`
	Dead int `json:"dead_files"`
	Large int `json:"large_files"`
}

func runStatus(args []string) {
	fs, g := newFlagSet("status")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent status [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s, root := openExisting(g)
	defer s.Close()

	result := statusResult{ProjectRoot: root, SymbolsByKind: map[string]int64{}}

	files, err := s.ListAllFiles()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	result.Files = int64(len(files))

	result.Symbols, err = s.CountSymbols()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	byKind, err := s.CountSymbolsByKind()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	for kind, n := range byKind {
		result.SymbolsByKind[string(kind)] = n
	}

	result.Dependencies, err = s.CountDependencies()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	result.Decisions, err = s.CountDecisions()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	health, err := s.ListFileHealth()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	for _, h := range health {
		if h.Fragile {
			result.Fragile++
		}
		if h.Dead {
			result.Dead++
		}
		if h.File.LineCount > largeFileLines {
			result.Large++
		}
	}

	emit(g, result, func() { printStatus(result) })

	ensureBackgroundWatch(root, s.Dir())
}

// largeFileLines is the threshold past which a file is flagged "large".
const largeFileLines = 500

func printStatus(r statusResult) {
	ui.Header("ctx-agent status")
	fmt.Printf("%s %s\n", ui.Label("Project:"), ui.DimText(r.ProjectRoot))
	fmt.Printf("%s %s\n", ui.Label("Files:"), ui.CountText(int(r.Files)))
	fmt.Printf("%s %s\n", ui.Label("Symbols:"), ui.CountText(int(r.Symbols)))
	for kind, n := range r.SymbolsByKind {
		fmt.Printf(" %-12s %s\n", kind, ui.CountText(int(n)))
	}
	fmt.Printf("%s %s\n", ui.Label("Dependencies:"), ui.CountText(int(r.Dependencies)))
	fmt.Printf("%s %s\n", ui.Label("Decisions:"), ui.CountText(int(r.Decisions)))
	fmt.Println()
	ui.SubHeader("Health:")
	fmt.Printf(" fragile: %s dead: %s large: %s\n",
		ui.CountText(r.Fragile), ui.CountText(r.Dead), ui.CountText(r.Large))
}
