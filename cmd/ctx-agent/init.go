// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/kraklabs/ctx-agent/internal/bootstrap"
	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/history"
	"github.com/kraklabs/ctx-agent/internal/migrate"
	"github.com/kraklabs/ctx-agent/internal/pipeline"
	"github.com/kraklabs/ctx-agent/internal/store"
	"github.com/kraklabs/ctx-agent/internal/ui"
)

// initResult is the JSON shape of `init` (and `scan`, which shares it).
type initResult struct {
	Discovered int `json:"discovered"`
	Analyzed int `json:"analyzed"`
	Skipped int `json:"skipped"`
	Removed int `json:"removed"`
	Symbols int `json:"symbols"`
	Imports int `json:"imports"`
	ExtractorFailures int `json:"extractor_failures"`
	NotAGitRepo bool `json:"not_a_git_repo,omitempty"`
	CommitsWalked int `json:"commits_walked,omitempty"`
	Decisions int `json:"decisions_found,omitempty"`
}

// runInit ensures the store exists, runs a full pipeline pass and history
// mine, and appends the ignore-file entry if applicable. Idempotent: running
// init again behaves like scan.
func runInit(args []string) {
	fs, g := newFlagSet("init")
	legacyImport := fs.String("import-legacy", "", "Import decisions from a pre-database YAML export")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent init [--json] [--project PATH] [--import-legacy PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	root, err := bootstrap.ResolveProjectRoot(g.Project)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	s, err := bootstrap.OpenForInit(root)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	defer s.Close()

	if err := bootstrap.EnsureIgnoreEntry(root); err != nil {
		fmt.Fprintf(os.Stderr, "note: could not update ignore file: %v\n", err)
	}

	if *legacyImport != "" {
		count, err := migrate.ImportYAML(s, *legacyImport)
		if err != nil {
			cerrors.FatalError(cerrors.NewInternalError("Legacy import failed", err.Error(), err), g.JSON)
		}
		ui.Successf("imported %s legacy decision(s) from %s", ui.CountText(count), *legacyImport)
	}

	result := runPipelineAndHistory(s, root, g)
	emit(g, result, func() { printPipelineResult("Initialized", result) })

	ensureBackgroundWatch(root, s.Dir())
}

func runPipelineAndHistory(s *store.Store, root string, g *globalFlags) initResult {
	pr, err := pipeline.Run(s, root)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	hr, err := history.Mine(s, root)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	return initResult{
		Discovered: pr.Discovered,
		Analyzed: pr.Analyzed,
		Skipped: pr.Skipped,
		Removed: pr.Removed,
		Symbols: pr.Symbols,
		Imports: pr.Imports,
		ExtractorFailures: pr.ExtractorFailures,
		NotAGitRepo: hr.NotARepository,
		CommitsWalked: hr.CommitsWalked,
		Decisions: hr.DecisionsFound,
	}
}

func printPipelineResult(verb string, r initResult) {
	ui.Successf("%s: %s discovered, %s analyzed, %s skipped, %s removed",
		verb, ui.CountText(r.Discovered), ui.CountText(r.Analyzed), ui.CountText(r.Skipped), ui.CountText(r.Removed))
	fmt.Printf(" %s %s %s %s %s %s\n",
		ui.Label("symbols:"), ui.CountText(r.Symbols),
		ui.Label("imports:"), ui.CountText(r.Imports),
		ui.Label("extractor failures:"), ui.CountText(r.ExtractorFailures))
	if r.NotAGitRepo {
		ui.Warning("history: not a git repository")
	} else {
		fmt.Printf(" %s %s commits walked, %s decisions found\n",
			ui.Label("history:"), ui.CountText(r.CommitsWalked), ui.CountText(r.Decisions))
	}
}
