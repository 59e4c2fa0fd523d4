// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/ctx-agent/internal/bootstrap"
	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/output"
	"github.com/kraklabs/ctx-agent/internal/store"
	"github.com/kraklabs/ctx-agent/internal/watch"
)

// globalFlags holds the --json and --project flags every command accepts.
type globalFlags struct {
	JSON bool
	Project string
}

// newFlagSet builds a pflag.FlagSet for name, pre-registering the global
// flags, and returns both so the caller can add command-specific flags
// before parsing.
func newFlagSet(name string) (*flag.FlagSet, *globalFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	g := &globalFlags{}
	fs.BoolVar(&g.JSON, "json", false, "Machine-readable output")
	fs.StringVar(&g.Project, "project", "", "Project root override (default: current directory)")
	return fs, g
}

// openExisting resolves the project root and opens its store, exiting with
// the command surface's error taxonomy on failure.
func openExisting(g *globalFlags) (*store.Store, string) {
	root, err := bootstrap.ResolveProjectRoot(g.Project)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	s, err := bootstrap.OpenExisting(root)
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}
	return s, root
}

// emit writes v as indented JSON (machine mode) or runs human to print
// text mode.
func emit(g *globalFlags, v any, human func()) {
	if g.JSON {
		_ = output.JSON(v)
		return
	}
	human()
}

// ensureBackgroundWatch opportunistically spawns a detached watcher for
// root unless disabled. Failure is non-fatal: it is not part of
// the invoked command's contract.
func ensureBackgroundWatch(root string, ctxDir string) {
	if err := watch.SpawnIfNeeded(root, ctxDir); err != nil {
		fmt.Fprintf(os.Stderr, "note: could not start background watcher: %v\n", err)
	}
}
