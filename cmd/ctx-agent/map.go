// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
)

// mapFileEntry is one file's row in the directory map.
type mapFileEntry struct {
	Path string `json:"path"`
	Language string `json:"language"`
	Symbols []string `json:"top_level_symbols"`
}

// mapResult is the JSON shape of `map`: a flat file list plus per-language
// totals.
type mapResult struct {
	Files []mapFileEntry `json:"files"`
	LanguageStats map[string]int64 `json:"language_stats"`
}

func runMap(args []string) {
	fs, g := newFlagSet("map")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent map [--json] [--project PATH]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s, root := openExisting(g)
	defer s.Close()

	files, err := s.ListAllFiles()
	if err != nil {
		cerrors.FatalError(err, g.JSON)
	}

	result := mapResult{LanguageStats: map[string]int64{}}
	for _, f := range files {
		result.LanguageStats[f.Language]++

		syms, err := s.ListSymbolsForFile(f.ID)
		if err != nil {
			cerrors.FatalError(err, g.JSON)
		}
		names := make([]string, 0, len(syms))
		for _, sym := range syms {
			if sym.ParentSymbolID == nil {
				names = append(names, sym.Name)
			}
		}
		result.Files = append(result.Files, mapFileEntry{Path: f.Path, Language: f.Language, Symbols: names})
	}

	emit(g, result, func() { printMap(result) })

	ensureBackgroundWatch(root, s.Dir())
}

func printMap(r mapResult) {
	byDir := map[string][]mapFileEntry{}
	for _, f := range r.Files {
		dir := path.Dir(f.Path)
		byDir[dir] = append(byDir[dir], f)
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	for _, d := range dirs {
		fmt.Printf("%s/\n", d)
		entries := byDir[d]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
		for _, f := range entries {
			fmt.Printf(" %s (%s)", path.Base(f.Path), f.Language)
			if len(f.Symbols) > 0 {
				fmt.Printf(" — %s", strings.Join(f.Symbols, ", "))
			}
			fmt.Println()
		}
	}

	fmt.Println()
	fmt.Println("Languages:")
	langs := make([]string, 0, len(r.LanguageStats))
	for l := range r.LanguageStats {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	for _, l := range langs {
		fmt.Printf(" %-12s %d\n", l, r.LanguageStats[l])
	}
}
