// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package watch implements the Watcher: a recursive filesystem
// watch on the project root that debounces bursts of events and triggers a
// Pipeline pass, ignoring changes confined to the tool's own storage
// subdirectory, version control, build output, and dependency directories.
package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kraklabs/ctx-agent/internal/metrics"
	"github.com/kraklabs/ctx-agent/internal/pipeline"
	"github.com/kraklabs/ctx-agent/internal/scan"
	"github.com/kraklabs/ctx-agent/internal/store"
)

// ignoredPathSegments mirrors the Scanner's prune list for the subset that
// also governs watch-event filtering.
var ignoredPathSegments = []string{
	"/" + scan.DirName + "/",
	"/.git/",
	"/target/",
	"/node_modules/",
}

// debounceWindow is the minimum gap between two triggered pipeline passes.
const debounceWindow = time.Second

// pollTimeout mirrors the original's bounded receive: the loop wakes
// periodically even with no event, so it can be cancelled promptly.
const pollTimeout = 500 * time.Millisecond

// Run watches projectRoot until stop is closed or the watcher's event
// channel disconnects, running a Pipeline pass against s on every
// qualifying, non-debounced burst of create/modify/remove events.
func Run(s *store.Store, projectRoot string, stop <-chan struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addRecursive(w, projectRoot); err != nil {
		return err
	}

	lastRun := time.Now().Add(-debounceWindow)

	for {
		select {
		case <-stop:
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if isIgnoredPath(event.Name) {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(w, event.Name)
				}
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if time.Since(lastRun) <= debounceWindow {
				metrics.RecordWatchDebounced()
				continue
			}

			lastRun = time.Now()
			metrics.RecordWatchTriggered()
			slog.Info("watch.pass.triggered", "path", event.Name, "op", event.Op.String())
			if _, err := pipeline.Run(s, projectRoot); err != nil {
				slog.Warn("watch.pass.error", "err", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch.fsnotify.error", "err", err)

		case <-time.After(pollTimeout):
			continue
		}
	}
}

// isIgnoredPath reports whether path lies under one of the ignored
// subtrees.
// A single-path fsnotify event has exactly one affected path, so this is
// the per-path predicate the pipeline's "every path" rule reduces to.
func isIgnoredPath(path string) bool {
	normalized := filepath.ToSlash(path)
	if !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	for _, seg := range ignoredPathSegments {
		if strings.Contains(normalized, seg) {
			return true
		}
	}
	return false
}

// addRecursive registers root and every non-ignored subdirectory with w.
// fsnotify has no recursive mode; directories created later are picked up
// as Create events arrive.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (isIgnoredDir(d.Name()) || isIgnoredPath(filepath.ToSlash(path)+"/")) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func isIgnoredDir(name string) bool {
	switch name {
	case scan.DirName, ".git", "target", "node_modules":
		return true
	}
	return false
}
