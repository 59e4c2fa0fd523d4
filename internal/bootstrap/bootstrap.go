// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package bootstrap

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/store"
)

// ignoreEntry is appended to the project's ignore file on init.
const ignoreEntry = store.DirName + "/"

// ResolveProjectRoot canonicalizes path (defaulting to the working
// directory) the same way the Store does, so callers can compare a
// requested root against the Store's bound root before opening it.
func ResolveProjectRoot(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", cerrors.NewInternalError("Cannot resolve working directory", err.Error(), err)
		}
		path = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", cerrors.NewInternalError("Cannot resolve project root", err.Error(), err)
	}
	return filepath.Clean(abs), nil
}

// OpenForInit opens (creating if absent) the store rooted at projectRoot.
// Used by `init`, which is idempotent.
func OpenForInit(projectRoot string) (*store.Store, error) {
	return store.Open(projectRoot)
}

// OpenExisting opens the store rooted at projectRoot, failing with
// NotInitialized if no store has been created there yet.
func OpenExisting(projectRoot string) (*store.Store, error) {
	if !store.Exists(projectRoot) {
		return nil, cerrors.NewNotInitializedError(projectRoot)
	}
	return store.Open(projectRoot)
}

// EnsureIgnoreEntry appends the store's hidden subdirectory to the
// project's ignore file on initialization, if one exists and does not
// already ignore it. Absence of an ignore file is not an error:
// the tool does not create version control for the user.
func EnsureIgnoreEntry(projectRoot string) error {
	path := filepath.Join(projectRoot, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	scanner := bufio.NewScanner(strings.NewReader(string(existing)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == ignoreEntry || line == store.DirName || line == "/"+store.DirName || line == "/"+ignoreEntry {
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	content := string(existing)
	prefix := ""
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		prefix = "\n"
	}
	_, err = f.WriteString(prefix + ignoreEntry + "\n")
	return err
}
