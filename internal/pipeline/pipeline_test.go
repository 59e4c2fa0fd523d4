// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

//go:build cgo

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ctx-agent/internal/store"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_DiscoversAnalyzesAndExtracts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, root, "util.go", "package main\n\nfunc helper() int { return 1 }\n")

	s, err := store.Open(root)
	require.NoError(t, err)
	defer s.Close()

	result, err := Run(s, root)
	require.NoError(t, err)
	require.Equal(t, 2, result.Discovered)
	require.Equal(t, 2, result.Analyzed)
	require.Equal(t, 0, result.Skipped)
	require.GreaterOrEqual(t, result.Symbols, 2)

	count, err := s.CountSymbols()
	require.NoError(t, err)
	require.GreaterOrEqual(t, count, int64(2))
}

func TestRun_SecondPassSkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	s, err := store.Open(root)
	require.NoError(t, err)
	defer s.Close()

	_, err = Run(s, root)
	require.NoError(t, err)

	second, err := Run(s, root)
	require.NoError(t, err)
	require.Equal(t, 0, second.Analyzed)
	require.Equal(t, 1, second.Skipped)
}

func TestRun_RemovesVanishedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, root, "gone.go", "package main\n\nfunc gone() {}\n")

	s, err := store.Open(root)
	require.NoError(t, err)
	defer s.Close()

	_, err = Run(s, root)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "gone.go")))

	result, err := Run(s, root)
	require.NoError(t, err)
	require.Equal(t, 1, result.Removed)

	f, err := s.GetFileByPath("gone.go")
	require.NoError(t, err)
	require.Nil(t, f)
}

func TestRun_RustUseResolvesToSiblingModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.rs", "use crate::db::Database;\n\nfn main() {}\n")
	writeFile(t, root, "src/db/mod.rs", "pub struct Database;\n")

	s, err := store.Open(root)
	require.NoError(t, err)
	defer s.Close()

	_, err = Run(s, root)
	require.NoError(t, err)

	fileID, err := s.GetFileID("src/main.rs")
	require.NoError(t, err)
	require.NotNil(t, fileID)

	deps, err := s.ListDependenciesOf(*fileID)
	require.NoError(t, err)
	require.NotEmpty(t, deps)

	found := false
	for _, d := range deps {
		if d.ToPath == "crate::db" {
			require.NotNil(t, d.ToFileID)
			found = true
		}
	}
	require.True(t, found)
}
