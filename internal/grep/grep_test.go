// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package grep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch_FindsMatchesAcrossFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n\nfunc TODO() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("package b\n\n// TODO fix this\nfunc b() {}\n"), 0o644))

	matches, err := Search(root, "TODO", 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestSearch_InvalidPattern(t *testing.T) {
	_, err := Search(t.TempDir(), "(unclosed", 0)
	require.Error(t, err)
}

func TestSearch_ClampsToResultCap(t *testing.T) {
	root := t.TempDir()
	var content string
	for i := 0; i < 300; i++ {
		content += "needle\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.md"), []byte(content), 0o644))

	matches, err := Search(root, "needle", 1000)
	require.NoError(t, err)
	require.Len(t, matches, MaxResultsCap)
}
