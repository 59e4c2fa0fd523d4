// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
)

func TestOpenExisting_NotInitialized(t *testing.T) {
	root := t.TempDir()
	_, err := OpenExisting(root)
	require.Error(t, err)
	ue, ok := err.(*cerrors.UserError)
	require.True(t, ok)
	require.Equal(t, cerrors.KindNotInitialized, ue.Kind)
}

func TestEnsureIgnoreEntry_AppendsOnce(t *testing.T) {
	root := t.TempDir()
	gitignore := filepath.Join(root, ".gitignore")
	require.NoError(t, os.WriteFile(gitignore, []byte("node_modules/\n"), 0o644))

	require.NoError(t, EnsureIgnoreEntry(root))
	first, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	require.Contains(t, string(first), ".ctx/")

	require.NoError(t, EnsureIgnoreEntry(root))
	second, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestEnsureIgnoreEntry_NoFilePresent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureIgnoreEntry(root))
	_, err := os.Stat(filepath.Join(root, ".gitignore"))
	require.True(t, os.IsNotExist(err))
}
