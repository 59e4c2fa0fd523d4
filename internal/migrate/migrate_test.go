// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

//go:build cgo

package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ctx-agent/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestImportYAML_InsertsQualifyingDecisions(t *testing.T) {
	s := openTestStore(t)

	yamlPath := filepath.Join(t.TempDir(), "legacy.yaml")
	content := `
decisions:
  - description: "switch to SQLite for storage"
    commit_hash: "abc123"
    related_files:
      - internal/store/store.go
  - description: "  "
    commit_hash: "def456"
`
	require.NoError(t, os.WriteFile(yamlPath, []byte(content), 0o644))

	count, err := ImportYAML(s, yamlPath)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	decisions, err := s.ListDecisions(10)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	require.Equal(t, "switch to SQLite for storage", decisions[0].Description)
	require.Equal(t, store.SourceCommit, decisions[0].Source)
}

func TestImportYAML_MissingFile(t *testing.T) {
	s := openTestStore(t)

	_, err := ImportYAML(s, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
