// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

//go:build cgo

package graph

import (
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

func link(t *testing.T, s *store.Store, fromPath, toPath string, toID int64) {
	t.Helper()
	fromID, err := s.UpsertFile(fromPath, "go", 1, fromPath, 1)
	require.NoError(t, err)
	require.NoError(t, s.InsertDependency(fromID, toPath, "import", nil))
	unresolved, err := s.ListUnresolvedDependencies()
	require.NoError(t, err)
	for _, u := range unresolved {
		if u.FromPath == fromPath {
			require.NoError(t, s.SetDependencyTarget(u.ID, toID))
		}
	}
}

func TestBlastRadius_OrdersByDepth(t *testing.T) {
	s := openTestStore(t)

	rootID, err := s.UpsertFile("root.go", "go", 1, "h", 1)
	require.NoError(t, err)

	link(t, s, "mid.go", "root.go", rootID)
	midID, err := s.GetFileID("mid.go")
	require.NoError(t, err)
	require.NotNil(t, midID)

	link(t, s, "leaf.go", "mid.go", *midID)

	hits, err := BlastRadius(s, rootID)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	require.Equal(t, 1, hits[0].Depth)
	require.Equal(t, 2, hits[1].Depth)
	require.Equal(t, "mid.go", hits[0].Path)
}

func TestBlastRadius_ExcludesStartAndCycles(t *testing.T) {
	s := openTestStore(t)
	rootID, err := s.UpsertFile("root.go", "go", 1, "h", 1)
	require.NoError(t, err)
	link(t, s, "root.go", "root.go", rootID)

	hits, err := BlastRadius(s, rootID)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestClassifyRisk(t *testing.T) {
	require.Equal(t, RiskLow, ClassifyRisk(0))
	require.Equal(t, RiskMedium, ClassifyRisk(5))
	require.Equal(t, RiskHigh, ClassifyRisk(20))
	require.Equal(t, RiskCritical, ClassifyRisk(21))
}
