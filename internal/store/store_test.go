// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

//go:build cgo

package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func TestOpen_BindsProjectRoot(t *testing.T) {
	s, dir := openTestStore(t)

	var bound string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaProjectRootKey).Scan(&bound)
	require.NoError(t, err)
	require.Contains(t, bound, dir)
}

func TestOpen_WrongProjectFailsHard(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	otherDir := t.TempDir()
	// A .ctx copied from another project is simulated without moving any
	// files: the store is reopened at dir, whose meta row is bound to dir,
	// and bindProjectRoot is then asked to bind it to otherDir instead.
	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	err = s2.bindProjectRoot(otherDir)
	require.Error(t, err)
}

func TestUpsertFile_RoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	id, err := s.UpsertFile("src/main.go", "go", 100, "hash1", 10)
	require.NoError(t, err)
	require.NotZero(t, id)

	f, err := s.GetFileByPath("src/main.go")
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, "hash1", f.Hash)

	id2, err := s.UpsertFile("src/main.go", "go", 200, "hash2", 20)
	require.NoError(t, err)
	require.Equal(t, id, id2)

	f2, err := s.GetFileByPath("src/main.go")
	require.NoError(t, err)
	require.Equal(t, "hash2", f2.Hash)
	require.Equal(t, int64(20), f2.LineCount)
}

func TestRemoveFilesNotIn_CascadesSymbolsAndDeps(t *testing.T) {
	s, _ := openTestStore(t)

	id, err := s.UpsertFile("a.go", "go", 1, "h", 1)
	require.NoError(t, err)
	_, err = s.InsertSymbol(id, "Foo", KindFunction, 1, 2, "func Foo()", nil)
	require.NoError(t, err)
	require.NoError(t, s.InsertDependency(id, "fmt", "import", []string{"fmt"}))

	n, err := s.RemoveFilesNotIn([]string{"other.go"})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	f, err := s.GetFileByPath("a.go")
	require.NoError(t, err)
	require.Nil(t, f)

	syms, err := s.ListSymbolsForFile(id)
	require.NoError(t, err)
	require.Empty(t, syms)
}

func TestInsertDecision_DedupsByCommitHash(t *testing.T) {
	s, _ := openTestStore(t)

	hash := "abc123"
	require.NoError(t, s.InsertDecision("feat: add thing", SourceCommit, &hash, nil))
	require.NoError(t, s.InsertDecision("feat: add thing (dup)", SourceCommit, &hash, nil))

	n, err := s.CountDecisions()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestFileHealth_FragileAndDeadFlags(t *testing.T) {
	s, _ := openTestStore(t)

	fragileID, err := s.UpsertFile("hot.go", "go", 1, "h1", 1)
	require.NoError(t, err)
	require.NoError(t, s.UpsertFileStats(fragileID, 8, nil, 0.8, 2))

	deadID, err := s.UpsertFile("dead.go", "go", 1, "h2", 1)
	require.NoError(t, err)
	require.NoError(t, s.UpsertFileStats(deadID, 0, nil, 0.0, 0))

	for i := 0; i < 4; i++ {
		srcID, err := s.UpsertFile(("dep" + string(rune('a'+i)) + ".go"), "go", 1, "h", 1)
		require.NoError(t, err)
		require.NoError(t, s.InsertDependency(srcID, "hot", "import", nil))
	}

	unresolved, err := s.ListUnresolvedDependencies()
	require.NoError(t, err)
	for _, u := range unresolved {
		require.NoError(t, s.SetDependencyTarget(u.ID, fragileID))
	}

	health, err := s.ListFileHealth()
	require.NoError(t, err)

	byPath := make(map[string]FileHealth)
	for _, h := range health {
		byPath[h.File.Path] = h
	}

	require.True(t, byPath["hot.go"].Fragile)
	require.True(t, byPath["dead.go"].Dead)
}

func TestSearch_PrefixMatch(t *testing.T) {
	s, _ := openTestStore(t)

	id, err := s.UpsertFile("a.go", "go", 1, "h", 1)
	require.NoError(t, err)
	_, err = s.InsertSymbol(id, "GetUser", KindFunction, 1, 2, "func GetUser()", nil)
	require.NoError(t, err)
	require.NoError(t, s.RebuildSearchIndex())

	hits, err := s.Search("GetU")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "GetUser", hits[0].Name)
}
