// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImportTarget(t *testing.T) {
	assert.Equal(t, "anyhow", normalizeImportTarget("anyhow::{Context, Result};"))
	assert.Equal(t, "crate::db", normalizeImportTarget("crate::db::Database"))
	assert.Equal(t, "parser", normalizeImportTarget("parser::{parse_file, ExtractedSymbol}"))
}

func TestCandidates_ModuleForms(t *testing.T) {
	candidates := Candidates("src/main.rs", "crate::db::Database")
	assert.Contains(t, candidates, "src/db/mod.rs")

	selfCandidates := Candidates("src/analyzer/mod.rs", "self::parser")
	assert.Contains(t, selfCandidates, "src/analyzer/parser/mod.rs")
}

func TestCandidates_SuperForm(t *testing.T) {
	candidates := Candidates("src/analyzer/graph.rs", "super::db")
	assert.Contains(t, candidates, "src/db/mod.rs")
}

func TestCandidates_RelativeFallback(t *testing.T) {
	candidates := Candidates("src/main.go", "util")
	assert.Contains(t, candidates, "src/util.go")
}

func TestNormalizeImportTarget_Empty(t *testing.T) {
	assert.Equal(t, "", normalizeImportTarget(";"))
	assert.Equal(t, "", normalizeImportTarget("  "))
}
