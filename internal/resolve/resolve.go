// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package resolve turns language-specific import strings into file-identity
// edges by generating ordered path candidates.
package resolve

import (
	"path"
	"strings"
	"unicode"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// knownSuffixes is the closed set of source-file/mod/index suffixes tried
// against every candidate base.
var knownSuffixes = []string{
	".rs", "/mod.rs",
	".ts", ".tsx", ".js", ".jsx",
	".py", ".go", ".java", ".php", ".rb", ".cs", ".c", ".cpp",
	"/index.ts", "/index.tsx", "/index.js", "/index.jsx",
}

// Resolve walks every dependency edge with a null target and sets it to the
// first candidate path that exists in the store.
func Resolve(s *store.Store) error {
	unresolved, err := s.ListUnresolvedDependencies()
	if err != nil {
		return err
	}
	for _, u := range unresolved {
		for _, candidate := range Candidates(u.FromPath, u.ToPath) {
			id, err := s.GetFileID(candidate)
			if err != nil {
				return err
			}
			if id != nil {
				if err := s.SetDependencyTarget(u.ID, *id); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

// Candidates generates the ordered, deduplicated list of project-relative
// paths a raw import target might resolve to, given the importing file's
// own path.
func Candidates(fromFile, rawTarget string) []string {
	target := normalizeImportTarget(rawTarget)
	if target == "" {
		return nil
	}

	fromDir := path.Dir(fromFile)
	if fromDir == "." {
		fromDir = ""
	}
	targetSlash := strings.ReplaceAll(target, "::", "/")

	var candidates []string
	seen := map[string]bool{}

	switch {
	case strings.HasPrefix(target, "crate::"):
		rel := strings.ReplaceAll(strings.TrimPrefix(target, "crate::"), "::", "/")
		addModuleCandidates(&candidates, seen, joinSlash("src", rel))
	case strings.HasPrefix(target, "self::"):
		rel := strings.ReplaceAll(strings.TrimPrefix(target, "self::"), "::", "/")
		addModuleCandidates(&candidates, seen, joinSlash(fromDir, rel))
	case strings.HasPrefix(target, "super::"):
		rel := strings.ReplaceAll(strings.TrimPrefix(target, "super::"), "::", "/")
		parent := path.Dir(fromDir)
		if parent == "." {
			parent = ""
		}
		addModuleCandidates(&candidates, seen, joinSlash(parent, rel))
	default:
		addModuleCandidates(&candidates, seen, joinSlash(fromDir, targetSlash))
		addModuleCandidates(&candidates, seen, joinSlash("src", targetSlash))
	}

	addCandidate(&candidates, seen, target)
	addCandidate(&candidates, seen, targetSlash)
	addModuleCandidates(&candidates, seen, targetSlash)

	return candidates
}

func joinSlash(base, rel string) string {
	if base == "" {
		return rel
	}
	if rel == "" {
		return base
	}
	return base + "/" + rel
}

func addCandidate(candidates *[]string, seen map[string]bool, p string) {
	if p == "" {
		return
	}
	normalized := strings.ReplaceAll(p, `\`, "/")
	if !seen[normalized] {
		seen[normalized] = true
		*candidates = append(*candidates, normalized)
	}
}

func addModuleCandidates(candidates *[]string, seen map[string]bool, base string) {
	if base == "" {
		return
	}
	for _, suffix := range knownSuffixes {
		addCandidate(candidates, seen, base+suffix)
	}
}

// normalizeImportTarget strips trailing punctuation, alias/import-list
// clauses, and a trailing concrete-symbol-looking segment.
func normalizeImportTarget(raw string) string {
	target := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ";"))
	if target == "" {
		return ""
	}

	if left, _, ok := cutOnce(target, " as "); ok {
		target = strings.TrimSpace(left)
	}
	if left, _, ok := cutOnce(target, "{"); ok {
		target = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(left), "::"))
	}
	if left, _, ok := cutOnce(target, ","); ok {
		target = strings.TrimSpace(left)
	}
	if target == "" {
		return ""
	}

	var parts []string
	for _, p := range strings.Split(target, "::") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	last := parts[len(parts)-1]
	isSymbolName := last == "*" || (len(last) > 0 && unicode.IsUpper(rune(last[0])))
	if isSymbolName && len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "::")
}

func cutOnce(s, sep string) (before, after string, found bool) {
	idx := strings.Index(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}
