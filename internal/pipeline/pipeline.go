// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package pipeline runs one end-to-end scan/parse/persist/resolve/reindex
// pass: the Scanner feeds the Store, the Extractors populate
// symbols and dependency edges for changed files, the Resolver links edges
// to files, and the search index is rebuilt.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/kraklabs/ctx-agent/internal/extract"
	"github.com/kraklabs/ctx-agent/internal/metrics"
	"github.com/kraklabs/ctx-agent/internal/resolve"
	"github.com/kraklabs/ctx-agent/internal/scan"
	"github.com/kraklabs/ctx-agent/internal/store"
)

// Run executes one pipeline pass rooted at projectRoot against s.
//
// For each scanned file, the File row is upserted; unchanged hashes are
// skipped. Changed or new files have their old symbols and dependency
// edges cleared and, if their language is parseable, re-derived from the
// extractor's output. Parent symbols are persisted before their children
// so the child's parent pointer can reference a real row id: the
// extractor's in-memory symbol tree is inserted parent-first, each child
// taking its parent's newly assigned id. Extractor failure for a single file is caught and
// counted, never surfaced: the file remains tracked but symbol-less for
// this pass. After every record is processed, files that vanished from
// disk are removed (cascading their symbols and edges), the Resolver
// links unresolved edges, and the search index is fully rebuilt.
func Run(s *store.Store, projectRoot string) (result store.PipelineResult, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordPass(result.Discovered, result.Analyzed, result.Skipped, result.Removed, result.ExtractorFailures, time.Since(start).Seconds())
		slog.Info("pipeline.pass.complete",
			"discovered", result.Discovered, "analyzed", result.Analyzed,
			"skipped", result.Skipped, "removed", result.Removed,
			"extractor_failures", result.ExtractorFailures,
			"duration_ms", time.Since(start).Milliseconds())
	}()

	records, err := scan.Scan(projectRoot)
	if err != nil {
		slog.Warn("pipeline.scan.error", "root", projectRoot, "err", err)
		return result, err
	}

	result.Discovered = len(records)

	observedPaths := make([]string, 0, len(records))

	for _, rec := range records {
		observedPaths = append(observedPaths, rec.RelPath)

		existing, err := s.GetFileByPath(rec.RelPath)
		if err != nil {
			return result, err
		}

		fileID, err := s.UpsertFile(rec.RelPath, rec.Language, rec.SizeBytes, rec.Hash, rec.LineCount)
		if err != nil {
			return result, err
		}

		if existing != nil && existing.Hash == rec.Hash {
			result.Skipped++
			continue
		}

		result.Analyzed++

		if err := s.ClearSymbols(fileID); err != nil {
			return result, err
		}
		if err := s.ClearDependencies(fileID); err != nil {
			return result, err
		}

		if !scan.IsParseable(rec.Language) {
			continue
		}

		extracted, ok := runExtractor(rec.Language, []byte(rec.Content))
		if !ok {
			result.ExtractorFailures++
			slog.Debug("pipeline.extract.failed", "path", rec.RelPath, "language", rec.Language)
			continue
		}

		symCount, err := persistSymbols(s, fileID, extracted.Symbols, nil)
		if err != nil {
			return result, err
		}
		result.Symbols += symCount

		for _, imp := range extracted.Imports {
			if err := s.InsertDependency(fileID, imp.Path, imp.Kind, imp.ImportedNames); err != nil {
				return result, err
			}
			result.Imports++
		}
	}

	removed, err := s.RemoveFilesNotIn(observedPaths)
	if err != nil {
		return result, err
	}
	result.Removed = int(removed)

	if err := resolve.Resolve(s); err != nil {
		return result, err
	}

	if err := s.RebuildSearchIndex(); err != nil {
		return result, err
	}

	return result, nil
}

// runExtractor invokes the language's extractor, recovering from any panic
// so a single malformed file cannot abort the pass: extraction is
// best-effort and must be error-tolerant.
func runExtractor(language string, content []byte) (result extract.Result, ok bool) {
	ex := extract.For(language)
	if ex == nil {
		return extract.Result{}, false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	res, err := ex.Extract(content)
	if err != nil {
		return extract.Result{}, false
	}
	return res, true
}

// persistSymbols recursively inserts the symbol tree parent-before-child,
// returning the total number of symbols inserted.
func persistSymbols(s *store.Store, fileID int64, symbols []extract.Symbol, parentID *int64) (int, error) {
	count := 0
	for _, sym := range symbols {
		id, err := s.InsertSymbol(fileID, sym.Name, sym.Kind, sym.StartLine, sym.EndLine, sym.Signature, parentID)
		if err != nil {
			return count, err
		}
		count++
		if len(sym.Children) > 0 {
			childCount, err := persistSymbols(s, fileID, sym.Children, &id)
			if err != nil {
				return count, err
			}
			count += childCount
		}
	}
	return count, nil
}
