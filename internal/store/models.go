// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

import "time"

// SymbolKind is a closed tagged union of the symbol kinds a syntactic
// extractor can produce. Language tags are not typed this way: they are
// plain strings (File.Language) drawn from the Scanner's extension map.
type SymbolKind string

const (
	KindFunction SymbolKind = "function"
	KindMethod SymbolKind = "method"
	KindClass SymbolKind = "class"
	KindStruct SymbolKind = "struct"
	KindInterface SymbolKind = "interface"
	KindEnum SymbolKind = "enum"
	KindConstant SymbolKind = "constant"
	KindTypeAlias SymbolKind = "type-alias"
	KindModule SymbolKind = "module"
)

// File is a tracked source file.
type File struct {
	ID int64
	Path string
	Language string
	SizeBytes int64
	Hash string
	LineCount int64
	LastAnalyzed time.Time
}

// Symbol is a named declaration extracted from a File.
type Symbol struct {
	ID int64
	FileID int64
	Name string
	Kind SymbolKind
	StartLine int64
	EndLine int64
	Signature string
	ParentSymbolID *int64
}

// Dependency is a directed edge from a file to an import target, possibly
// resolved to another file.
type Dependency struct {
	ID int64
	FromFileID int64
	ToPath string
	ToFileID *int64
	Kind string
	ImportedNames []string
}

// DecisionSource distinguishes commit-derived decisions from manual notes.
type DecisionSource string

const (
	SourceCommit DecisionSource = "commit"
	SourceManual DecisionSource = "manual"
)

// Decision is a recorded change in intent.
type Decision struct {
	ID int64
	Timestamp time.Time
	Description string
	Source DecisionSource
	CommitHash *string
	RelatedFiles []string
}

// Knowledge is a free-form note.
type Knowledge struct {
	ID int64
	Content string
	Source DecisionSource
	RelatedFile *string
	Timestamp time.Time
}

// FileStats is the one-to-one churn record for a File.
type FileStats struct {
	FileID int64
	CommitCount int64
	LastModified *time.Time
	ChurnScore float64
	Contributors int64
}

// FileHealth is the derived join of File, FileStats, and incoming-edge count
// used by the warnings and status commands.
type FileHealth struct {
	File File
	Stats *FileStats
	IncomingEdgeCount int64
	Fragile bool
	Dead bool
}

// SearchHit is one row of a symbol search result.
type SearchHit struct {
	Name string
	Path string
	Kind SymbolKind
	Signature string
}

// PipelineResult summarizes one Pipeline pass.
type PipelineResult struct {
	Discovered int
	Analyzed int
	Skipped int
	Removed int
	Symbols int
	Imports int
	ExtractorFailures int
}
