// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package extract holds one syntactic extractor per supported language.
// Every extractor consumes a source buffer and produces a flat list of
// top-level symbols (with up to one level of nested children) plus a list
// of import records. Extraction is best-effort: malformed input yields
// partial results, never a panic.
package extract

import "github.com/kraklabs/ctx-agent/internal/store"

// Symbol is a pre-persistence symbol record. Children is populated for
// class-like constructs (their directly declared methods/fields) and for
// namespace-like constructs, which recurse and produce a module-kind parent.
// Parent depth never exceeds one: a Symbol's own Children never themselves
// carry Children.
type Symbol struct {
	Name string
	Kind store.SymbolKind
	StartLine int64
	EndLine int64
	Signature string
	Children []Symbol
}

// flattenNamespaceChildren collapses a namespace-like construct's directly
// nested symbols into a single flat level: any nested symbol that itself
// carries Children (a class with methods, a further-nested namespace) has
// those Children promoted to be siblings at this level instead, keeping
// parent depth at one no matter how deeply namespaces nest.
func flattenNamespaceChildren(symbols []Symbol) []Symbol {
	out := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		grandchildren := s.Children
		s.Children = nil
		out = append(out, s)
		out = append(out, grandchildren...)
	}
	return out
}

// Import is a pre-resolution dependency record.
type Import struct {
	Path string
	Kind string
	ImportedNames []string
}

// Result is what one extractor invocation returns.
type Result struct {
	Symbols []Symbol
	Imports []Import
}

// Extractor parses source content for one language.
type Extractor interface {
	Extract(content []byte) (Result, error)
}

// registry maps scan-package language tags to their extractor.
var registry = map[string]Extractor{}

func register(lang string, e Extractor) {
	registry[lang] = e
}

// For returns the extractor for lang, or nil if the language has none (it is
// still tracked by the Scanner, just symbol-less).
func For(lang string) Extractor {
	return registry[lang]
}

func init() {
	register("go", goExtractor{})
	register("typescript", tsExtractor{})
	register("javascript", tsExtractor{})
	register("python", pyExtractor{})
	register("rust", rustExtractor{})
	register("c", cFamilyExtractor{cpp: false})
	register("cpp", cFamilyExtractor{cpp: true})
	register("java", javaExtractor{})
	register("csharp", csharpExtractor{})
	register("php", scriptExtractor{lang: "php"})
	register("ruby", scriptExtractor{lang: "ruby"})
	register("shell", scriptExtractor{lang: "shell"})
}
