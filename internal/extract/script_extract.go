// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// scriptExtractor is the shared script-family extractor for PHP, Ruby, and
// Bash: classes/modules/methods plus require/require_relative/include/
// extend (Ruby) import edges.
type scriptExtractor struct {
	lang string
}

func (e scriptExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	switch e.lang {
	case "php":
		parser.SetLanguage(php.GetLanguage())
	case "ruby":
		parser.SetLanguage(ruby.GetLanguage())
	default:
		parser.SetLanguage(bash.GetLanguage())
	}
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	var res Result
	switch e.lang {
	case "php":
		walkPHP(tree.RootNode(), content, &res)
	case "ruby":
		walkRuby(tree.RootNode(), content, &res)
	default:
		walkBash(tree.RootNode(), content, &res)
	}
	return res, nil
}

// --- PHP ---

func walkPHP(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "namespace_use_declaration":
		extractPHPUse(n, src, res)
		return
	case "class_declaration", "interface_declaration", "trait_declaration":
		if s := phpTypeSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "function_definition":
		if s := phpFunctionSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	}
	if imp := phpIncludeImport(n, src); imp != nil {
		res.Imports = append(res.Imports, *imp)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkPHP(n.Child(i), src, res)
	}
}

func phpFunctionSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindFunction, StartLine: start, EndLine: end, Signature: "function " + name + text(n.ChildByFieldName("parameters"), src)}
}

func phpTypeSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	kind := store.KindClass
	if n.Type() == "interface_declaration" {
		kind = store.KindInterface
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: kind, StartLine: start, EndLine: end, Signature: string(kind) + " " + name}

	body := n.ChildByFieldName("body")
	if body == nil {
		return sym
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		if member.Type() == "method_declaration" {
			mName := text(member.ChildByFieldName("name"), src)
			if mName == "" {
				continue
			}
			start, end := span(member)
			sym.Children = append(sym.Children, Symbol{
				Name: mName, Kind: store.KindMethod, StartLine: start, EndLine: end,
				Signature: "function " + mName + text(member.ChildByFieldName("parameters"), src),
			})
		}
	}
	return sym
}

func extractPHPUse(n *sitter.Node, src []byte, res *Result) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "namespace_use_clause" {
			nameNode := c.ChildByFieldName("name")
			path := text(nameNode, src)
			res.Imports = append(res.Imports, Import{Path: path, Kind: "use", ImportedNames: []string{lastSlashOrBackslashSegment(path)}})
		}
	}
}

func phpIncludeImport(n *sitter.Node, src []byte) *Import {
	if n.Type() != "include_expression" && n.Type() != "include_once_expression" &&
		n.Type() != "require_expression" && n.Type() != "require_once_expression" {
		return nil
	}
	kind := "require"
	if strings.Contains(n.Type(), "include") {
		kind = "include"
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "string" {
			return &Import{Path: strings.Trim(text(c, src), `'"`), Kind: kind}
		}
	}
	return nil
}

func lastSlashOrBackslashSegment(s string) string {
	s = strings.ReplaceAll(s, "\\", "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// --- Ruby ---

func walkRuby(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "class":
		if s := rubyClassSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "module":
		if s := rubyModuleSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "method":
		if s := rubyMethodSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "call":
		if imp := rubyCallImport(n, src); imp != nil {
			res.Imports = append(res.Imports, *imp)
			return
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkRuby(n.Child(i), src, res)
	}
}

func rubyMethodSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	sig := "def " + name
	if params := n.ChildByFieldName("parameters"); params != nil {
		sig += text(params, src)
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindMethod, StartLine: start, EndLine: end, Signature: sig}
}

func rubyClassSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: store.KindClass, StartLine: start, EndLine: end, Signature: "class " + name}
	body := n.ChildByFieldName("body")
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			if m := body.Child(i); m.Type() == "method" {
				if ms := rubyMethodSymbol(m, src); ms != nil {
					sym.Children = append(sym.Children, *ms)
				}
			}
		}
	}
	return sym
}

func rubyModuleSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindModule, StartLine: start, EndLine: end, Signature: "module " + name}
}

func rubyCallImport(n *sitter.Node, src []byte) *Import {
	method := text(n.ChildByFieldName("method"), src)
	switch method {
	case "require", "require_relative", "include", "extend":
	default:
		return nil
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		c := args.Child(i)
		switch c.Type() {
		case "string":
			return &Import{Path: strings.Trim(text(c, src), `'"`), Kind: method}
		case "constant", "scope_resolution":
			return &Import{Path: text(c, src), Kind: method}
		}
	}
	return nil
}

// --- Bash ---

func walkBash(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "function_definition":
		if s := bashFunctionSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "command":
		if imp := bashSourceImport(n, src); imp != nil {
			res.Imports = append(res.Imports, *imp)
			return
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkBash(n.Child(i), src, res)
	}
}

func bashFunctionSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindFunction, StartLine: start, EndLine: end, Signature: name + "()"}
}

func bashSourceImport(n *sitter.Node, src []byte) *Import {
	nameNode := n.ChildByFieldName("name")
	cmd := text(nameNode, src)
	if cmd != "source" && cmd != "." {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "word" || c.Type() == "string" || c.Type() == "raw_string" {
			if c == nameNode {
				continue
			}
			return &Import{Path: strings.Trim(text(c, src), `'"`), Kind: "source"}
		}
	}
	return nil
}
