// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// javaExtractor handles Java. import directives become import-kind edges.
// Classes/interfaces/enums capture their directly declared methods and
// fields; deeper nesting is flattened.
type javaExtractor struct{}

func (javaExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	var res Result
	walkJava(tree.RootNode(), content, &res)
	return res, nil
}

func walkJava(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "import_declaration":
		extractJavaImport(n, src, res)
		return
	case "class_declaration":
		if s := javaTypeSymbol(n, src, store.KindClass, "class"); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "interface_declaration":
		if s := javaTypeSymbol(n, src, store.KindInterface, "interface"); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "enum_declaration":
		if s := javaTypeSymbol(n, src, store.KindEnum, "enum"); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkJava(n.Child(i), src, res)
	}
}

func javaTypeSymbol(n *sitter.Node, src []byte, kind store.SymbolKind, keyword string) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: kind, StartLine: start, EndLine: end, Signature: keyword + " " + name}

	body := n.ChildByFieldName("body")
	if body == nil {
		return sym
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		switch member.Type() {
		case "method_declaration", "constructor_declaration":
			if m := javaMethodSymbol(member, src); m != nil {
				sym.Children = append(sym.Children, *m)
			}
		case "field_declaration":
			sym.Children = append(sym.Children, javaFieldSymbols(member, src)...)
		}
	}
	return sym
}

func javaMethodSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	typeStr := text(n.ChildByFieldName("type"), src)
	sig := strings.TrimSpace(typeStr + " " + name + text(n.ChildByFieldName("parameters"), src))
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindMethod, StartLine: start, EndLine: end, Signature: sig}
}

func javaFieldSymbols(n *sitter.Node, src []byte) []Symbol {
	var out []Symbol
	start, end := span(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		name := text(c.ChildByFieldName("name"), src)
		if name == "" {
			continue
		}
		out = append(out, Symbol{Name: name, Kind: store.KindConstant, StartLine: start, EndLine: end, Signature: text(n, src)})
	}
	return out
}

func extractJavaImport(n *sitter.Node, src []byte, res *Result) {
	pathNode := n.Child(1)
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "scoped_identifier" || n.Child(i).Type() == "identifier" {
			pathNode = n.Child(i)
		}
	}
	path := text(pathNode, src)
	wildcard := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "asterisk" {
			wildcard = true
		}
	}
	names := []string{lastDotSegment(path)}
	if wildcard {
		names = []string{"*"}
	}
	res.Imports = append(res.Imports, Import{Path: path, Kind: "import", ImportedNames: names})
}
