// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// csharpExtractor handles C#. using directives become import-kind edges;
// namespaces recurse and produce a module-kind parent.
type csharpExtractor struct{}

func (csharpExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	var res Result
	walkCSharp(tree.RootNode(), content, &res)
	return res, nil
}

func walkCSharp(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "using_directive":
		extractCSharpUsing(n, src, res)
		return
	case "namespace_declaration":
		if s := csharpNamespaceSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "class_declaration", "struct_declaration", "interface_declaration", "enum_declaration":
		if s := csharpTypeSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkCSharp(n.Child(i), src, res)
	}
}

func csharpNamespaceSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: store.KindModule, StartLine: start, EndLine: end, Signature: "namespace " + name}

	var nested Result
	body := n.ChildByFieldName("body")
	if body != nil {
		walkCSharp(body, src, &nested)
	}
	sym.Children = flattenNamespaceChildren(nested.Symbols)
	return sym
}

func csharpTypeSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	kind := store.KindClass
	switch n.Type() {
	case "struct_declaration":
		kind = store.KindStruct
	case "interface_declaration":
		kind = store.KindInterface
	case "enum_declaration":
		kind = store.KindEnum
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: kind, StartLine: start, EndLine: end, Signature: string(kind) + " " + name}

	body := n.ChildByFieldName("body")
	if body == nil {
		return sym
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		switch member.Type() {
		case "method_declaration", "constructor_declaration":
			mName := text(member.ChildByFieldName("name"), src)
			if mName == "" {
				continue
			}
			start, end := span(member)
			sig := text(member.ChildByFieldName("type"), src) + " " + mName + text(member.ChildByFieldName("parameters"), src)
			sym.Children = append(sym.Children, Symbol{Name: mName, Kind: store.KindMethod, StartLine: start, EndLine: end, Signature: sig})
		case "field_declaration":
			start, end := span(member)
			sym.Children = append(sym.Children, Symbol{Name: text(member, src), Kind: store.KindConstant, StartLine: start, EndLine: end, Signature: text(member, src)})
		}
	}
	return sym
}

func extractCSharpUsing(n *sitter.Node, src []byte, res *Result) {
	var nameNode *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "qualified_name" || c.Type() == "identifier" {
			nameNode = c
		}
	}
	path := text(nameNode, src)
	if path == "" {
		return
	}
	res.Imports = append(res.Imports, Import{Path: path, Kind: "using", ImportedNames: []string{lastDotSegment(path)}})
}
