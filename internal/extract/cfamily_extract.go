// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// cFamilyExtractor handles C and C++. #include <x> and #include "x" both
// yield include-kind edges with the bare path. Qualified function names
// containing:: are classified as methods. namespace constructs (C++ only)
// recurse and produce a module-kind parent.
type cFamilyExtractor struct {
	cpp bool
}

func (e cFamilyExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	if e.cpp {
		parser.SetLanguage(cpp.GetLanguage())
	} else {
		parser.SetLanguage(c.GetLanguage())
	}
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	var res Result
	walkCFamily(tree.RootNode(), content, &res, e.cpp)
	return res, nil
}

func walkCFamily(n *sitter.Node, src []byte, res *Result, isCpp bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "preproc_include":
		extractCInclude(n, src, res)
		return
	case "function_definition":
		if s := cFunctionSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "struct_specifier":
		if s := cAggregateSymbol(n, src, store.KindStruct); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "class_specifier":
		if isCpp {
			if s := cAggregateSymbol(n, src, store.KindClass); s != nil {
				res.Symbols = append(res.Symbols, *s)
			}
			return
		}
	case "enum_specifier":
		if s := cEnumSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "namespace_definition":
		if isCpp {
			if s := cNamespaceSymbol(n, src); s != nil {
				res.Symbols = append(res.Symbols, *s)
			}
			return
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkCFamily(n.Child(i), src, res, isCpp)
	}
}

func cFunctionSymbol(n *sitter.Node, src []byte) *Symbol {
	declarator := n.ChildByFieldName("declarator")
	name, qualified := cFunctionName(declarator, src)
	if name == "" {
		return nil
	}
	kind := store.KindFunction
	if qualified {
		kind = store.KindMethod
	}
	sig := strings.TrimSpace(text(n.ChildByFieldName("type"), src)) + " " + text(declarator, src)
	start, end := span(n)
	return &Symbol{Name: name, Kind: kind, StartLine: start, EndLine: end, Signature: sig}
}

// cFunctionName walks a function_declarator to find its name, reporting
// whether the name is "::"-qualified (a C++ out-of-class method definition).
func cFunctionName(n *sitter.Node, src []byte) (name string, qualified bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "function_declarator":
		return cFunctionName(n.ChildByFieldName("declarator"), src)
	case "qualified_identifier":
		return text(n, src), true
	case "identifier", "field_identifier", "destructor_name", "operator_name":
		return text(n, src), false
	case "pointer_declarator", "reference_declarator":
		return cFunctionName(n.ChildByFieldName("declarator"), src)
	}
	return text(n, src), strings.Contains(text(n, src), "::")
}

func cAggregateSymbol(n *sitter.Node, src []byte, kind store.SymbolKind) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
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
		case "function_definition":
			if m := cFunctionSymbol(member, src); m != nil {
				m.Kind = store.KindMethod
				sym.Children = append(sym.Children, *m)
			}
		case "field_declaration":
			declNode := member.ChildByFieldName("declarator")
			fieldName := text(declNode, src)
			if fieldName == "" {
				continue
			}
			start, end := span(member)
			sym.Children = append(sym.Children, Symbol{Name: fieldName, Kind: store.KindConstant, StartLine: start, EndLine: end, Signature: text(member, src)})
		}
	}
	return sym
}

func cEnumSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindEnum, StartLine: start, EndLine: end, Signature: "enum " + name}
}

func cNamespaceSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: store.KindModule, StartLine: start, EndLine: end, Signature: "namespace " + name}

	var nested Result
	body := n.ChildByFieldName("body")
	if body != nil {
		walkCFamily(body, src, &nested, true)
	}
	sym.Children = flattenNamespaceChildren(nested.Symbols)
	return sym
}

func extractCInclude(n *sitter.Node, src []byte, res *Result) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "string_literal":
			path := strings.Trim(text(c, src), `"`)
			res.Imports = append(res.Imports, Import{Path: path, Kind: "include"})
		case "system_lib_string":
			path := strings.Trim(strings.Trim(text(c, src), "<"), ">")
			res.Imports = append(res.Imports, Import{Path: path, Kind: "include"})
		}
	}
}
