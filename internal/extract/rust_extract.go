// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// rustExtractor handles Rust. `use X::Y::{A, B};` emits one edge with
// path="X::Y" (the resolver re-derives path segments on top of this). A
// bodiless `mod foo;` emits both a module symbol and a mod-kind import edge
// with path "foo", since the body lives in a sibling file.
type rustExtractor struct{}

func (rustExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	var res Result
	walkRust(tree.RootNode(), content, &res)
	return res, nil
}

func walkRust(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "use_declaration":
		extractRustUse(n, src, res)
		return
	case "mod_item":
		extractRustMod(n, src, res)
		// recurse into an inline module body so its items are still captured
		if body := n.ChildByFieldName("body"); body != nil {
			walkRust(body, src, res)
		}
		return
	case "function_item":
		if s := rustFunctionSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "struct_item":
		if s := rustStructSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "enum_item":
		if s := rustEnumSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "trait_item":
		if s := rustTraitSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "impl_item":
		extractRustImpl(n, src, res)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkRust(n.Child(i), src, res)
	}
}

func rustFunctionSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	sig := "fn " + name + text(n.ChildByFieldName("parameters"), src)
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		sig += " -> " + text(rt, src)
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindFunction, StartLine: start, EndLine: end, Signature: sig}
}

func rustStructSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: store.KindStruct, StartLine: start, EndLine: end, Signature: "struct " + name}
	body := n.ChildByFieldName("body")
	if body != nil && body.Type() == "field_declaration_list" {
		for i := 0; i < int(body.ChildCount()); i++ {
			field := body.Child(i)
			if field.Type() != "field_declaration" {
				continue
			}
			nameNode := field.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			start, end := span(field)
			sym.Children = append(sym.Children, Symbol{
				Name: text(nameNode, src), Kind: store.KindConstant,
				StartLine: start, EndLine: end, Signature: text(field, src),
			})
		}
	}
	return sym
}

func rustEnumSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindEnum, StartLine: start, EndLine: end, Signature: "enum " + name}
}

func rustTraitSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindInterface, StartLine: start, EndLine: end, Signature: "trait " + name}
}

// extractRustImpl flattens `impl Type { fn... }` blocks to top-level method
// symbols named `Type::method`, with no parent symbol, so the type itself
// (already emitted by its struct/enum declaration) is not declared twice.
func extractRustImpl(n *sitter.Node, src []byte, res *Result) {
	typeNode := n.ChildByFieldName("type")
	typeName := text(typeNode, src)
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		item := body.Child(i)
		if item.Type() != "function_item" {
			continue
		}
		name := text(item.ChildByFieldName("name"), src)
		if name == "" {
			continue
		}
		sig := "fn " + typeName + "::" + name + text(item.ChildByFieldName("parameters"), src)
		start, end := span(item)
		res.Symbols = append(res.Symbols, Symbol{Name: typeName + "::" + name, Kind: store.KindMethod, StartLine: start, EndLine: end, Signature: sig})
	}
}

func extractRustMod(n *sitter.Node, src []byte, res *Result) {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return
	}
	start, end := span(n)
	res.Symbols = append(res.Symbols, Symbol{Name: name, Kind: store.KindModule, StartLine: start, EndLine: end, Signature: "mod " + name})
	if n.ChildByFieldName("body") == nil {
		res.Imports = append(res.Imports, Import{Path: name, Kind: "mod", ImportedNames: []string{name}})
	}
}

// extractRustUse flattens `use a::b::{C, D};` to one edge with
// path="a::b" and imported names [C, D].
func extractRustUse(n *sitter.Node, src []byte, res *Result) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "scoped_use_list":
			pathNode := c.ChildByFieldName("path")
			base := text(pathNode, src)
			listNode := c.ChildByFieldName("list")
			var names []string
			if listNode != nil {
				for j := 0; j < int(listNode.ChildCount()); j++ {
					item := listNode.Child(j)
					switch item.Type() {
					case "identifier", "scoped_identifier":
						names = append(names, text(item, src))
					case "self":
						names = append(names, "self")
					}
				}
			}
			res.Imports = append(res.Imports, Import{Path: base, Kind: "use", ImportedNames: names})
		case "use_as_clause":
			pathNode := c.ChildByFieldName("path")
			aliasNode := c.ChildByFieldName("alias")
			full := text(pathNode, src)
			base, last := splitRustPath(full)
			alias := text(aliasNode, src)
			res.Imports = append(res.Imports, Import{Path: base, Kind: "use", ImportedNames: []string{alias + "=" + last}})
		case "use_wildcard":
			pathNode := c.ChildByFieldName("path")
			base := text(pathNode, src)
			res.Imports = append(res.Imports, Import{Path: base, Kind: "use", ImportedNames: []string{"*"}})
		case "scoped_identifier", "identifier":
			full := text(c, src)
			base, last := splitRustPath(full)
			res.Imports = append(res.Imports, Import{Path: base, Kind: "use", ImportedNames: []string{last}})
		}
	}
}

func splitRustPath(full string) (base, last string) {
	idx := strings.LastIndex(full, "::")
	if idx < 0 {
		return "", full
	}
	return full[:idx], full[idx+2:]
}
