// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// goExtractor handles Go source. Grouped import lists flatten to individual
// edges; blank/dot/aliased imports are preserved in the bound-names list.
// Methods carry the receiver in the signature string.
type goExtractor struct{}

func (goExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var res Result
	walkGoNode(root, content, &res)
	return res, nil
}

func walkGoNode(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "import_declaration":
		extractGoImportDecl(n, src, res)
	case "function_declaration":
		if s := goFunctionSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "method_declaration":
		if s := goMethodSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "type_declaration":
		extractGoTypeDecl(n, src, res)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkGoNode(n.Child(i), src, res)
	}
}

func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return string(src[n.StartByte():n.EndByte()])
}

func span(n *sitter.Node) (int64, int64) {
	return int64(n.StartPoint().Row) + 1, int64(n.EndPoint().Row) + 1
}

func goFunctionSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	params := text(n.ChildByFieldName("parameters"), src)
	result := text(n.ChildByFieldName("result"), src)
	sig := "func " + name + params
	if result != "" {
		sig += " " + result
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindFunction, StartLine: start, EndLine: end, Signature: sig}
}

func goMethodSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	receiver := text(n.ChildByFieldName("receiver"), src)
	params := text(n.ChildByFieldName("parameters"), src)
	result := text(n.ChildByFieldName("result"), src)
	sig := "func " + receiver + " " + name + params
	if result != "" {
		sig += " " + result
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindMethod, StartLine: start, EndLine: end, Signature: sig}
}

func extractGoTypeDecl(n *sitter.Node, src []byte, res *Result) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "type_spec":
			if s := goTypeSpecSymbol(child, src); s != nil {
				res.Symbols = append(res.Symbols, *s)
			}
		case "type_spec_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Type() == "type_spec" {
					if s := goTypeSpecSymbol(spec, src); s != nil {
						res.Symbols = append(res.Symbols, *s)
					}
				}
			}
		}
	}
}

func goTypeSpecSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	typeNode := n.ChildByFieldName("type")
	var kind store.SymbolKind
	var children []Symbol
	switch {
	case typeNode != nil && typeNode.Type() == "struct_type":
		kind = store.KindStruct
		children = goStructFields(typeNode, src)
	case typeNode != nil && typeNode.Type() == "interface_type":
		kind = store.KindInterface
	default:
		kind = store.KindTypeAlias
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: kind, StartLine: start, EndLine: end, Signature: text(n, src), Children: children}
}

func goStructFields(structType *sitter.Node, src []byte) []Symbol {
	var out []Symbol
	body := structType.ChildByFieldName("body")
	if body == nil {
		return out
	}
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
		out = append(out, Symbol{
			Name: text(nameNode, src), Kind: store.KindConstant,
			StartLine: start, EndLine: end, Signature: text(field, src),
		})
	}
	return out
}

func extractGoImportDecl(n *sitter.Node, src []byte, res *Result) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "import_spec":
			if imp := goImportSpec(child, src); imp != nil {
				res.Imports = append(res.Imports, *imp)
			}
		case "import_spec_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Type() == "import_spec" {
					if imp := goImportSpec(spec, src); imp != nil {
						res.Imports = append(res.Imports, *imp)
					}
				}
			}
		}
	}
}

// goImportSpec binds the name field: absent for a plain import (bound name
// defaults to the path's last segment), "dot" for a dot-import (wildcard),
// or the blank identifier / alias text otherwise.
func goImportSpec(n *sitter.Node, src []byte) *Import {
	pathNode := n.ChildByFieldName("path")
	if pathNode == nil {
		return nil
	}
	path := strings.Trim(text(pathNode, src), `"`)

	var names []string
	nameNode := n.ChildByFieldName("name")
	switch {
	case nameNode == nil:
		names = []string{lastSlashSegment(path)}
	case nameNode.Type() == "dot":
		names = []string{"*"}
	default:
		names = []string{text(nameNode, src)}
	}
	return &Import{Path: path, Kind: "import", ImportedNames: names}
}

func lastSlashSegment(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
