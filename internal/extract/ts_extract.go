// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// tsExtractor handles TypeScript and JavaScript. Re-exports are emitted as
// import edges of kind re-export. Arrow-function-valued lexical
// declarations are classified as functions, other lexical declarations as
// constants. export-prefixed signatures retain the export prefix (spec
// §4.3).
type tsExtractor struct{}

func (tsExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	var res Result
	walkTS(tree.RootNode(), content, &res, false)
	return res, nil
}

func walkTS(n *sitter.Node, src []byte, res *Result, exported bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "import_statement":
		extractTSImport(n, src, res)
		return
	case "export_statement":
		extractTSExport(n, src, res)
		return
	case "function_declaration":
		if s := tsFunctionSymbol(n, src, exported); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "class_declaration":
		if s := tsClassSymbol(n, src, exported); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "interface_declaration":
		if s := tsInterfaceSymbol(n, src, exported); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "type_alias_declaration":
		if s := tsTypeAliasSymbol(n, src, exported); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "lexical_declaration", "variable_declaration":
		tsExtractLexical(n, src, res, exported)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkTS(n.Child(i), src, res, exported)
	}
}

func tsFunctionSymbol(n *sitter.Node, src []byte, exported bool) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	sig := tsSignaturePrefix(exported) + "function " + name + text(n.ChildByFieldName("parameters"), src)
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		sig += text(rt, src)
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindFunction, StartLine: start, EndLine: end, Signature: sig}
}

func tsSignaturePrefix(exported bool) string {
	if exported {
		return "export "
	}
	return ""
}

func tsClassSymbol(n *sitter.Node, src []byte, exported bool) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	sym := &Symbol{
		Name: name, Kind: store.KindClass, StartLine: start, EndLine: end,
		Signature: tsSignaturePrefix(exported) + "class " + name,
	}
	body := n.ChildByFieldName("body")
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			member := body.Child(i)
			switch member.Type() {
			case "method_definition":
				if m := tsMethodSymbol(member, src); m != nil {
					sym.Children = append(sym.Children, *m)
				}
			case "public_field_definition", "field_definition":
				if f := tsFieldSymbol(member, src); f != nil {
					sym.Children = append(sym.Children, *f)
				}
			}
		}
	}
	return sym
}

func tsMethodSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	sig := name + text(n.ChildByFieldName("parameters"), src)
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindMethod, StartLine: start, EndLine: end, Signature: sig}
}

func tsFieldSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("property"), src)
	if name == "" {
		name = text(n.ChildByFieldName("name"), src)
	}
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{Name: name, Kind: store.KindConstant, StartLine: start, EndLine: end, Signature: text(n, src)}
}

func tsInterfaceSymbol(n *sitter.Node, src []byte, exported bool) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{
		Name: name, Kind: store.KindInterface, StartLine: start, EndLine: end,
		Signature: tsSignaturePrefix(exported) + "interface " + name,
	}
}

func tsTypeAliasSymbol(n *sitter.Node, src []byte, exported bool) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	start, end := span(n)
	return &Symbol{
		Name: name, Kind: store.KindTypeAlias, StartLine: start, EndLine: end,
		Signature: tsSignaturePrefix(exported) + text(n, src),
	}
}

// tsExtractLexical classifies arrow-function-valued declarations as
// functions, other lexical declarations as constants.
func tsExtractLexical(n *sitter.Node, src []byte, res *Result, exported bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		decl := n.Child(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil {
			continue
		}
		name := text(nameNode, src)
		start, end := span(decl)
		kind := store.KindConstant
		sig := tsSignaturePrefix(exported) + "const " + name
		if valueNode != nil {
			switch valueNode.Type() {
			case "arrow_function", "function", "function_expression":
				kind = store.KindFunction
				sig = tsSignaturePrefix(exported) + "const " + name + " = " + text(valueNode.ChildByFieldName("parameters"), src) + " =>"
			}
		}
		res.Symbols = append(res.Symbols, Symbol{Name: name, Kind: kind, StartLine: start, EndLine: end, Signature: sig})
	}
}

func extractTSImport(n *sitter.Node, src []byte, res *Result) {
	var pathStr string
	var names []string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "string":
			pathStr = strings.Trim(text(c, src), `"'`+"`")
		case "import_clause":
			names = append(names, tsImportClauseNames(c, src)...)
		case "namespace_import":
			names = append(names, "*")
		}
	}
	if pathStr == "" {
		return
	}
	res.Imports = append(res.Imports, Import{Path: pathStr, Kind: "import", ImportedNames: names})
}

func tsImportClauseNames(n *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "identifier":
			names = append(names, text(c, src))
		case "namespace_import":
			names = append(names, "*")
		case "named_imports":
			for j := 0; j < int(c.ChildCount()); j++ {
				spec := c.Child(j)
				if spec.Type() == "import_specifier" {
					nameNode := spec.ChildByFieldName("name")
					names = append(names, text(nameNode, src))
				}
			}
		}
	}
	return names
}

func extractTSExport(n *sitter.Node, src []byte, res *Result) {
	var source *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "string" {
			source = n.Child(i)
		}
	}
	if source != nil {
		pathStr := strings.Trim(text(source, src), `"'`+"`")
		var names []string
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c.Type() == "export_clause" {
				for j := 0; j < int(c.ChildCount()); j++ {
					spec := c.Child(j)
					if spec.Type() == "export_specifier" {
						names = append(names, text(spec.ChildByFieldName("name"), src))
					}
				}
			}
			if c.Type() == "*" {
				names = append(names, "*")
			}
		}
		res.Imports = append(res.Imports, Import{Path: pathStr, Kind: "re-export", ImportedNames: names})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkTS(n.Child(i), src, res, true)
	}
}
