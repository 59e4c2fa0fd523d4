// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// pyExtractor handles Python. Distinguishes `import X` from
// `from X import a, b`; decorated defs fold the decorator list into the
// child's signature and extend the symbol's start line up to the first
// decorator.
type pyExtractor struct{}

func (pyExtractor) Extract(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	var res Result
	walkPy(tree.RootNode(), content, &res)
	return res, nil
}

func walkPy(n *sitter.Node, src []byte, res *Result) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "import_statement":
		extractPyImport(n, src, res)
		return
	case "import_from_statement":
		extractPyFromImport(n, src, res)
		return
	case "decorated_definition":
		if s := pyDecoratedSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "function_definition":
		if s := pyFunctionSymbol(n, src, n); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	case "class_definition":
		if s := pyClassSymbol(n, src); s != nil {
			res.Symbols = append(res.Symbols, *s)
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkPy(n.Child(i), src, res)
	}
}

func pyFunctionSymbol(n *sitter.Node, src []byte, spanNode *sitter.Node) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	sig := "def " + name + text(n.ChildByFieldName("parameters"), src)
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		sig += " -> " + text(rt, src)
	}
	start, end := span(spanNode)
	return &Symbol{Name: name, Kind: store.KindFunction, StartLine: start, EndLine: end, Signature: sig}
}

// pyDecoratedSymbol folds the decorator list into the child definition's
// signature, extending its start line up to the first decorator.
func pyDecoratedSymbol(n *sitter.Node, src []byte) *Symbol {
	var decorators []string
	var def *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "decorator":
			decorators = append(decorators, text(c, src))
		case "function_definition", "class_definition":
			def = c
		}
	}
	if def == nil {
		return nil
	}
	prefix := ""
	if len(decorators) > 0 {
		prefix = strings.Join(decorators, "\n") + "\n"
	}
	var sym *Symbol
	if def.Type() == "class_definition" {
		sym = pyClassSymbol(def, src)
	} else {
		sym = pyFunctionSymbol(def, src, def)
	}
	if sym == nil {
		return nil
	}
	sym.Signature = prefix + sym.Signature
	start, _ := span(n)
	sym.StartLine = start
	return sym
}

func pyClassSymbol(n *sitter.Node, src []byte) *Symbol {
	name := text(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	sig := "class " + name
	if sl := n.ChildByFieldName("superclasses"); sl != nil {
		sig += text(sl, src)
	}
	start, end := span(n)
	sym := &Symbol{Name: name, Kind: store.KindClass, StartLine: start, EndLine: end, Signature: sig}

	body := n.ChildByFieldName("body")
	if body == nil {
		return sym
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		switch member.Type() {
		case "function_definition":
			if m := pyFunctionSymbol(member, src, member); m != nil {
				m.Kind = store.KindMethod
				sym.Children = append(sym.Children, *m)
			}
		case "decorated_definition":
			if m := pyDecoratedSymbol(member, src); m != nil && m.Kind != store.KindClass {
				m.Kind = store.KindMethod
				sym.Children = append(sym.Children, *m)
			}
		}
	}
	return sym
}

func extractPyImport(n *sitter.Node, src []byte, res *Result) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "dotted_name":
			name := text(c, src)
			res.Imports = append(res.Imports, Import{Path: name, Kind: "import", ImportedNames: []string{lastDotSegment(name)}})
		case "aliased_import":
			nameNode := c.ChildByFieldName("name")
			aliasNode := c.ChildByFieldName("alias")
			path := text(nameNode, src)
			alias := text(aliasNode, src)
			res.Imports = append(res.Imports, Import{Path: path, Kind: "import", ImportedNames: []string{alias}})
		}
	}
}

func extractPyFromImport(n *sitter.Node, src []byte, res *Result) {
	moduleNode := n.ChildByFieldName("module_name")
	module := text(moduleNode, src)
	var names []string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "dotted_name":
			if c != moduleNode {
				names = append(names, text(c, src))
			}
		case "aliased_import":
			names = append(names, text(c.ChildByFieldName("alias"), src))
		case "wildcard_import":
			names = append(names, "*")
		}
	}
	res.Imports = append(res.Imports, Import{Path: module, Kind: "from-import", ImportedNames: names})
}

func lastDotSegment(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
