package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// Java ties exportedness to the `public` modifier (§4.2); package-private
// (no modifier), protected, and private members are not exported. Node
// vocabulary grounded on jmylchreest-aide's Java TagQueries:
// method_declaration, constructor_declaration, class_declaration,
// interface_declaration, enum_declaration, each with a `modifiers` child
// and a `(name) @name` field.
type javaExtractor struct{}

func (javaExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
	root := tree.RootNode()
	var res Result
	bySymbolStart := map[uint32]defInfo{}

	emit := func(n *sitter.Node, name, kind string) {
		sl, sc, el, ec := span(n)
		res.Symbols = append(res.Symbols, model.SymbolInfo{
			Name: name, Kind: kind, FilePath: path,
			StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
			IsExported: javaHasPublicModifier(n, source),
		})
		bySymbolStart[n.StartByte()] = defInfo{name: name, kind: kind}
	}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "method_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindMethod)
			}
		case "constructor_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindMethod)
			}
		case "class_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindClass)
			}
		case "interface_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindInterface)
			}
		case "enum_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindEnum)
			}
		case "import_declaration":
			res.Imports = append(res.Imports, javaImportRow(n, source, path))
		case "line_comment", "block_comment", "comment":
			raw := nodeText(n, source)
			sl, sc, el, ec := span(n)
			assocName, assocKind := findAssociation(n, nil, bySymbolStart)
			res.Comments = append(res.Comments, model.CommentInfo{
				FilePath: path, Text: raw, Kind: classifyCommentText(raw),
				StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
				AssociatedSymbol: assocName, AssociatedSymbolKind: assocKind,
			})
		}
		return true
	})

	return res, nil
}

func javaHasPublicModifier(n *sitter.Node, source []byte) bool {
	nc := int(n.NamedChildCount())
	for i := 0; i < nc; i++ {
		c := n.NamedChild(i)
		if c.Type() != "modifiers" {
			continue
		}
		mc := int(c.ChildCount())
		for j := 0; j < mc; j++ {
			if nodeText(c.Child(j), source) == "public" {
				return true
			}
		}
	}
	return false
}

// javaImportRow handles a single import_declaration, which tree-sitter-java
// represents as a scoped_identifier (or, for a wildcard import, the same
// shape with a trailing asterisk sibling) plus an optional `static` token.
func javaImportRow(n *sitter.Node, source []byte, path string) model.ImportInfo {
	line, _, _, _ := span(n)
	isStatic := false
	var specNode *sitter.Node
	wildcard := false
	nc := int(n.NamedChildCount())
	for i := 0; i < nc; i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "scoped_identifier", "identifier":
			specNode = c
		case "asterisk":
			wildcard = true
		}
	}
	cc := int(n.ChildCount())
	for i := 0; i < cc; i++ {
		if nodeText(n.Child(i), source) == "static" {
			isStatic = true
		}
	}
	specifier := ""
	if specNode != nil {
		specifier = nodeText(specNode, source)
	}
	imported := specifier
	if wildcard {
		imported = "*"
	} else if idx := strings.LastIndex(specifier, "."); idx >= 0 {
		imported = specifier[idx+1:]
	}
	kind := model.ImportImport
	if isStatic {
		kind = model.ImportStatic
	}
	return model.ImportInfo{
		SourceFile: path, ModuleSpecifier: specifier, ImportedName: imported,
		LocalName: imported, Kind: kind, Line: line, IsExternal: true,
	}
}
