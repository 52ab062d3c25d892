package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// C has no module system and no access-modifier keywords; §4.2 ties
// exportedness to the presence of the `static` storage-class specifier on
// a top-level declaration (static => internal linkage => not exported).
// Node vocabulary cross-checked against jmylchreest-aide's C TagQueries:
// function_definition(function_declarator(identifier)), struct_specifier,
// enum_specifier, type_definition.
type cExtractor struct{}

func (cExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
	root := tree.RootNode()
	var res Result
	bySymbolStart := map[uint32]defInfo{}

	emit := func(n *sitter.Node, name, kind string, exported bool) {
		sl, sc, el, ec := span(n)
		res.Symbols = append(res.Symbols, model.SymbolInfo{
			Name: name, Kind: kind, FilePath: path,
			StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
			IsExported: exported,
		})
		bySymbolStart[n.StartByte()] = defInfo{name: name, kind: kind}
	}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition":
			declarator := n.ChildByFieldName("declarator")
			name := cDeclaratorName(declarator, source)
			if name == "" {
				return true
			}
			emit(n, name, model.KindFunction, !cHasStaticSpecifier(n, source))
		case "struct_specifier":
			if name := n.ChildByFieldName("name"); name != nil && cIsTopLevelType(n) {
				emit(n, nodeText(name, source), model.KindStruct, !cHasStaticSpecifier(n, source))
			}
		case "enum_specifier":
			if name := n.ChildByFieldName("name"); name != nil && cIsTopLevelType(n) {
				emit(n, nodeText(name, source), model.KindEnum, !cHasStaticSpecifier(n, source))
			}
		case "type_definition":
			if name := cTypedefName(n, source); name != "" {
				emit(n, name, model.KindTypeAlias, !cHasStaticSpecifier(n, source))
			}
		case "preproc_include":
			res.Imports = append(res.Imports, cIncludeRow(n, source, path))
		case "comment":
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

// cDeclaratorName unwraps a (possibly pointer-wrapped) function_declarator
// to find the plain identifier naming the function, or the type_identifier
// naming a typedef.
func cDeclaratorName(n *sitter.Node, source []byte) string {
	for n != nil {
		switch n.Type() {
		case "function_declarator":
			if id := n.ChildByFieldName("declarator"); id != nil {
				return cDeclaratorName(id, source)
			}
			return ""
		case "pointer_declarator":
			n = n.ChildByFieldName("declarator")
		case "identifier", "type_identifier":
			return nodeText(n, source)
		default:
			return ""
		}
	}
	return ""
}

// cHasStaticSpecifier scans the sibling storage-class specifiers preceding
// a declaration for the `static` keyword (the declaration itself sits
// inside a declaration/function_definition whose children include a
// storage_class_specifier token).
func cHasStaticSpecifier(n *sitter.Node, source []byte) bool {
	cc := int(n.ChildCount())
	for i := 0; i < cc; i++ {
		c := n.Child(i)
		if c.Type() == "storage_class_specifier" && nodeText(c, source) == "static" {
			return true
		}
	}
	return false
}

func cIsTopLevelType(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.Type() {
	case "translation_unit", "type_definition", "declaration":
		return true
	}
	return false
}

func cTypedefName(n *sitter.Node, source []byte) string {
	if decl := n.ChildByFieldName("declarator"); decl != nil {
		return cDeclaratorName(decl, source)
	}
	nc := int(n.NamedChildCount())
	for i := 0; i < nc; i++ {
		c := n.NamedChild(i)
		if c.Type() == "type_identifier" {
			return nodeText(c, source)
		}
	}
	return ""
}

func cIncludeRow(n *sitter.Node, source []byte, path string) model.ImportInfo {
	line, _, _, _ := span(n)
	var pathNode *sitter.Node
	nc := int(n.NamedChildCount())
	for i := 0; i < nc; i++ {
		c := n.NamedChild(i)
		if c.Type() == "string_literal" || c.Type() == "system_lib_string" {
			pathNode = c
			break
		}
	}
	specifier := ""
	isExternal := true
	if pathNode != nil {
		raw := nodeText(pathNode, source)
		if len(raw) >= 2 {
			specifier = raw[1 : len(raw)-1]
		}
		isExternal = pathNode.Type() == "system_lib_string"
	}
	return model.ImportInfo{
		SourceFile: path, ModuleSpecifier: specifier, ImportedName: specifier,
		LocalName: specifier, Kind: model.ImportInclude, Line: line, IsExternal: isExternal,
	}
}
