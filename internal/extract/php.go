package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// PHP is grounded on providers/php/config.go's aliasMap (function_definition,
// method_declaration, class_declaration, interface_declaration,
// trait_declaration, all keyed on a `(name) @name` field). Per §4.2,
// top-level functions and classes have no visibility keyword and are
// always exported; methods default to exported unless marked `private`
// or `protected`.
type phpExtractor struct{}

func (phpExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
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
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindFunction, true)
			}
		case "method_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindMethod, phpMethodIsExported(n, source))
			}
		case "class_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindClass, true)
			}
		case "interface_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindInterface, true)
			}
		case "trait_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindTrait, true)
			}
		case "namespace_use_declaration":
			res.Imports = append(res.Imports, phpUseRows(n, source, path)...)
			return false
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

func phpMethodIsExported(n *sitter.Node, source []byte) bool {
	cc := int(n.ChildCount())
	for i := 0; i < cc; i++ {
		c := n.Child(i)
		if c.Type() != "visibility_modifier" {
			continue
		}
		switch nodeText(c, source) {
		case "private", "protected":
			return false
		}
	}
	return true
}

func phpUseRows(decl *sitter.Node, source []byte, path string) []model.ImportInfo {
	line, _, _, _ := span(decl)
	var rows []model.ImportInfo
	nc := int(decl.NamedChildCount())
	for i := 0; i < nc; i++ {
		clause := decl.NamedChild(i)
		if clause.Type() != "namespace_use_clause" {
			continue
		}
		nameNode := clause.ChildByFieldName("name")
		aliasNode := clause.ChildByFieldName("alias")
		if nameNode == nil {
			continue
		}
		specifier := nodeText(nameNode, source)
		imported := phpLastSegment(specifier)
		local := imported
		if aliasNode != nil {
			local = nodeText(aliasNode, source)
		}
		rows = append(rows, model.ImportInfo{
			SourceFile: path, ModuleSpecifier: specifier, ImportedName: imported,
			LocalName: local, Kind: model.ImportUse, Line: line, IsExternal: true,
		})
	}
	return rows
}

func phpLastSegment(specifier string) string {
	for i := len(specifier) - 1; i >= 0; i-- {
		if specifier[i] == '\\' {
			return specifier[i+1:]
		}
	}
	return specifier
}
