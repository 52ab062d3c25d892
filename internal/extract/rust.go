package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// Rust ties exportedness directly to the `pub` visibility modifier
// (§4.2); anything without one is private to its module. Node vocabulary
// grounded on jmylchreest-aide's Rust TagQueries: function_item, impl_item,
// struct_item, enum_item, trait_item, type_item, mod_item, each carrying an
// optional leading visibility_modifier child and a `(name) @name` field.
// Functions nested inside an impl_item are methods (Scenario D).
type rustExtractor struct{}

var rustTransparent = map[string]bool{}

func (rustExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
	root := tree.RootNode()
	var res Result
	bySymbolStart := map[uint32]defInfo{}

	emit := func(n *sitter.Node, name, kind string) {
		sl, sc, el, ec := span(n)
		res.Symbols = append(res.Symbols, model.SymbolInfo{
			Name: name, Kind: kind, FilePath: path,
			StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
			IsExported: rustHasPubModifier(n),
		})
		bySymbolStart[n.StartByte()] = defInfo{name: name, kind: kind}
	}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_item":
			if name := n.ChildByFieldName("name"); name != nil {
				kind := model.KindFunction
				if rustIsInsideImpl(n) {
					kind = model.KindMethod
				}
				emit(n, nodeText(name, source), kind)
			}
		case "struct_item":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindStruct)
			}
		case "enum_item":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindEnum)
			}
		case "trait_item":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindTrait)
			}
		case "type_item":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindTypeAlias)
			}
		case "mod_item":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindModule)
			}
		case "use_declaration":
			res.Imports = append(res.Imports, rustUseRows(n, source, path)...)
			return false
		case "line_comment", "block_comment":
			raw := nodeText(n, source)
			sl, sc, el, ec := span(n)
			assocName, assocKind := findAssociation(n, rustTransparent, bySymbolStart)
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

func rustHasPubModifier(n *sitter.Node) bool {
	cc := int(n.ChildCount())
	for i := 0; i < cc; i++ {
		if n.Child(i).Type() == "visibility_modifier" {
			return true
		}
	}
	return false
}

func rustIsInsideImpl(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "impl_item" {
			return true
		}
		if p.Type() == "function_item" {
			return false
		}
	}
	return false
}

// rustUseRows expands a use_declaration tree into one row per bound name,
// handling plain paths, `as` renames, brace groups, and glob imports.
func rustUseRows(decl *sitter.Node, source []byte, path string) []model.ImportInfo {
	line, _, _, _ := span(decl)
	argument := decl.ChildByFieldName("argument")
	if argument == nil {
		return nil
	}
	return rustUseTreeRows(argument, "", source, path, line)
}

func rustUseTreeRows(n *sitter.Node, prefix string, source []byte, path string, line uint64) []model.ImportInfo {
	switch n.Type() {
	case "scoped_identifier":
		full := joinRustPath(prefix, nodeText(n, source))
		return []model.ImportInfo{rustUseRow(full, rustLastSegment(full), path, line)}
	case "identifier", "self", "crate", "super":
		full := joinRustPath(prefix, nodeText(n, source))
		return []model.ImportInfo{rustUseRow(full, nodeText(n, source), path, line)}
	case "use_as_clause":
		pathNode := n.ChildByFieldName("path")
		aliasNode := n.ChildByFieldName("alias")
		if pathNode == nil {
			return nil
		}
		full := joinRustPath(prefix, nodeText(pathNode, source))
		local := rustLastSegment(full)
		if aliasNode != nil {
			local = nodeText(aliasNode, source)
		}
		row := rustUseRow(full, rustLastSegment(full), path, line)
		row.LocalName = local
		return []model.ImportInfo{row}
	case "use_wildcard":
		inner := n.ChildByFieldName("path")
		base := prefix
		if inner != nil {
			base = joinRustPath(prefix, nodeText(inner, source))
		}
		row := rustUseRow(base, "*", path, line)
		row.LocalName = "*"
		return []model.ImportInfo{row}
	case "scoped_use_list":
		pathNode := n.ChildByFieldName("path")
		listNode := n.ChildByFieldName("list")
		base := prefix
		if pathNode != nil {
			base = joinRustPath(prefix, nodeText(pathNode, source))
		}
		var rows []model.ImportInfo
		if listNode != nil {
			nc := int(listNode.NamedChildCount())
			for i := 0; i < nc; i++ {
				rows = append(rows, rustUseTreeRows(listNode.NamedChild(i), base, source, path, line)...)
			}
		}
		return rows
	case "use_list":
		var rows []model.ImportInfo
		nc := int(n.NamedChildCount())
		for i := 0; i < nc; i++ {
			rows = append(rows, rustUseTreeRows(n.NamedChild(i), prefix, source, path, line)...)
		}
		return rows
	default:
		return nil
	}
}

func joinRustPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "::" + segment
}

func rustLastSegment(specifier string) string {
	idx := -1
	for i := 0; i+1 < len(specifier); i++ {
		if specifier[i] == ':' && specifier[i+1] == ':' {
			idx = i
		}
	}
	if idx < 0 {
		return specifier
	}
	return specifier[idx+2:]
}

func rustUseRow(specifier, importedName, path string, line uint64) model.ImportInfo {
	isExternal := true
	switch {
	case specifier == "self", specifier == "super", specifier == "crate":
		isExternal = false
	default:
		for _, root := range []string{"self::", "super::", "crate::"} {
			if len(specifier) >= len(root) && specifier[:len(root)] == root {
				isExternal = false
				break
			}
		}
	}
	return model.ImportInfo{
		SourceFile: path, ModuleSpecifier: specifier, ImportedName: importedName,
		LocalName: importedName, Kind: model.ImportUse, Line: line, IsExternal: isExternal,
	}
}
