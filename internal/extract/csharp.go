package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// C# ties exportedness to the `public` or `internal` access modifier
// (§4.2); a member with no modifier, or with `private`/`protected`, is not
// exported. Namespaces carry no modifier at all and are always exported.
// Node vocabulary grounded on jmylchreest-aide's C# TagQueries:
// method_declaration, constructor_declaration, class_declaration,
// interface_declaration, struct_declaration, enum_declaration,
// namespace_declaration, each with a `(name) @name` field and (except for
// namespaces) a leading modifier list.
type csharpExtractor struct{}

func (csharpExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
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
		case "method_declaration", "local_function_statement":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindMethod, csharpHasExportingModifier(n, source))
			}
		case "constructor_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindMethod, csharpHasExportingModifier(n, source))
			}
		case "class_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindClass, csharpHasExportingModifier(n, source))
			}
		case "interface_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindInterface, csharpHasExportingModifier(n, source))
			}
		case "struct_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindStruct, csharpHasExportingModifier(n, source))
			}
		case "enum_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindEnum, csharpHasExportingModifier(n, source))
			}
		case "namespace_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindNamespace, true)
			}
		case "using_directive":
			res.Imports = append(res.Imports, csharpUsingRow(n, source, path))
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

// csharpHasExportingModifier scans a declaration's modifier list for
// `public` or `internal` among its leading children (modifiers precede the
// declaration keyword itself, e.g. "public class Foo"); §4.2 treats both
// as exported, unlike `private`/`protected`, which are not.
func csharpHasExportingModifier(n *sitter.Node, source []byte) bool {
	cc := int(n.ChildCount())
	for i := 0; i < cc; i++ {
		c := n.Child(i)
		if c.Type() != "modifier" {
			continue
		}
		switch nodeText(c, source) {
		case "public", "internal":
			return true
		}
	}
	return false
}

func csharpUsingRow(n *sitter.Node, source []byte, path string) model.ImportInfo {
	line, _, _, _ := span(n)
	nameNode := n.ChildByFieldName("name")
	specifier := ""
	if nameNode != nil {
		specifier = nodeText(nameNode, source)
	}
	return model.ImportInfo{
		SourceFile: path, ModuleSpecifier: specifier, ImportedName: specifier,
		LocalName: specifier, Kind: model.ImportUsing, Line: line, IsExternal: true,
	}
}
