package extract

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// Go is grounded on providers/golang/config.go's aliasMap (function_declaration,
// method_declaration, type_spec, var_declaration/short_var_declaration,
// const_declaration, import_declaration, comment) and on the exported-name
// rule of §4.2: first rune uppercase.
type goExtractor struct{}

func (goExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
	root := tree.RootNode()
	var res Result
	bySymbolStart := map[uint32]defInfo{}

	emit := func(n *sitter.Node, name, kind string) {
		sl, sc, el, ec := span(n)
		sym := model.SymbolInfo{
			Name: name, Kind: kind, FilePath: path,
			StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
			IsExported: isGoExported(name),
		}
		res.Symbols = append(res.Symbols, sym)
		bySymbolStart[n.StartByte()] = defInfo{name: name, kind: kind}
	}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindFunction)
			}
		case "method_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindMethod)
			}
		case "type_spec", "type_alias":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), goTypeSpecKind(n))
			}
		case "const_declaration":
			if n.Parent() != nil && n.Parent().Type() == "source_file" {
				for _, id := range goSpecNames(n, source, "const_spec") {
					emitGoBinding(&res, bySymbolStart, id.node, id.name, model.KindConstant, path)
				}
			}
		case "var_declaration":
			if n.Parent() != nil && n.Parent().Type() == "source_file" {
				for _, id := range goSpecNames(n, source, "var_spec") {
					emitGoBinding(&res, bySymbolStart, id.node, id.name, model.KindVariable, path)
				}
			}
		case "import_declaration":
			res.Imports = append(res.Imports, goImportRows(n, source, path)...)
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

func isGoExported(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return unicode.IsUpper(r)
}

// goTypeSpecKind inspects the right-hand side of a type declaration to
// split struct/interface/type_alias, per §4.2's typedef-like edge case.
func goTypeSpecKind(typeSpec *sitter.Node) string {
	rhs := typeSpec.ChildByFieldName("type")
	if rhs == nil {
		return model.KindTypeAlias
	}
	switch rhs.Type() {
	case "struct_type":
		return model.KindStruct
	case "interface_type":
		return model.KindInterface
	default:
		return model.KindTypeAlias
	}
}

type namedNode struct {
	node *sitter.Node
	name string
}

// goSpecNames collects the identifier names bound by every const_spec or
// var_spec child of a const_declaration/var_declaration (every identifier
// of a `a, b = 1, 2` list), each paired with its enclosing spec node.
func goSpecNames(decl *sitter.Node, source []byte, specType string) []namedNode {
	var out []namedNode
	nc := int(decl.NamedChildCount())
	for i := 0; i < nc; i++ {
		spec := decl.NamedChild(i)
		if spec.Type() != specType {
			continue
		}
		sc := int(spec.NamedChildCount())
		for j := 0; j < sc; j++ {
			if id := spec.NamedChild(j); id.Type() == "identifier" {
				out = append(out, namedNode{node: spec, name: nodeText(id, source)})
			}
		}
	}
	return out
}

func emitGoBinding(res *Result, bySymbolStart map[uint32]defInfo, n *sitter.Node, name, kind, path string) {
	sl, sc, el, ec := span(n)
	res.Symbols = append(res.Symbols, model.SymbolInfo{
		Name: name, Kind: kind, FilePath: path, StartLine: sl, StartColumn: sc,
		EndLine: el, EndColumn: ec, IsExported: isGoExported(name),
	})
	bySymbolStart[n.StartByte()] = defInfo{name: name, kind: kind}
}

// goImportRows turns one import_declaration into zero or more ImportInfo
// rows, one per import_spec (§4.3: one row per bound name).
func goImportRows(decl *sitter.Node, source []byte, path string) []model.ImportInfo {
	var rows []model.ImportInfo
	walk(decl, func(n *sitter.Node) bool {
		if n.Type() != "import_spec" {
			return true
		}
		pathNode := n.ChildByFieldName("path")
		if pathNode == nil {
			return false
		}
		specifier := strings.Trim(nodeText(pathNode, source), `"`)
		imported := lastPathSegment(specifier)
		local := imported
		if aliasNode := n.ChildByFieldName("name"); aliasNode != nil {
			local = nodeText(aliasNode, source)
			if local == "*" {
				local = imported
			}
		}
		line, _, _, _ := span(n)
		rows = append(rows, model.ImportInfo{
			SourceFile: path, ModuleSpecifier: specifier, ImportedName: imported,
			LocalName: local, Kind: model.ImportImport, IsTypeOnly: false,
			Line: line, IsExternal: true,
		})
		return false
	})
	return rows
}
