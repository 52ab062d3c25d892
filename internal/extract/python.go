package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// Python is grounded on providers/python/config.go: its aliasMap node
// vocabulary (function_definition/async_function_definition,
// class_definition, import_statement/import_from_statement, comment) and
// its IsExported rule, carried verbatim: "not strings.HasPrefix(name, "_")".
type pythonExtractor struct{}

var pythonTransparent = map[string]bool{
	"decorated_definition": true,
}

func (pythonExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
	root := tree.RootNode()
	var res Result
	bySymbolStart := map[uint32]defInfo{}

	var emit func(n *sitter.Node, name, kind string)
	emit = func(n *sitter.Node, name, kind string) {
		sl, sc, el, ec := span(n)
		res.Symbols = append(res.Symbols, model.SymbolInfo{
			Name: name, Kind: kind, FilePath: path,
			StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
			IsExported: isPythonExported(name),
		})
		bySymbolStart[n.StartByte()] = defInfo{name: name, kind: kind}
	}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition", "async_function_definition":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return true
			}
			kind := model.KindFunction
			if isInsidePythonClass(n) {
				kind = model.KindMethod
			}
			emit(n, nodeText(nameNode, source), kind)
		case "class_definition":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				emit(n, nodeText(nameNode, source), model.KindClass)
			}
		case "import_statement":
			res.Imports = append(res.Imports, pythonImportRows(n, source, path)...)
			return false
		case "import_from_statement":
			res.Imports = append(res.Imports, pythonImportFromRows(n, source, path)...)
			return false
		case "comment":
			raw := nodeText(n, source)
			sl, sc, el, ec := span(n)
			assocName, assocKind := findAssociation(n, pythonTransparent, bySymbolStart)
			res.Comments = append(res.Comments, model.CommentInfo{
				FilePath: path, Text: raw, Kind: classifyCommentText(raw),
				StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
				AssociatedSymbol: assocName, AssociatedSymbolKind: assocKind,
			})
		case "expression_statement":
			if doc, ok := pythonDocstring(n); ok {
				res.Comments = append(res.Comments, pythonDocComment(doc, source, path, bySymbolStart))
			}
		}
		return true
	})

	return res, nil
}

func isPythonExported(name string) bool {
	return !strings.HasPrefix(name, "_")
}

func isInsidePythonClass(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "class_definition":
			return true
		case "function_definition", "async_function_definition":
			return false
		}
	}
	return false
}

// pythonDocstring reports whether an expression_statement is a bare
// string literal that is the first statement of its enclosing block
// (function/class/module body) — the tree-sitter shape of a docstring.
func pythonDocstring(exprStmt *sitter.Node) (*sitter.Node, bool) {
	if exprStmt.NamedChildCount() != 1 {
		return nil, false
	}
	str := exprStmt.NamedChild(0)
	if str.Type() != "string" {
		return nil, false
	}
	parent := exprStmt.Parent()
	if parent == nil {
		return nil, false
	}
	// The statement must be the first named child of its block, or the
	// first top-level statement of the module.
	if parent.NamedChildCount() == 0 || parent.NamedChild(0).StartByte() != exprStmt.StartByte() {
		return nil, false
	}
	return exprStmt, true
}

// pythonDocComment builds the CommentInfo row for a docstring, associating
// it to the enclosing function, class, or (when there is none) leaving
// the association null — §4.4: "For Python docstrings, association is to
// the enclosing function, class, or module," and Invariant 4 forbids
// pointing at a symbol row that doesn't exist, so a module-level
// docstring (no enclosing def/class) associates to nothing.
func pythonDocComment(exprStmt *sitter.Node, source []byte, path string, bySymbolStart map[uint32]defInfo) model.CommentInfo {
	raw := nodeText(exprStmt, source)
	sl, sc, el, ec := span(exprStmt)

	var assocName, assocKind string
	for p := exprStmt.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "function_definition", "async_function_definition", "class_definition":
			if info, ok := bySymbolStart[p.StartByte()]; ok {
				assocName, assocKind = info.name, info.kind
			}
			goto done
		case "module":
			goto done
		}
	}
done:
	return model.CommentInfo{
		FilePath: path, Text: raw, Kind: model.CommentDoc,
		StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
		AssociatedSymbol: assocName, AssociatedSymbolKind: assocKind,
	}
}

func pythonImportRows(stmt *sitter.Node, source []byte, path string) []model.ImportInfo {
	var rows []model.ImportInfo
	line, _, _, _ := span(stmt)
	nc := int(stmt.NamedChildCount())
	for i := 0; i < nc; i++ {
		child := stmt.NamedChild(i)
		switch child.Type() {
		case "dotted_name", "identifier":
			specifier := nodeText(child, source)
			imported := lastPythonSegment(specifier)
			rows = append(rows, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: specifier, ImportedName: imported,
				LocalName: imported, Kind: model.ImportImport, Line: line,
				IsExternal: !strings.HasPrefix(specifier, "."),
			})
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			specifier := nodeText(nameNode, source)
			imported := lastPythonSegment(specifier)
			local := imported
			if aliasNode != nil {
				local = nodeText(aliasNode, source)
			}
			rows = append(rows, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: specifier, ImportedName: imported,
				LocalName: local, Kind: model.ImportImport, Line: line,
				IsExternal: !strings.HasPrefix(specifier, "."),
			})
		}
	}
	return rows
}

func pythonImportFromRows(stmt *sitter.Node, source []byte, path string) []model.ImportInfo {
	var rows []model.ImportInfo
	line, _, _, _ := span(stmt)
	moduleNode := stmt.ChildByFieldName("module_name")
	specifier := ""
	if moduleNode != nil {
		specifier = nodeText(moduleNode, source)
	}
	isExternal := !strings.HasPrefix(specifier, ".")

	nc := int(stmt.NamedChildCount())
	for i := 0; i < nc; i++ {
		child := stmt.NamedChild(i)
		switch child.Type() {
		case "wildcard_import":
			rows = append(rows, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: specifier, ImportedName: "*",
				LocalName: "*", Kind: model.ImportFrom, Line: line, IsExternal: isExternal,
			})
		case "dotted_name", "identifier":
			if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
				continue
			}
			name := nodeText(child, source)
			rows = append(rows, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: specifier, ImportedName: name,
				LocalName: name, Kind: model.ImportFrom, Line: line, IsExternal: isExternal,
			})
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			name := nodeText(nameNode, source)
			local := name
			if aliasNode != nil {
				local = nodeText(aliasNode, source)
			}
			rows = append(rows, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: specifier, ImportedName: name,
				LocalName: local, Kind: model.ImportFrom, Line: line, IsExternal: isExternal,
			})
		}
	}
	return rows
}

func lastPythonSegment(specifier string) string {
	if idx := strings.LastIndex(specifier, "."); idx >= 0 {
		return specifier[idx+1:]
	}
	return specifier
}
