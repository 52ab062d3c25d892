package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// typescript covers the whole TypeScript/JavaScript family (.ts, .tsx,
// .js, .jsx, .mjs, .cjs — §4.1), grounded on providers/typescript/config.go
// and providers/javascript/config.go's node-type vocabulary (function_declaration,
// class_declaration, interface_declaration, type_alias_declaration,
// enum_declaration, method_definition, variable_declarator, import_statement,
// export_statement, comment).
type typescriptExtractor struct{}

var tsTransparent = map[string]bool{
	"export_statement":     true,
	"lexical_declaration":  true,
	"variable_declaration": true,
}

func (typescriptExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
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
		case "function_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindFunction, tsParentIsExport(n))
			}
		case "class_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindClass, tsParentIsExport(n))
			}
		case "interface_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindInterface, tsParentIsExport(n))
			}
		case "type_alias_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindTypeAlias, tsParentIsExport(n))
			}
		case "enum_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindEnum, tsParentIsExport(n))
			}
		case "method_definition":
			if key := n.ChildByFieldName("name"); key != nil {
				emit(n, nodeText(key, source), model.KindMethod, tsMethodIsExported(n))
			}
		case "variable_declarator":
			if !tsIsTopLevelDeclarator(n) {
				return true
			}
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil || nameNode.Type() != "identifier" {
				return true // destructuring pattern or computed name: no symbol row (invariant 5)
			}
			kind := model.KindVariable
			if value := n.ChildByFieldName("value"); value != nil {
				switch value.Type() {
				case "arrow_function":
					kind = model.KindArrowFunction
				case "function_expression":
					kind = model.KindFunction
				}
			}
			exported := tsDeclaratorIsExported(n)
			emit(n, nodeText(nameNode, source), kind, exported)
		case "import_statement":
			res.Imports = append(res.Imports, tsImportStatementRows(n, source, path)...)
		case "export_statement":
			if rows, isReExport := tsReExportRows(n, source, path); isReExport {
				res.Imports = append(res.Imports, rows...)
			}
		case "call_expression":
			if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "import" {
				res.Imports = append(res.Imports, tsDynamicImportRow(n, source, path))
			}
		case "comment":
			raw := nodeText(n, source)
			sl, sc, el, ec := span(n)
			assocName, assocKind := findAssociation(n, tsTransparent, bySymbolStart)
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

func tsParentIsExport(n *sitter.Node) bool {
	p := n.Parent()
	return p != nil && p.Type() == "export_statement"
}

// tsMethodIsExported: class members have no per-member export keyword in
// JS/TS; a method is part of the public surface whenever its class is
// reachable, i.e. the class itself is (or descends from) an exported
// declaration. We approximate "exported" for methods as "enclosing class
// is exported", which is the closest per-member reading of §4.2's table
// for a family whose visibility unit is the whole export statement.
func tsMethodIsExported(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "class_declaration" {
			return tsParentIsExport(p)
		}
	}
	return false
}

func tsIsTopLevelDeclarator(n *sitter.Node) bool {
	decl := n.Parent()
	if decl == nil {
		return false
	}
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
	default:
		return false
	}
	top := decl.Parent()
	if top == nil {
		return false
	}
	if top.Type() == "export_statement" {
		top = top.Parent()
	}
	return top != nil && top.Type() == "program"
}

func tsDeclaratorIsExported(n *sitter.Node) bool {
	decl := n.Parent()
	if decl == nil {
		return false
	}
	return tsParentIsExport(decl)
}

// tsIsInternalSpecifier implements §4.3's TS/JS classification table.
func tsIsInternalSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/") || strings.HasPrefix(specifier, "#")
}

func tsImportSource(n *sitter.Node, source []byte) (string, *sitter.Node) {
	if s := n.ChildByFieldName("source"); s != nil {
		return strings.Trim(nodeText(s, source), `"'`), s
	}
	nc := int(n.NamedChildCount())
	for i := 0; i < nc; i++ {
		c := n.NamedChild(i)
		if c.Type() == "string" {
			return strings.Trim(nodeText(c, source), `"'`), c
		}
	}
	return "", nil
}

func tsImportStatementRows(stmt *sitter.Node, source []byte, path string) []model.ImportInfo {
	specifier, _ := tsImportSource(stmt, source)
	line, _, _, _ := span(stmt)
	isExternal := !tsIsInternalSpecifier(specifier)
	typeOnly := strings.HasPrefix(strings.TrimSpace(nodeText(stmt, source)), "import type ")

	var clause *sitter.Node
	nc := int(stmt.NamedChildCount())
	for i := 0; i < nc; i++ {
		c := stmt.NamedChild(i)
		if c.Type() == "import_clause" {
			clause = c
			break
		}
	}
	if clause == nil {
		// Side-effect import: `import "./polyfill"` — one row, empty name.
		return []model.ImportInfo{{
			SourceFile: path, ModuleSpecifier: specifier, ImportedName: "",
			LocalName: "", Kind: model.ImportStatic, IsTypeOnly: typeOnly,
			Line: line, IsExternal: isExternal,
		}}
	}

	var rows []model.ImportInfo
	cc := int(clause.NamedChildCount())
	for i := 0; i < cc; i++ {
		c := clause.NamedChild(i)
		switch c.Type() {
		case "identifier":
			rows = append(rows, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: specifier, ImportedName: "default",
				LocalName: nodeText(c, source), Kind: model.ImportStatic, IsTypeOnly: typeOnly,
				Line: line, IsExternal: isExternal,
			})
		case "namespace_import":
			local := ""
			if nc := int(c.NamedChildCount()); nc > 0 {
				local = nodeText(c.NamedChild(nc-1), source)
			}
			rows = append(rows, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: specifier, ImportedName: "*",
				LocalName: local, Kind: model.ImportStatic, IsTypeOnly: typeOnly,
				Line: line, IsExternal: isExternal,
			})
		case "named_imports":
			nic := int(c.NamedChildCount())
			for j := 0; j < nic; j++ {
				spec := c.NamedChild(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				aliasNode := spec.ChildByFieldName("alias")
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
					LocalName: local, Kind: model.ImportStatic, IsTypeOnly: typeOnly,
					Line: line, IsExternal: isExternal,
				})
			}
		}
	}
	return rows
}

// tsReExportRows handles `export * from "..."` and `export { a, b as c }
// from "..."`, identified by the presence of a source field/string on an
// export_statement (as opposed to one wrapping a local declaration).
func tsReExportRows(stmt *sitter.Node, source []byte, path string) ([]model.ImportInfo, bool) {
	specifier, srcNode := tsImportSource(stmt, source)
	if srcNode == nil {
		return nil, false
	}
	line, _, _, _ := span(stmt)
	isExternal := !tsIsInternalSpecifier(specifier)

	nc := int(stmt.NamedChildCount())
	for i := 0; i < nc; i++ {
		c := stmt.NamedChild(i)
		if c.Type() == "export_clause" {
			var rows []model.ImportInfo
			cc := int(c.NamedChildCount())
			for j := 0; j < cc; j++ {
				spec := c.NamedChild(j)
				if spec.Type() != "export_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				aliasNode := spec.ChildByFieldName("alias")
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
					LocalName: local, Kind: model.ImportReExport, Line: line, IsExternal: isExternal,
				})
			}
			return rows, true
		}
	}
	// `export * from "./base"` — no export_clause, whole-module re-export.
	return []model.ImportInfo{{
		SourceFile: path, ModuleSpecifier: specifier, ImportedName: "*",
		LocalName: "*", Kind: model.ImportReExport, Line: line, IsExternal: isExternal,
	}}, true
}

func tsDynamicImportRow(call *sitter.Node, source []byte, path string) model.ImportInfo {
	specifier := ""
	if args := call.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
		specifier = strings.Trim(nodeText(args.NamedChild(0), source), `"'`)
	}
	line, _, _, _ := span(call)
	return model.ImportInfo{
		SourceFile: path, ModuleSpecifier: specifier, ImportedName: "",
		LocalName: "", Kind: model.ImportDynamic, Line: line,
		IsExternal: !tsIsInternalSpecifier(specifier),
	}
}
